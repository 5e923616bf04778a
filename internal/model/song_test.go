package model

import "testing"

func TestSong_EffectiveAlbumArtist(t *testing.T) {
	tests := []struct {
		name string
		song Song
		want string
	}{
		{"album artist set", Song{Artist: "A", AlbumArtist: "AA"}, "AA"},
		{"falls back to artist", Song{Artist: "A"}, "A"},
		{"both empty", Song{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.song.EffectiveAlbumArtist(); got != tt.want {
				t.Errorf("EffectiveAlbumArtist() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSong_EffectiveOriginalYear(t *testing.T) {
	tests := []struct {
		name string
		song Song
		want int
	}{
		{"original year set", Song{Year: 2001, OriginalYear: 1994}, 1994},
		{"falls back to year", Song{Year: 2001}, 2001},
		{"negative treated as unset", Song{Year: 2001, OriginalYear: -1}, 2001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.song.EffectiveOriginalYear(); got != tt.want {
				t.Errorf("EffectiveOriginalYear() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSong_LengthSeconds(t *testing.T) {
	song := Song{LengthNanosec: 271_500_000_000}
	if got := song.LengthSeconds(); got != 271 {
		t.Errorf("LengthSeconds() = %d, want 271", got)
	}
}

func TestSong_BaseFilename(t *testing.T) {
	song := Song{FilePath: "/library/incoming/02 - track.mp3"}
	if got := song.BaseFilename(); got != "02 - track.mp3" {
		t.Errorf("BaseFilename() = %q, want %q", got, "02 - track.mp3")
	}

	empty := Song{}
	if got := empty.BaseFilename(); got != "" {
		t.Errorf("BaseFilename() on empty path = %q, want empty", got)
	}
}

func TestSong_Extension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/music/a.flac", "flac"},
		{"/music/a.tar.gz", "gz"},
		{"/music/noext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			song := Song{FilePath: tt.path}
			if got := song.Extension(); got != tt.want {
				t.Errorf("Extension() = %q, want %q", got, tt.want)
			}
		})
	}
}
