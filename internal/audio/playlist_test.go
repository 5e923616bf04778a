package audio

import (
	"strings"
	"testing"

	"github.com/tunesort/tunesort/internal/model"
)

func TestPlaylistCreator_M3U(t *testing.T) {
	creator := NewPlaylistCreator(FormatM3U, false)

	content := creator.CreatePlaylist(testEntries())

	if strings.Contains(content, "#EXTM3U") {
		t.Error("plain M3U should not contain #EXTM3U header")
	}
	if !strings.Contains(content, "01 First.mp3") {
		t.Error("M3U should contain song filename")
	}
	if strings.Contains(content, "/library/") {
		t.Error("M3U entries should be relative to the album directory")
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	creator := NewPlaylistCreator(FormatM3U, true)

	content := creator.CreatePlaylist(testEntries())

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:180,Test Artist - First") {
		t.Errorf("Extended M3U should contain EXTINF line, got:\n%s", content)
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	creator := NewPlaylistCreator(FormatPLS, false)

	content := creator.CreatePlaylist(testEntries())

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File1=01 First.mp3") {
		t.Error("PLS should contain File1=")
	}
	if !strings.Contains(content, "NumberOfEntries=2") {
		t.Error("PLS should contain NumberOfEntries")
	}
}

func TestPlaylistFormat_Extension(t *testing.T) {
	if got := FormatM3U.Extension(); got != "m3u" {
		t.Errorf("FormatM3U.Extension() = %q, want %q", got, "m3u")
	}
	if got := FormatPLS.Extension(); got != "pls" {
		t.Errorf("FormatPLS.Extension() = %q, want %q", got, "pls")
	}
}

func testEntries() []Entry {
	return []Entry{
		{
			Path: "/library/Test Artist/Test Album/01 First.mp3",
			Song: &model.Song{
				Title:         "First",
				Artist:        "Test Artist",
				Track:         1,
				LengthNanosec: 180 * 1e9,
			},
		},
		{
			Path: "/library/Test Artist/Test Album/02 Second.mp3",
			Song: &model.Song{
				Title:         "Second",
				Artist:        "Test Artist",
				Track:         2,
				LengthNanosec: 200 * 1e9,
			},
		},
	}
}
