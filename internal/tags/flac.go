package tags

import (
	"strings"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"

	"github.com/tunesort/tunesort/internal/model"
)

// FLACReader reads Vorbis comments and stream info from FLAC files.
type FLACReader struct{}

// ReadSong parses the file's metadata blocks into a Song.
func (r *FLACReader) ReadSong(path string) (*model.Song, error) {
	file, err := flac.ParseFile(path)
	if err != nil {
		return nil, err
	}

	comments := vorbisComments(file.Meta)

	track, _ := parsePosition(first(comments, "TRACKNUMBER"))
	disc, _ := parsePosition(first(comments, "DISCNUMBER"))

	song := &model.Song{
		Title:       first(comments, "TITLE"),
		Album:       first(comments, "ALBUM"),
		Artist:      strings.Join(comments["ARTIST"], ", "),
		AlbumArtist: first(comments, "ALBUMARTIST"),
		Composer:    first(comments, "COMPOSER"),
		Performer:   first(comments, "PERFORMER"),
		Grouping:    first(comments, "GROUPING"),
		Lyrics:      first(comments, "LYRICS"),
		Genre:       first(comments, "GENRE"),
		Comment:     first(comments, "COMMENT"),

		Compilation: first(comments, "COMPILATION") == "1",

		Year:         parseYear(first(comments, "DATE")),
		OriginalYear: parseYear(first(comments, "ORIGINALDATE")),
		Track:        track,
		Disc:         disc,

		FilePath: path,
	}

	if info, err := file.GetStreamInfo(); err == nil {
		song.Samplerate = info.SampleRate
		song.Bitdepth = info.BitDepth
		if info.SampleRate > 0 {
			song.LengthNanosec = info.SampleCount * 1e9 / int64(info.SampleRate)
		}
	}

	song.Art = flacArtwork(file.Meta)

	return song, nil
}

// vorbisComments flattens every Vorbis comment block into an upper-cased
// key to values map.
func vorbisComments(blocks []*flac.MetaDataBlock) map[string][]string {
	comments := make(map[string][]string)
	for _, block := range blocks {
		if block.Type != flac.VorbisComment {
			continue
		}
		parsed, err := flacvorbis.ParseFromMetaDataBlock(*block)
		if err != nil {
			continue
		}
		for _, comment := range parsed.Comments {
			key, value, found := strings.Cut(comment, "=")
			if !found {
				continue
			}
			key = strings.ToUpper(key)
			comments[key] = append(comments[key], value)
		}
	}
	return comments
}

func first(comments map[string][]string, key string) string {
	if values := comments[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

func flacArtwork(blocks []*flac.MetaDataBlock) *model.Artwork {
	for _, block := range blocks {
		if block.Type != flac.Picture {
			continue
		}
		pic, err := flacpicture.ParseFromMetaDataBlock(*block)
		if err != nil || len(pic.ImageData) == 0 {
			continue
		}
		return &model.Artwork{MimeType: pic.MIME, Data: pic.ImageData}
	}
	return nil
}
