package tags

import (
	"github.com/bogem/id3v2"

	"github.com/tunesort/tunesort/internal/model"
)

// MP3Reader reads ID3v2 tags from MP3 files.
type MP3Reader struct{}

// ReadSong parses the file's ID3v2 tag into a Song. A file without any
// tag yields a Song with only its FilePath set.
func (r *MP3Reader) ReadSong(path string) (*model.Song, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer tag.Close()

	track, _ := parsePosition(tag.GetTextFrame("TRCK").Text)
	disc, _ := parsePosition(tag.GetTextFrame("TPOS").Text)

	year := parseYear(tag.GetTextFrame("TYER").Text)
	if year == 0 {
		// ID3v2.4 stores the recording time instead.
		year = parseYear(tag.GetTextFrame("TDRC").Text)
	}
	originalYear := parseYear(tag.GetTextFrame("TORY").Text)
	if originalYear == 0 {
		originalYear = parseYear(tag.GetTextFrame("TDOR").Text)
	}

	song := &model.Song{
		Title:       tag.Title(),
		Album:       tag.Album(),
		Artist:      tag.Artist(),
		AlbumArtist: tag.GetTextFrame("TPE2").Text,
		Composer:    tag.GetTextFrame("TCOM").Text,
		Performer:   tag.GetTextFrame("TOPE").Text,
		Grouping:    tag.GetTextFrame("TIT1").Text,
		Genre:       tag.Genre(),

		Compilation: tag.GetTextFrame("TCMP").Text == "1",

		Year:         year,
		OriginalYear: originalYear,
		Track:        track,
		Disc:         disc,

		FilePath: path,
	}

	song.Comment = firstComment(tag)
	song.Lyrics = firstLyrics(tag)
	song.Art = attachedPicture(tag)

	return song, nil
}

func firstComment(tag *id3v2.Tag) string {
	for _, framer := range tag.GetFrames(tag.CommonID("Comments")) {
		if comment, ok := framer.(id3v2.CommentFrame); ok {
			return comment.Text
		}
	}
	return ""
}

func firstLyrics(tag *id3v2.Tag) string {
	for _, framer := range tag.GetFrames(tag.CommonID("Unsynchronised lyrics/text transcription")) {
		if lyrics, ok := framer.(id3v2.UnsynchronisedLyricsFrame); ok {
			return lyrics.Lyrics
		}
	}
	return ""
}

func attachedPicture(tag *id3v2.Tag) *model.Artwork {
	for _, framer := range tag.GetFrames(tag.CommonID("Attached picture")) {
		if pic, ok := framer.(id3v2.PictureFrame); ok && len(pic.Picture) > 0 {
			return &model.Artwork{MimeType: pic.MimeType, Data: pic.Picture}
		}
	}
	return nil
}
