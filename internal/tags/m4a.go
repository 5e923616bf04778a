package tags

import (
	"bytes"
	"encoding/binary"
	"net/http"
	"os"
	"slices"

	mp4 "github.com/abema/go-mp4"

	"github.com/tunesort/tunesort/internal/model"
)

// M4AReader reads iTunes-style metadata atoms from MP4 audio files.
type M4AReader struct{}

// itemParents are the boxes that must be expanded to reach the metadata
// item list; itemBoxes are the items themselves.
var (
	itemParents = []string{"moov", "udta", "meta", "ilst"}
	itemBoxes   = []string{
		"(c)nam", "(c)ART", "(c)alb", "(c)day", "(c)wrt", "(c)gen",
		"(c)cmt", "(c)lyr", "(c)grp", "aART", "trkn", "disk", "cpil",
		"covr",
	}
)

// ReadSong walks the file's box structure and fills a Song from the
// metadata items it finds.
func (r *M4AReader) ReadSong(path string) (*model.Song, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	song := &model.Song{FilePath: path}

	var itemName string
	_, err = mp4.ReadBoxStructure(file, func(h *mp4.ReadHandle) (interface{}, error) {
		if !h.BoxInfo.IsSupportedType() {
			return nil, nil
		}

		typeName := h.BoxInfo.Type.String()

		if typeName == "mvhd" {
			box, _, err := h.ReadPayload()
			if err != nil {
				return nil, nil
			}
			if mvhd, ok := box.(*mp4.Mvhd); ok && mvhd.Timescale > 0 {
				duration := mvhd.DurationV0
				if duration == 0 {
					duration = uint32(mvhd.DurationV1)
				}
				song.LengthNanosec = int64(duration) * 1e9 / int64(mvhd.Timescale)
			}
			return nil, nil
		}

		if slices.Contains(itemParents, typeName) || slices.Contains(itemBoxes, typeName) {
			itemName = typeName
			return h.Expand()
		}

		if typeName == "data" {
			buf := new(bytes.Buffer)
			if _, err := h.ReadData(buf); err != nil {
				return nil, nil
			}
			data := buf.Bytes()
			// The first 8 bytes are the data atom's type and locale
			// header, not payload.
			if len(data) <= 8 {
				return nil, nil
			}
			data = data[8:]
			applyItem(song, itemName, data)
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	return song, nil
}

func applyItem(song *model.Song, item string, data []byte) {
	switch item {
	case "(c)nam":
		song.Title = string(data)
	case "(c)ART":
		song.Artist = string(data)
	case "(c)alb":
		song.Album = string(data)
	case "(c)day":
		song.Year = parseYear(string(data))
	case "(c)wrt":
		song.Composer = string(data)
	case "(c)gen":
		song.Genre = string(data)
	case "(c)cmt":
		song.Comment = string(data)
	case "(c)lyr":
		song.Lyrics = string(data)
	case "(c)grp":
		song.Grouping = string(data)
	case "aART":
		song.AlbumArtist = string(data)
	case "cpil":
		song.Compilation = len(data) > 0 && data[0] == 1
	case "trkn":
		if len(data) >= 4 {
			song.Track = int(binary.BigEndian.Uint16(data[2:4]))
		}
	case "disk":
		if len(data) >= 4 {
			song.Disc = int(binary.BigEndian.Uint16(data[2:4]))
		}
	case "covr":
		if len(data) > 0 {
			song.Art = &model.Artwork{
				MimeType: http.DetectContentType(data),
				Data:     data,
			}
		}
	}
}
