package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tunesort/tunesort/internal/format"
)

// DefaultTemplate is the library layout used when no template is
// configured.
const DefaultTemplate = "%albumartist/%album{ (%year)}/{%disc-}%track %title"

// Settings holds all configuration options.
type Settings struct {
	// Library settings
	LibraryPath     string   `json:"library_path"`
	DestinationPath string   `json:"destination_path"`
	IncludeGlobs    []string `json:"include_globs"`
	ExcludeGlobs    []string `json:"exclude_globs"`

	// Naming
	Template           string `json:"template"`
	RemoveProblematic  bool   `json:"remove_problematic"`
	RemoveNonFAT       bool   `json:"remove_non_fat"`
	RemoveNonASCII     bool   `json:"remove_non_ascii"`
	AllowExtendedASCII bool   `json:"allow_extended_ascii"`
	ReplaceSpaces      bool   `json:"replace_spaces"`

	// Apply behavior
	CopyInsteadOfMove bool `json:"copy_instead_of_move"`
	MaxWorkers        int  `json:"max_workers"`
	Overwrite         bool `json:"overwrite"`

	// Cover art
	SaveCoverArtInFolder bool   `json:"save_cover_art_in_folder"`
	CoverArtFileName     string `json:"cover_art_file_name"`
	CoverArtResize       bool   `json:"cover_art_resize"`
	CoverArtMaxSize      int    `json:"cover_art_max_size"`
	ConvertCoverArtToJPG bool   `json:"convert_cover_art_to_jpg"`

	// Playlists
	CreatePlaylists bool   `json:"create_playlists"`
	PlaylistFormat  string `json:"playlist_format"`
	M3UExtended     bool   `json:"m3u_extended"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		LibraryPath:     filepath.Join(homeDir, "Music", "Incoming"),
		DestinationPath: filepath.Join(homeDir, "Music", "Library"),
		IncludeGlobs:    []string{"**/*.mp3", "**/*.flac", "**/*.m4a"},
		ExcludeGlobs:    nil,

		Template:      DefaultTemplate,
		ReplaceSpaces: true,

		CopyInsteadOfMove: false,
		MaxWorkers:        4,
		Overwrite:         false,

		SaveCoverArtInFolder: false,
		CoverArtFileName:     "cover",
		CoverArtResize:       true,
		CoverArtMaxSize:      1000,
		ConvertCoverArtToJPG: true,

		CreatePlaylists: false,
		PlaylistFormat:  "m3u",
		M3UExtended:     true,
	}
}

// Load reads settings from a JSON file. A missing file yields the
// defaults, not an error.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Format builds the filename template from the configured string.
func (s *Settings) Format() format.Format {
	return format.New(s.Template)
}

// RenderOptions converts the sanitizer switches to format.Options.
func (s *Settings) RenderOptions() format.Options {
	return format.Options{
		RemoveProblematic:  s.RemoveProblematic,
		RemoveNonFAT:       s.RemoveNonFAT,
		RemoveNonASCII:     s.RemoveNonASCII,
		AllowExtendedASCII: s.AllowExtendedASCII,
		ReplaceSpaces:      s.ReplaceSpaces,
	}
}
