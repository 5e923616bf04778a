// Package config holds the persisted settings for the tunesort tools.
//
// Settings are stored as a single JSON file:
//
//	settings, err := config.Load("~/.config/tunesort/settings.json")
//	opts := settings.RenderOptions()
//	f := settings.Format()
//
// DefaultSettings provides sensible values for a first run; Load falls
// back to them when the file does not exist yet.
package config
