// Package organize coordinates the scan, plan and apply phases of
// sorting a music library.
//
// The Manager scans the library path for audio files, reads their tags,
// renders a destination path for each song from the configured template
// and then moves or copies the files into place. Progress is reported
// through a callback so both the CLI and the TUI can surface it.
package organize
