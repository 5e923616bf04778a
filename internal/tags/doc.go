// Package tags reads song metadata out of audio files.
//
// A Reader exists per container format: ID3v2 for MP3, Vorbis comments
// for FLAC, and iTunes metadata atoms for M4A. Read picks the reader
// from the file extension and returns a filled model.Song.
package tags
