// Package audio generates playlist files for organized album
// directories.
//
// The PlaylistCreator writes M3U (plain or extended) and PLS playlists
// listing the songs that were organized into one directory:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true)
//	content := creator.CreatePlaylist(entries)
package audio
