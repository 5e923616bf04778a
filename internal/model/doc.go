// Package model defines the metadata record the rest of tunesort works
// with.
//
// # Song
//
// Song is an immutable snapshot of one audio file's tags:
//
//	song, _ := tags.Read("/library/incoming/track.flac")
//	fmt.Println(song.Title, song.EffectiveAlbumArtist())
//
// The derived accessors (EffectiveAlbumArtist, EffectiveOriginalYear,
// BaseFilename, LengthSeconds) exist so the path renderer never has to
// know about tag fallback rules itself.
package model
