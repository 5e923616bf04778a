// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - File copying, moving and writing
//   - Directory creation
//   - Image resizing and format conversion
//
// # File Operations
//
//	// Copy a file
//	err := ioutils.CopyFile(ctx, "/src/file.mp3", "/dst/file.mp3")
//
//	// Move a file (rename, falling back to copy+remove across filesystems)
//	err := ioutils.MoveFile(ctx, "/src/file.mp3", "/dst/file.mp3")
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Image Processing
//
// The ImageService handles cover art manipulation:
//
//	svc := ioutils.NewImageService()
//
//	// Resize image to fit within 1000x1000
//	resized, _ := svc.ResizeImage(ctx, artData, 1000, 1000)
//
//	// Convert to JPEG
//	jpeg, _ := svc.ConvertToJPEG(ctx, artData)
package ioutils
