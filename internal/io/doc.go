// Package ioutils provides file system and image utilities for
// ia-launcher.
//
// This package contains functions for:
//   - File copying and writing
//   - Directory creation
//   - Zip archive extraction into payload directories
//   - Title screenshot thumbnailing for the terminal browser
//
// # File Operations
//
//	// Copy a cached download into the payload directory
//	err := ioutils.CopyFile(ctx, "/library/keen/DATA.EXE", "/library/keen/dosbox_drive_c/DATA.EXE")
//
//	// Ensure the payload directory exists
//	err := ioutils.EnsureDir("/library/keen/dosbox_drive_c")
//
// # Archive Extraction
//
//	err := ioutils.Unzip("/library/keen/KEEN1.ZIP", "/library/keen/dosbox_drive_c")
//
// # Thumbnails
//
//	img, err := ioutils.ThumbnailFile("/library/keen/title.png", 80, 50)
package ioutils
