package ioutils

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Unzip extracts a zip archive into destFolder, creating it if needed.
//
// Directory entries are recreated, file entries are extracted with
// their relative paths. Entries that would escape destFolder are
// rejected.
func Unzip(zipFile, destFolder string) error {
	r, err := zip.OpenReader(zipFile)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := os.MkdirAll(destFolder, 0755); err != nil {
		return err
	}

	for _, file := range r.File {
		if err := extractEntry(file, destFolder); err != nil {
			return err
		}
	}

	return nil
}

func extractEntry(file *zip.File, destFolder string) error {
	destPath := filepath.Join(destFolder, file.Name)

	// Reject entries that traverse outside the destination.
	if !strings.HasPrefix(destPath, filepath.Clean(destFolder)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal path in archive: %s", file.Name)
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	destFile, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, rc)
	return err
}
