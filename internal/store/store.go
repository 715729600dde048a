package store

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/ia-launcher/internal/http"
	ioutils "github.com/handiism/ia-launcher/internal/io"
	"github.com/handiism/ia-launcher/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a payload acquisition progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// FetchError reports a failed payload download.
//
// Downloads are not retried here; retry policy, if any, belongs to the
// caller. Files fetched before the failure stay cached in the title
// directory, so a later attempt resumes where this one stopped.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher downloads a URL to a local file. *http.Client implements it;
// tests substitute their own.
type Fetcher interface {
	DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error
}

// Store acquires title payloads: it downloads each source URL into the
// title directory and materializes the payload directory from the
// cached files.
type Store struct {
	fetcher    Fetcher
	onProgress func(ProgressEvent)
}

// NewStore creates a Store downloading with the default HTTP client.
// onProgress may be nil.
func NewStore(onProgress func(ProgressEvent)) *Store {
	return &Store{
		fetcher:    http.NewClient(),
		onProgress: onProgress,
	}
}

// NewStoreWithFetcher creates a Store with a custom download function.
func NewStoreWithFetcher(fetcher Fetcher, onProgress func(ProgressEvent)) *Store {
	return &Store{
		fetcher:    fetcher,
		onProgress: onProgress,
	}
}

// EnsurePayload makes sure the game's payload directory exists and is
// populated.
//
// If the payload directory already exists this is a no-op: nothing is
// fetched, nothing is touched. Otherwise each source URL is processed
// in order:
//
//  1. The local filename is the URL's final path segment, percent-decoded.
//  2. The file is downloaded into the title directory unless a cached
//     copy is already there. Download failures return a *FetchError.
//  3. Archives (zip, or the archive.org "play" items) are extracted
//     into the payload directory; any dosbox.conf an archive ships is
//     deleted, since title configuration comes from metadata.ini only.
//     Anything else is copied verbatim into the payload directory.
func (s *Store) EnsurePayload(ctx context.Context, g *model.Game) error {
	if g.HasPayload() {
		return nil
	}

	for _, sourceURL := range g.URLs {
		filename := localFileName(sourceURL)
		if filename == "" {
			return &FetchError{URL: sourceURL, Err: fmt.Errorf("no filename in URL")}
		}

		cached := filepath.Join(g.Dir, filename)
		if _, err := os.Stat(cached); err != nil {
			s.progress(ProgressEvent{Message: fmt.Sprintf("Downloading %s", filename), Level: LevelInfo})
			if err := s.fetcher.DownloadFile(ctx, sourceURL, cached, nil); err != nil {
				return &FetchError{URL: sourceURL, Err: err}
			}
		}

		if isArchive(filename) {
			s.progress(ProgressEvent{Message: fmt.Sprintf("Extracting %s", filename), Level: LevelInfo})
			if err := s.extract(cached, g); err != nil {
				return fmt.Errorf("extracting %s: %w", filename, err)
			}
		} else {
			if err := ioutils.EnsureDir(g.GameDir); err != nil {
				return err
			}
			if err := ioutils.CopyFile(ctx, cached, filepath.Join(g.GameDir, filename)); err != nil {
				return err
			}
			s.progress(ProgressEvent{Message: fmt.Sprintf("Copied %s", filename), Level: LevelVerbose})
		}
	}

	return nil
}

// extract unpacks an archive into the payload directory and removes
// any emulator config file the archive happened to contain. Archived
// configs are never trusted; the session controller writes its own
// from metadata when the title defines one.
func (s *Store) extract(archivePath string, g *model.Game) error {
	if err := ioutils.Unzip(archivePath, g.GameDir); err != nil {
		return err
	}

	if _, err := os.Stat(g.ConfPath); err == nil {
		if err := os.Remove(g.ConfPath); err != nil {
			return err
		}
	}

	return nil
}

// localFileName derives the cache filename from a source URL: the
// final path segment, percent-decoded.
func localFileName(sourceURL string) string {
	segment := sourceURL[strings.LastIndex(sourceURL, "/")+1:]
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return segment
	}
	return decoded
}

// isArchive classifies a fetched file by suffix: zip archives in any
// case, plus archive.org's extensionless "play" items, are extracted;
// everything else is copied verbatim.
func isArchive(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, "zip") || strings.HasSuffix(filename, "play")
}

func (s *Store) progress(event ProgressEvent) {
	if s.onProgress != nil {
		s.onProgress(event)
	}
}
