// Package http provides an HTTP client configured for downloading
// title payloads from archive mirrors.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Streaming file downloads with progress tracking
//   - Timeout handling sized for large archives
//
// # Basic Usage
//
//	client := http.NewClient()
//	client.DownloadFile(ctx, zipURL, "/library/keen/KEEN1.ZIP", func(written, total int64) {
//	    fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	})
//
// # Progress Tracking
//
// The ProgressWriter type can wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
