// Package store provides the content store that acquires title
// payloads on first run.
//
// # Store
//
// The Store turns a title's source URLs into a populated payload
// directory:
//
//	s := store.NewStore(func(event store.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	err := s.EnsurePayload(ctx, game)
//
// Downloads are cached in the title directory; presence is checked
// per file, so an interrupted acquisition resumes on the next attempt
// without refetching what already arrived. An existing payload
// directory short-circuits the whole operation.
//
// # Errors
//
// Network and HTTP failures surface as *FetchError and are never
// retried here. A failed title leaves other titles untouched.
package store
