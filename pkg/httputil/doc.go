// Package httputil fetches remote tree documents.
//
// # Overview
//
// The CLI accepts an http or https URL wherever it accepts a document path.
// [Fetcher] downloads the document and [Retry] repeats the request on
// transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Other failures are returned at once. A 404 maps to the FILE_NOT_FOUND
// error code so that callers treat a missing URL like a missing file.
//
// Usage:
//
//	data, err := httputil.Fetcher{}.Fetch(ctx, "https://example.com/tree.json")
//
// # Configuration
//
// The zero [Fetcher] uses [DefaultClient], 3 attempts and a 1 second base
// delay that doubles after every retry. Bodies larger than [MaxBodySize]
// are rejected.
package httputil
