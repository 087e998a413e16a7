// Package source provides the random-access byte sources a hex view pages through.
//
// Two implementations are provided:
//
//   - FileSource reads from an open file with ReadAt and re-stats its length on Refresh
//   - MemorySource wraps an in-memory byte slice
//
// Sources are borrowed by the paging window only for the duration of a page load.
// Neither implementation is safe for concurrent mutation.
package source
