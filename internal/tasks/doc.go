// Package tasks walks the paginated parts of the catalog for bulk exports.
//
// # Pagination
//
// News listings and album searches are paged with a lastCid cursor: the cid of the last item of the previous
// page. [Exporter.WalkNews] and [Exporter.WalkAlbumSearch] follow the cursor until a page reports end, comes
// back empty, or fails to advance the cursor. An envelope with a non-zero code aborts the walk with
// shared.ErrUpstreamRejected.
//
// # Pacing
//
// Every upstream call waits on a single [rate.Limiter] (2 requests per second, burst 1, by default), including
// the calls made by the detail worker pool.
//
// # Progress Reporting
//
// Operations accept an optional channel of [ProgressUpdate]. Updates are sent with select and default so a
// slow reader never blocks an export.
package tasks
