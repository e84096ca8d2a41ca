// Package collage builds a grid collage out of a list of image URLs.
//
// A run has four stages. The URL list is read from disk, every URL is fetched
// and decoded, the decoded images are pasted row by row onto a single canvas,
// and the canvas is downscaled when one of its sides is too large for the JPEG
// encoder before being saved.
//
// Fetching is best effort. A URL that cannot be downloaded or decoded is
// logged and skipped, and it does not take up a grid slot. When nothing can be
// decoded the run ends without writing any output. The only failure that
// aborts a run is an unreadable URL list (or a cancelled context).
//
// Fetches run sequentially by default. With more than one worker they run on
// a bounded pool, but images are always placed in URL-list order.
package collage
