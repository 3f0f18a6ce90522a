// Package connector computes the ribbons that link change blocks across the gap between the two panes of a split diff.
//
// BuildBlocks groups a paired-row stream into change blocks. Layout maps a block and the current scroll offsets of both panes to four pane-local y
// coordinates; Draw turns every visible block into path shapes; HitTest inverts the mapping for click navigation. All functions are pure: callers pass
// a Snapshot of everything that may change between frames (rows, scroll offsets, viewport height, palette) and get a fresh result each time.
package connector
