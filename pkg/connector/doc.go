// Package connector computes the curved lines joining parents to children.
//
// The geometry runs against rendered positions, not the logical model:
// callers inject an [AnchorLookup] that maps an anchor id (see
// layout.MemberAnchor and layout.UnionAnchor) to an on-screen rectangle.
// Lookups that fail mean "not rendered yet"; the affected unit or child is
// skipped and picked up on the next recomputation.
//
// Children are grouped into family units ([Units]) keyed by their parents, so
// a child that only references one partner of a couple still hangs from the
// couple's marker.
//
// [Recomputer] owns recomputation. Hosts call [Recomputer.Invalidate] after
// anything that moves anchors (pan, zoom, add, remove); the recomputer
// coalesces signals, recomputes off the caller's goroutine and publishes the
// result.
package connector
