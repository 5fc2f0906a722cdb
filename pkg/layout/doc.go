// Package layout turns the flat member list into the nested family diagram.
//
// Layout happens in two steps:
//
//  1. [Build] walks the relationship graph depth first from every root (see
//     family.Roots) and produces a [Forest] of [Node] values. Each node is a
//     member plus their spouse, with the couple's children nested beneath.
//  2. [Arrange] assigns coordinates to the forest and returns a [Frame]: one
//     rectangle per member card and one per couple ("union") marker.
//
// [Compute] runs both steps and reports timing to the observability hooks.
//
// # Visited Set
//
// A single visited set is owned by [Build] and threaded through every
// recursive step. A member already placed anywhere in the diagram is never
// placed again, so shared spouses, remarriage chains and malformed cyclic
// data each render once and the walk always terminates. Members that cannot
// be reached from any root are reported in [Forest.Unplaced].
//
// # Anchors
//
// Frames expose every card and union marker under a string anchor id
// ([MemberAnchor], [UnionAnchor]). Connector geometry looks positions up by
// anchor id only, so it works the same against a frame, a scaled screen
// projection, or any other renderer that can answer the lookup.
package layout
