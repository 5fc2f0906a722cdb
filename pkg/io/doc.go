// Package io provides JSON and YAML import and export for family trees.
//
// # Overview
//
// The stored blob is an implementation detail of the storage backend. This
// package is the user-facing file format: a tree exported here can be edited
// by hand, version-controlled, and imported back into any backend.
//
// # Format
//
// Both encodings carry the same document, a top-level "members" array:
//
//	{
//	  "members": [
//	    {"id": "a", "firstName": "Ada", "gender": "female", "spouseId": "b"},
//	    {"id": "b", "firstName": "Bo", "gender": "male", "spouseId": "a"}
//	  ]
//	}
//
// or in YAML:
//
//	members:
//	  - id: a
//	    firstName: Ada
//	    gender: female
//	    spouseId: b
//
// A bare array of members is also accepted on import.
//
// # Validation
//
// Import rejects documents with duplicate or empty ids and members that fail
// family.Member.Validate. Relationship pointers that reference unknown ids
// are kept: the editor and the layout tolerate them.
//
// # Format Selection
//
// [Import] and [Export] pick the encoding from the file extension (".json",
// ".yaml", ".yml"). Use [ReadJSON]/[WriteJSON] or [ReadYAML]/[WriteYAML] to
// work with streams directly.
package io
