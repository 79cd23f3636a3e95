// Package io reads and writes presentations and enumeration results.
//
// # Presentation Formats
//
// A presentation can be stored in four formats, chosen by [FormatFromPath]
// from the file extension:
//
//   - text (.txt, .pres, anything else): "<a, b | a^2, b^3, (a b)^2>"
//   - JSON (.json)
//   - TOML (.toml)
//   - YAML (.yaml, .yml)
//
// The structured formats hold generator names and relations in the text
// syntax of package group:
//
//	{
//	  "generators": ["a", "b"],
//	  "relations": ["a^2", "b^3", "(a b)^2"]
//	}
//
// or, in TOML:
//
//	generators = ["a", "b"]
//	relations = ["a^2", "b^3", "(a b)^2"]
//
// Use [ImportPresentation] to read a file and [ReadPresentation] to read
// from any io.Reader. Errors carry the INVALID_FORMAT code; a relation that
// fails to parse is reported with its index and byte offset.
//
// # Cover Export
//
// [NewExport] turns the covers of one run into a [CoverExport], a JSON
// document with a run ID, the input presentation, and for every cover its
// permutations, spanning tree, subgroup presentation, and the word of the
// parent group each subgroup generator stands for. [WriteCovers] and
// [ReadCovers] encode and decode it; the pipeline also stores it in the
// result cache.
package io
