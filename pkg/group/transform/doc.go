// Package transform provides presentation transformations that prepare a
// group presentation for cover enumeration.
//
// # Overview
//
// The cover search in package covers assigns permutations to generators in
// label order and checks each relation as soon as all of its generators
// are fixed. How early that happens depends entirely on how generators are
// labelled and relations ordered. [Minimax] rewrites a presentation so that
// relations are front-loaded: each successive relation brings in as few
// new generators as possible, and each relation ends with its highest
// generator.
//
// The transformation only relabels generators, permutes relations and
// cyclically rotates them, so the group presented is unchanged.
//
// # Relabelling
//
// [Minimax] returns the mapping from old to new labels alongside the new
// presentation. [Relabel] and [Invert] apply and reverse such mappings,
// which the search uses to report results in the caller's original labels.
package transform
