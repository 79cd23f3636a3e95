// Package group provides words and finite presentations of groups.
//
// # Overview
//
// A [Presentation] names generators 0..n-1 and lists relations: [Word]
// values that are required to equal the identity. Words are sequences of
// [Term] values (a generator and an integer exponent) multiplied left to
// right. This is the input to the cover enumeration in package covers and
// also its output: each index-n subgroup found is returned as a new
// Presentation.
//
// # Word Algebra
//
// Words built through [Word.AddTermLast] stay in a merged form where
// adjacent terms never share a generator, so "a a^-1" collapses to the
// empty word as it is built. [Word.CycleLeft] rotates a relation, which
// leaves the normal closure unchanged; the reordering in the transform
// subpackage uses it to put a relation's highest generator last.
//
// # Text Format
//
// [ParsePresentation] reads the conventional angle-bracket notation:
//
//	p, err := group.ParsePresentation("<a, b | a^2, b^3, (a b)^2>")
//
// and [Presentation.String] writes it back. Relations may also be given as
// equations ("a b = b a"). [ParseWord] parses a single relation against a
// list of generator names, which is how the structured formats in package
// io are read.
package group
