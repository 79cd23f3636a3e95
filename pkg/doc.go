// Package pkg provides the core libraries for covertower.
//
// # Overview
//
// Covertower enumerates the transitive permutation representations of a
// finitely presented group on n points, one per conjugacy class. Each of them
// is a connected n-sheeted cover of the presentation complex, and each comes
// with a presentation of the index-n subgroup it defines.
//
// The pkg directory is organized into three areas:
//
//  1. Algebra: [perm], [group], [covers]
//  2. Input and output: [io], [render]
//  3. Infrastructure: [pipeline], [cache], [observability], [errors], [buildinfo]
//
// # Architecture
//
// The data flow through covertower:
//
//	text / JSON / TOML / YAML presentation
//	         ↓
//	    [group] package (parse, validate, reorder)
//	         ↓
//	    [covers] package (relation schedule + search + subgroup presentation)
//	         ↓
//	    [io] package (JSON export) / [render] package (Schreier graph)
//
// # Quick Start
//
//	p := group.MustParse("<a, b | a^2, b^3, (a b)^2>")
//	for c, err := range covers.All(p, 3) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(c)
//	}
//
// # Main Packages
//
// [perm] - The symmetric group S_n for n up to 7: permutations as ranks in
// lexicographic order, product and inverse tables, conjugacy-minimal
// representatives and their automorphism groups.
//
// [group] - Words, presentations, and the textual presentation syntax.
// [group/transform] relabels generators so every relation ends in its
// largest generator.
//
// [covers] - The enumeration: relation schedule, depth-first search with
// conjugacy pruning, and the Reidemeister-Schreier subgroup presentation.
//
// [io] - Presentation files and the JSON export of an enumeration run.
//
// [render] - Schreier graphs as DOT, SVG, PDF or PNG.
//
// [pipeline] - Load, enumerate and render with caching, shared by the CLI
// and the HTTP API.
//
// [cache] - File, Redis and no-op result caches.
//
// [observability] - Hooks for enumeration, cache and HTTP events.
//
// [errors] - Error codes and input validators.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/covers/...   # Specific package
//	go test -run Example ./... # Examples only
//
// [perm]: https://pkg.go.dev/github.com/matzehuels/covertower/pkg/perm
// [group]: https://pkg.go.dev/github.com/matzehuels/covertower/pkg/group
// [group/transform]: https://pkg.go.dev/github.com/matzehuels/covertower/pkg/group/transform
// [covers]: https://pkg.go.dev/github.com/matzehuels/covertower/pkg/covers
// [io]: https://pkg.go.dev/github.com/matzehuels/covertower/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/covertower/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/covertower/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/covertower/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/covertower/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/covertower/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/covertower/pkg/buildinfo
package pkg
