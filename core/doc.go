// Package core defines the data model shared by every PatternForge
// component: Token, Pattern, Row, the tagged WeightSpec, the Config
// built through functional options, and the Result a solve produces.
//
// Everything here is a plain, single-threaded value type — PatternForge's
// core is deterministic and holds no shared mutable state.
// Only the bitset coverage engine parallelizes, and each of its workers
// writes a disjoint range of the output slice.
package core
