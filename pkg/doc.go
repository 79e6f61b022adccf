// Package pkg provides the core libraries for nubegen word-cloud generation.
//
// # Overview
//
// Nubegen turns a single final color and a word list into several rendered
// word-cloud variations. The pkg directory is organized by concern:
//
//  1. [palette] - Gradient derivation from the anchor color
//  2. [freq] - Randomized frequency-tier assignment
//  3. [config] - Configuration, snapshot store, settings, import/export
//  4. [render] - Rasterization, fonts, thumbnails
//  5. [pipeline] - Orchestration (gradient → weights → raster → artifacts)
//  6. [cache] - Rendered-artifact cache backends
//
// # Architecture
//
// The typical data flow through nubegen:
//
//	Configuration (color, stops, words, dimensions)
//	         ↓
//	    [palette] package (derive gradient stops)
//	         ↓
//	    [freq] package (assign weight tiers per variation)
//	         ↓
//	    [render] package (rasterize the cloud)
//	         ↓
//	    PNG/JSON artifacts, thumbnails
//
// The [pipeline] package drives this flow and consults [cache] for seeded,
// reproducible runs. The supporting packages [apperr], [wordlist],
// [observability], and [buildinfo] carry errors, parsing, hooks, and
// version metadata.
package pkg
