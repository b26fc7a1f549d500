// Package compose renders declarative layered scenes by evaluating a
// directed acyclic graph of texture-producing nodes.
//
// # Overview
//
// A scene configuration (layered surfaces, masks, text and
// post-effects) is turned into a node graph by BuildPipeline. Each
// node either produces a texture from nothing (surface, mask, text),
// combines the output of other nodes (mask-composite, effect-chain,
// overlay-composite), or writes the final texture to the visible
// canvas (output node). ExecutePipeline triggers one pull-evaluation
// of the graph: the output node requests its input's texture, which
// recursively renders everything that is stale.
//
// # Quick Start
//
//	pal := compose.Palette{"bg": compose.Hex("#1c2333"), "fg": compose.White}
//	scene := compose.SceneConfig{Layers: []compose.LayerConfig{
//	    compose.SurfaceLayer{Surface: compose.SurfaceConfig{
//	        Pattern: compose.PatternSolid, Primary: "bg", Secondary: "fg",
//	    }},
//	}}
//
//	backend, err := soft.New(1280, 720)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pipe, err := compose.BuildPipeline(scene, effect.NewRegistry())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := compose.ExecutePipeline(pipe, backend, pal); err != nil {
//	    log.Fatal(err)
//	}
//
// # Caching
//
// Two caching strategies coexist. Long-lived nodes own exactly one
// texture guarded by a dirty flag: a clean node answers a pull
// without issuing any backend call. Short-lived intermediates use a
// shared two-slot scratch pool addressed by a parity bit, so a pass
// never reads and writes the same buffer (ping-pong buffering).
//
// # Backends
//
// The graphics backend is an interface (Backend). backend/soft is a
// CPU implementation suitable for servers and tests; backend/gpu
// mirrors the composited canvas into a GPU texture via the gogpu
// framework.
//
// # Concurrency
//
// Execution is single-threaded and synchronous. At most one
// execution may be in flight per backend instance; nodes and pools
// are not safe for concurrent use.
package compose

// Version is the current version of the library.
const Version = "0.1.0"
