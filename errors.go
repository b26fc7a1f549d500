package compose

import "errors"

// Common errors returned by the compositor engine.
var (
	// ErrUnknownEffect is returned when a single-effect node is constructed
	// with an effect id the registry does not recognize. This is caught at
	// construction, before any rendering.
	ErrUnknownEffect = errors.New("compose: unknown effect id")

	// ErrUnknownPattern is returned when a surface configuration names a
	// pattern kind no draw specification can be built for.
	ErrUnknownPattern = errors.New("compose: unknown surface pattern")

	// ErrUnknownShape is returned when a mask configuration names a shape
	// kind no greymap specification can be built for.
	ErrUnknownShape = errors.New("compose: unknown mask shape")

	// ErrNoLayers is returned when an overlay-composite node is constructed
	// with an empty layer list, or a scene produces no drawable nodes.
	ErrNoLayers = errors.New("compose: no layers")

	// ErrNilInput is returned when a compositor node is constructed with a
	// nil input node.
	ErrNilInput = errors.New("compose: nil input node")

	// ErrNilBackend is returned when ExecutePipeline is called without a
	// backend.
	ErrNilBackend = errors.New("compose: nil backend")

	// ErrCycle is returned by BuildPipeline when the constructed graph
	// contains a cycle. The pull evaluator would recurse forever on such a
	// graph, so it is rejected at construction time.
	ErrCycle = errors.New("compose: node graph contains a cycle")

	// ErrUnsupported is returned by a backend that lacks a capability
	// required by a node present in the graph.
	ErrUnsupported = errors.New("compose: operation not supported by backend")

	// ErrDisposed is returned when a disposed resource is used.
	ErrDisposed = errors.New("compose: resource already disposed")
)
