package compose

import "fmt"

// Pipeline is a built node graph ready for execution. Nodes holds every
// node in construction order, output last; node caches persist across
// executions, so reusing a Pipeline only re-renders what changed.
type Pipeline struct {
	// Output is the terminal canvas writer the executor renders through.
	Output *OutputNode

	// Nodes lists every node of the graph, output included.
	Nodes []Node
}

// Dispose releases every node's owned textures. The pipeline stays
// usable; the next execution re-renders from scratch.
func (p *Pipeline) Dispose() {
	for _, n := range p.Nodes {
		n.Dispose()
	}
}

// Invalidate marks every node dirty, forcing a full re-render on the
// next execution.
func (p *Pipeline) Invalidate() {
	for _, n := range p.Nodes {
		n.Invalidate()
	}
}

// Node returns the node with the given id, or nil.
func (p *Pipeline) Node(id string) Node {
	for _, n := range p.Nodes {
		if n.ID() == id {
			return n
		}
	}
	return nil
}

// builder accumulates nodes and hands out stable per-kind sequential
// ids while the config tree is walked.
type builder struct {
	registry EffectRegistry
	nodes    []Node
	seq      map[string]int
}

func (b *builder) id(kind, name string) string {
	n := b.seq[kind]
	b.seq[kind]++
	if name != "" {
		return fmt.Sprintf("%s-%d-%s", kind, n, name)
	}
	return fmt.Sprintf("%s-%d", kind, n)
}

func (b *builder) add(n TextureNode) TextureNode {
	b.nodes = append(b.nodes, n)
	return n
}

// BuildPipeline translates a declarative scene tree into a node graph.
// The effect registry may be nil, in which case every effect id is
// unrecognized and every chain degrades to identity.
func BuildPipeline(cfg SceneConfig, reg EffectRegistry) (*Pipeline, error) {
	b := &builder{registry: reg, seq: map[string]int{}}

	root, err := b.buildLayers(cfg.Layers, "scene")
	if err != nil {
		return nil, err
	}

	out, err := NewOutputNode(b.id("output", ""), root)
	if err != nil {
		return nil, err
	}
	b.nodes = append(b.nodes, out)

	p := &Pipeline{Output: out, Nodes: b.nodes}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// buildLayers builds one sibling run bottom-to-top: processors attach
// to the node built from the nearest preceding sibling, and multiple
// resulting siblings are stacked with an overlay node. A single sibling
// passes through without an overlay.
func (b *builder) buildLayers(layers []LayerConfig, scope string) (TextureNode, error) {
	var siblings []TextureNode
	for _, layer := range layers {
		if proc, ok := layer.(ProcessorLayer); ok {
			if len(siblings) == 0 {
				Logger().Warn("processor has no preceding layer to modify, skipping",
					"scope", scope, "processor", proc.Name)
				continue
			}
			modified, err := b.applyModifiers(siblings[len(siblings)-1], proc.Modifiers)
			if err != nil {
				return nil, err
			}
			siblings[len(siblings)-1] = modified
			continue
		}
		node, err := b.buildLayer(layer)
		if err != nil {
			return nil, err
		}
		siblings = append(siblings, node)
	}

	switch len(siblings) {
	case 0:
		return nil, fmt.Errorf("%s: %w", scope, ErrNoLayers)
	case 1:
		return siblings[0], nil
	}
	ov, err := NewOverlayNode(b.id("overlay", scope), siblings)
	if err != nil {
		return nil, err
	}
	return b.add(ov), nil
}

func (b *builder) buildLayer(layer LayerConfig) (TextureNode, error) {
	switch l := layer.(type) {
	case SurfaceLayer:
		return b.add(NewSurfaceNode(b.id("surface", l.Name), l.Surface)), nil

	case TextLayer:
		return b.add(NewTextNode(b.id("text", l.Name), l.Text)), nil

	case ImageLayer:
		cfg := SurfaceConfig{Pattern: PatternImage, Image: l.Image}
		return b.add(NewSurfaceNode(b.id("image", l.Name), cfg)), nil

	case GroupLayer:
		child, err := b.buildLayers(l.Children, groupScope(l.Name))
		if err != nil {
			return nil, err
		}
		if l.Mask == nil {
			return child, nil
		}
		return b.maskOf(child, *l.Mask)

	default:
		return nil, fmt.Errorf("compose: unsupported layer type %T", layer)
	}
}

// applyModifiers wraps the target with the processor's modifiers in
// order. Consecutive effect modifiers collapse into one chain node so a
// run of effects pays for a single owned texture.
func (b *builder) applyModifiers(target TextureNode, mods []Modifier) (TextureNode, error) {
	var pending []EffectConfig
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		chain, err := NewEffectChainNode(b.id("chain", ""), target, pending, b.registry)
		if err != nil {
			return err
		}
		target = b.add(chain)
		pending = nil
		return nil
	}

	for _, mod := range mods {
		switch m := mod.(type) {
		case EffectModifier:
			pending = append(pending, m.Effect)
		case MaskModifier:
			if err := flush(); err != nil {
				return nil, err
			}
			masked, err := b.maskOf(target, m.Mask)
			if err != nil {
				return nil, err
			}
			target = masked
		default:
			return nil, fmt.Errorf("compose: unsupported modifier type %T", mod)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return target, nil
}

func (b *builder) maskOf(target TextureNode, cfg MaskConfig) (TextureNode, error) {
	mask := b.add(NewMaskNode(b.id("mask", ""), cfg))
	comp, err := NewMaskCompositeNode(b.id("maskcomp", ""), target, mask)
	if err != nil {
		return nil, err
	}
	return b.add(comp), nil
}

func groupScope(name string) string {
	if name == "" {
		return "group"
	}
	return "group-" + name
}

// validate walks the graph from the output node and rejects input
// cycles and duplicate node ids. The builder cannot produce either, but
// graphs are also assembled by hand through the node constructors.
func (p *Pipeline) validate() error {
	const (
		visiting = 1
		done     = 2
	)
	state := map[Node]int{}
	var walk func(n Node) error
	walk = func(n Node) error {
		switch state[n] {
		case visiting:
			return fmt.Errorf("%w: through node %q", ErrCycle, n.ID())
		case done:
			return nil
		}
		state[n] = visiting
		for _, in := range n.Inputs() {
			if err := walk(in); err != nil {
				return err
			}
		}
		state[n] = done
		return nil
	}
	if err := walk(p.Output); err != nil {
		return err
	}

	seen := make(map[string]bool, len(p.Nodes))
	for _, n := range p.Nodes {
		if seen[n.ID()] {
			return fmt.Errorf("compose: duplicate node id %q", n.ID())
		}
		seen[n.ID()] = true
	}
	return nil
}

// ExecOption configures one pipeline execution.
type ExecOption func(*execOptions)

type execOptions struct {
	scale float64
}

// WithScale sets the resolution scale applied to pixel-based
// parameters, e.g. 0.5 for a half-resolution preview. Defaults to 1.
func WithScale(scale float64) ExecOption {
	return func(o *execOptions) {
		if scale > 0 {
			o.scale = scale
		}
	}
}

// ExecutePipeline runs one graph traversal: it queries the backend for
// the current viewport, pulls the output node and composites the result
// to the canvas. The scratch pool lives for exactly one execution;
// node-owned caches persist on the nodes across calls.
func ExecutePipeline(p *Pipeline, backend Backend, pal Palette, opts ...ExecOption) error {
	if backend == nil {
		return ErrNilBackend
	}
	o := execOptions{scale: 1}
	for _, opt := range opts {
		opt(&o)
	}

	vp := backend.Viewport()
	if vp.Empty() {
		return fmt.Errorf("compose: backend viewport %dx%d: %w", vp.Width, vp.Height, ErrUnsupported)
	}
	format := backend.TextureFormat()
	pool := NewScratchPool(backend, vp, format)
	defer pool.Dispose()

	ctx := &NodeContext{
		Backend:  backend,
		Viewport: vp,
		Palette:  pal,
		Scale:    o.scale,
		Pool:     pool,
		Device:   backend.DeviceHandle(),
		Format:   format,
	}
	return p.Output.Render(ctx)
}
