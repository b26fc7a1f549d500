package gpu

import (
	"github.com/gogpu/compose"
	"github.com/gogpu/compose/backend"
)

// init registers the GPU backend on package import. The backend is
// created detached; call Attach to connect it to a host GPU context.
func init() {
	backend.Register(backend.NameGPU, func(width, height int) (compose.Backend, error) {
		return New(width, height)
	})
}
