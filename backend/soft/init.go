package soft

import (
	"github.com/gogpu/compose"
	"github.com/gogpu/compose/backend"
)

// init registers the software backend on package import.
func init() {
	backend.Register(backend.NameSoft, func(width, height int) (compose.Backend, error) {
		return New(width, height)
	})
}
