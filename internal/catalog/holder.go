package catalog

import (
	"sync/atomic"

	"github.com/tinytelemetry/mbtilens/internal/model"
)

// Holder publishes the current catalog to readers while a Watcher swaps it.
type Holder struct {
	current atomic.Pointer[Catalog]
}

// NewHolder returns a holder serving c.
func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.current.Store(c)
	return h
}

// Current returns the catalog readers should use right now.
func (h *Holder) Current() *Catalog {
	return h.current.Load()
}

// Swap replaces the served catalog.
func (h *Holder) Swap(c *Catalog) {
	if c != nil {
		h.current.Store(c)
	}
}

func (h *Holder) Lookup(code string) (model.Record, bool) {
	return h.Current().Lookup(code)
}

func (h *Holder) Resolve(raw string) model.Resolution {
	return h.Current().Resolve(raw)
}

func (h *Holder) Codes() []string {
	return h.Current().Codes()
}

var (
	_ model.Catalog = (*Holder)(nil)
	_ model.Catalog = (*Catalog)(nil)
)
