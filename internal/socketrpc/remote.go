package socketrpc

import (
	"github.com/tinytelemetry/mbtilens/internal/model"

	"go.uber.org/zap"
)

// Remote adapts a Client to model.Catalog. Calls that fail are answered
// from fallback, so a service that goes away mid-session degrades to the
// local catalog instead of breaking the caller.
type Remote struct {
	client   *Client
	fallback model.Catalog
	logger   *zap.Logger
}

var _ model.Catalog = (*Remote)(nil)

// NewRemote wraps client. fallback must not be nil.
func NewRemote(client *Client, fallback model.Catalog, logger *zap.Logger) *Remote {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Remote{client: client, fallback: fallback, logger: logger}
}

func (r *Remote) Resolve(raw string) model.Resolution {
	res, err := r.client.Resolve(raw)
	if err != nil {
		r.logger.Warn("socketrpc: Resolve failed, using local catalog", zap.Error(err))
		return r.fallback.Resolve(raw)
	}
	return res
}

func (r *Remote) Lookup(code string) (model.Record, bool) {
	rec, ok, err := r.client.Lookup(code)
	if err != nil {
		r.logger.Warn("socketrpc: Lookup failed, using local catalog", zap.Error(err))
		return r.fallback.Lookup(code)
	}
	return rec, ok
}

func (r *Remote) Codes() []string {
	codes, err := r.client.Codes()
	if err != nil {
		r.logger.Warn("socketrpc: Codes failed, using local catalog", zap.Error(err))
		return r.fallback.Codes()
	}
	return codes
}
