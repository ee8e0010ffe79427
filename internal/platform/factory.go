package platform

import (
	"github.com/aretw0/pasty/pkg/core"
)

// New builds a ready-to-use note service.
//
//	svc, err := pasty.New("./store", pasty.WithAutoInit(true))
//
// The URI argument is adapter-specific (the store root for 'fs').
func New(uri string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	keys, repo, err := initStores(uri, o)
	if err != nil {
		return nil, err
	}

	return core.NewService(keys, repo, o.logger), nil
}
