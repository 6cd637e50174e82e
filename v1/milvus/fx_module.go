package milvus

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/semantic-retrieval/std/v1/datastore"
	"github.com/semantic-retrieval/std/v1/logger"
	"github.com/semantic-retrieval/std/v1/observability"
)

// FXModule is an fx.Module that provides the Milvus-backed datastore.
// It wires the Store as the datastore.DataStore implementation and ties
// its connection to the application lifecycle.
//
// Usage:
//
//	app := fx.New(
//	    milvus.FXModule,
//	    fx.Provide(func() *milvus.Config {
//	        return loadMilvusConfig()
//	    }),
//	)
var FXModule = fx.Module("milvus",
	fx.Provide(
		NewStoreWithDI,
		func(s *Store) datastore.DataStore { return s },
	),
	fx.Invoke(RegisterStoreLifecycle),
)

// bootstrapTimeout bounds connecting and collection bootstrap at startup.
const bootstrapTimeout = 60 * time.Second

// StoreParams groups the dependencies needed to create a Store.
type StoreParams struct {
	fx.In

	Config   *Config
	Logger   *logger.Logger         `optional:"true"`
	Observer observability.Observer `optional:"true"`
	Pool     *Pool                  `optional:"true"`
}

// NewStoreWithDI creates a Store from injected dependencies. Logger,
// observer and pool are optional; absent ones fall back to the defaults
// NewStore applies.
func NewStoreWithDI(params StoreParams) (*Store, error) {
	opts := make([]Option, 0, 3)
	if params.Logger != nil {
		opts = append(opts, WithLogger(params.Logger))
	}
	if params.Observer != nil {
		opts = append(opts, WithObserver(params.Observer))
	}
	if params.Pool != nil {
		opts = append(opts, WithPool(params.Pool))
	}

	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer cancel()
	return NewStore(ctx, params.Config, opts...)
}

// RegisterStoreLifecycle closes the Store's connection on shutdown.
func RegisterStoreLifecycle(lc fx.Lifecycle, store *Store) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close(ctx)
		},
	})
}
