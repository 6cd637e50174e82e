package milvus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/semantic-retrieval/std/v1/logger"
	"github.com/semantic-retrieval/std/v1/observability"
)

// milvusAPI is the slice of the Milvus client this package actually uses.
// clientAPI adapts *milvusclient.Client to it; tests substitute a fake.
type milvusAPI interface {
	HasCollection(ctx context.Context, option milvusclient.HasCollectionOption, callOptions ...grpc.CallOption) (bool, error)
	CreateCollection(ctx context.Context, option milvusclient.CreateCollectionOption, callOptions ...grpc.CallOption) error
	DropCollection(ctx context.Context, option milvusclient.DropCollectionOption, callOptions ...grpc.CallOption) error
	LoadCollection(ctx context.Context, option milvusclient.LoadCollectionOption, callOptions ...grpc.CallOption) (loadTask, error)
	ReleaseCollection(ctx context.Context, option milvusclient.ReleaseCollectionOption, callOptions ...grpc.CallOption) error
	CreateIndex(ctx context.Context, option milvusclient.CreateIndexOption, callOptions ...grpc.CallOption) (*milvusclient.CreateIndexTask, error)
	ListIndexes(ctx context.Context, option milvusclient.ListIndexOption, callOptions ...grpc.CallOption) ([]string, error)
	DescribeIndex(ctx context.Context, option milvusclient.DescribeIndexOption, callOptions ...grpc.CallOption) (milvusclient.IndexDescription, error)
	Insert(ctx context.Context, option milvusclient.InsertOption, callOptions ...grpc.CallOption) (milvusclient.InsertResult, error)
	Search(ctx context.Context, option milvusclient.SearchOption, callOptions ...grpc.CallOption) ([]milvusclient.ResultSet, error)
	Query(ctx context.Context, option milvusclient.QueryOption, callOptions ...grpc.CallOption) (milvusclient.ResultSet, error)
	Delete(ctx context.Context, option milvusclient.DeleteOption, callOptions ...grpc.CallOption) (milvusclient.DeleteResult, error)
}

// loadTask is the part of milvusclient.LoadTask the store waits on.
type loadTask interface {
	Await(ctx context.Context) error
}

// clientAPI adapts *milvusclient.Client to milvusAPI. Only LoadCollection
// needs the shim, to return the task behind the loadTask interface.
type clientAPI struct {
	*milvusclient.Client
}

func (c clientAPI) LoadCollection(ctx context.Context, option milvusclient.LoadCollectionOption, callOptions ...grpc.CallOption) (loadTask, error) {
	task, err := c.Client.LoadCollection(ctx, option, callOptions...)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Store is the Milvus-backed implementation of datastore.DataStore. All
// exported methods are safe for concurrent use; the underlying collection
// handle is assumed safe for concurrent reads by the store.
type Store struct {
	api      milvusAPI
	cfg      *Config
	log      *logger.Logger
	observer observability.Observer

	// indexType is the type of the vector index the collection carries,
	// recorded during bootstrap. It selects the query-time search params.
	indexType index.IndexType

	// owned is the raw client to close when the Store dialed it itself.
	// Pooled connections stay open until the Pool is closed.
	owned *milvusclient.Client
	pool  *Pool
}

// Option customizes a Store during construction.
type Option func(*Store)

// WithPool makes the Store obtain its connection from the given pool
// instead of dialing its own. The pool owns the connection lifecycle.
func WithPool(p *Pool) Option {
	return func(s *Store) { s.pool = p }
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithObserver registers an operation observer (metrics, tracing).
func WithObserver(o observability.Observer) Option {
	return func(s *Store) { s.observer = o }
}

// NewStore connects to Milvus, bootstraps the collection (schema, index,
// load) and returns a ready datastore. When cfg.CreateNew is set an
// existing collection of the same name is dropped first.
func NewStore(ctx context.Context, cfg *Config, opts ...Option) (*Store, error) {
	s := &Store{
		cfg:      cfg.withDefaults(),
		log:      logger.NewNop(),
		observer: observability.NoopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.pool != nil {
		client, err := s.pool.Get(ctx, s.cfg)
		if err != nil {
			return nil, err
		}
		s.api = clientAPI{client}
	} else {
		client, err := dial(ctx, s.cfg)
		if err != nil {
			return nil, err
		}
		s.api = clientAPI{client}
		s.owned = client
	}

	if err := s.ensureCollection(ctx, s.cfg.CreateNew); err != nil {
		if s.owned != nil {
			_ = s.owned.Close(ctx)
		}
		return nil, err
	}

	s.log.Info("milvus store ready",
		zap.String("address", s.cfg.Address()),
		zap.String("collection", s.cfg.Collection))
	return s, nil
}

// Close releases the connection if this Store dialed it. Pooled
// connections are left open for other stores sharing the pool.
func (s *Store) Close(ctx context.Context) error {
	if s.owned == nil {
		return nil
	}
	return s.owned.Close(ctx)
}

func dial(ctx context.Context, cfg *Config) (*milvusclient.Client, error) {
	client, err := milvusclient.New(ctx, &milvusclient.ClientConfig{
		Address:       cfg.Address(),
		Username:      cfg.Username,
		Password:      cfg.Password,
		EnableTLSAuth: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("milvus: connect to %s: %w", cfg.Address(), err)
	}
	return client, nil
}

// Pool caches Milvus connections keyed by host:port so that multiple
// stores against the same server share one gRPC connection. The pool has
// an explicit lifecycle: construct with NewPool, release with Close.
type Pool struct {
	mu      sync.Mutex
	clients map[string]*milvusclient.Client
}

func NewPool() *Pool {
	return &Pool{clients: make(map[string]*milvusclient.Client)}
}

// Get returns the connection for cfg's address, dialing it on first use.
func (p *Pool) Get(ctx context.Context, cfg *Config) (*milvusclient.Client, error) {
	addr := cfg.Address()

	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[addr]; ok {
		return client, nil
	}
	client, err := dial(ctx, cfg)
	if err != nil {
		return nil, err
	}
	p.clients[addr] = client
	return client, nil
}

// Close closes every pooled connection and empties the pool.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for addr, client := range p.clients {
		if err := client.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("milvus: close %s: %w", addr, err))
		}
		delete(p.clients, addr)
	}
	return errors.Join(errs...)
}
