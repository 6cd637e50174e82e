// Command server runs the semantic retrieval HTTP service: a Milvus-backed
// chunk store behind upsert, query and delete endpoints, with an embedding
// client, Prometheus metrics and optional OTLP tracing.
package main

import (
	"flag"
	"log"

	"go.uber.org/fx"

	"github.com/semantic-retrieval/std/internal/api"
	"github.com/semantic-retrieval/std/internal/config"
	"github.com/semantic-retrieval/std/v1/embedding"
	"github.com/semantic-retrieval/std/v1/logger"
	"github.com/semantic-retrieval/std/v1/metrics"
	"github.com/semantic-retrieval/std/v1/milvus"
	"github.com/semantic-retrieval/std/v1/tracer"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	opts := []fx.Option{
		fx.Provide(
			func() api.Config { return cfg.Server },
			func() *milvus.Config { return &cfg.Milvus },
			func() *embedding.Config { return &cfg.Embedding },
			func() logger.Config {
				c := cfg.Logger
				c.EnableTracing = cfg.TracingEnabled
				return c
			},
			func() metrics.Config { return cfg.Metrics },
		),
		logger.FXModule,
		metrics.FXModule,
		embedding.FXModule,
		milvus.FXModule,
		api.FXModule,
	}

	if cfg.TracingEnabled {
		opts = append(opts,
			fx.Provide(func() tracer.Config { return cfg.Tracer }),
			tracer.FXModule,
		)
	}

	fx.New(opts...).Run()
}
