package milvus

import (
	"testing"

	"github.com/milvus-io/milvus/client/v2/entity"
)

func TestConfig_ConsistencyLevel(t *testing.T) {
	cases := []struct {
		configured string
		want       entity.ConsistencyLevel
	}{
		{"", entity.ClStrong},
		{"Strong", entity.ClStrong},
		{"strong", entity.ClStrong},
		{"Session", entity.ClSession},
		{"Bounded", entity.ClBounded},
		{"Eventually", entity.ClEventually},
		{"whatever", entity.ClStrong},
	}
	for _, tc := range cases {
		cfg := &Config{ConsistencyLevel: tc.configured}
		if got := cfg.consistencyLevel(); got != tc.want {
			t.Errorf("consistencyLevel(%q) = %v, want %v", tc.configured, got, tc.want)
		}
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := (&Config{}).withDefaults()
	if cfg.Host != "localhost" || cfg.Port != 19530 {
		t.Errorf("unexpected address defaults: %s", cfg.Address())
	}
	if cfg.ConsistencyLevel != "Strong" {
		t.Errorf("ConsistencyLevel defaulted to %q, want Strong", cfg.ConsistencyLevel)
	}
	if cfg.EmbeddingDim != defaultEmbeddingDim {
		t.Errorf("EmbeddingDim defaulted to %d", cfg.EmbeddingDim)
	}
	if cfg.SearchEF != defaultSearchEF {
		t.Errorf("SearchEF defaulted to %d", cfg.SearchEF)
	}
}
