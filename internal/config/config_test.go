package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "strategy-spb", cfg.RAG.Collection)
	assert.Equal(t, 4, cfg.RAG.ChunkNum)
	assert.Equal(t, 0.15, cfg.LLM.Temperature)
	assert.Equal(t, 8000, cfg.LLM.TokenLimit)
	assert.False(t, cfg.Pipeline.VerifyPipeline)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RAG_CHUNK_NUM", "6")
	t.Setenv("VERIFY_PIPELINE_CHOICE", "true")
	t.Setenv("LLM_TIMEOUT_SECONDS", "15")
	t.Setenv("LLM_TOP_P", "0.9")
	t.Setenv("URBAN_API_CACHE_BACKEND", "redis")
	t.Setenv("PARALLEL_FETCH", "not-a-bool")

	cfg := Load()

	assert.Equal(t, 6, cfg.RAG.ChunkNum)
	assert.True(t, cfg.Pipeline.VerifyPipeline)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 0.9, cfg.LLM.TopP)
	assert.Equal(t, "redis", cfg.UrbanAPI.CacheBackend)
	assert.True(t, cfg.Pipeline.ParallelFetch)
}
