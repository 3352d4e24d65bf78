package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataforall/internal/denuncias"
	"dataforall/internal/platform/config"
	"dataforall/internal/platform/metrics"
)

func upstreamConfig(url string) *config.Config {
	return &config.Config{Denuncias: config.Denuncias{
		URL:              url,
		Timeout:          time.Second,
		CacheTTL:         time.Hour,
		Fallback:         true,
		BreakerThreshold: 5,
		BreakerCooldown:  time.Minute,
	}}
}

func TestBuildSourceWithoutUpstreamServesDemoData(t *testing.T) {
	src, err := buildSource(&config.Config{}, slog.New(slog.DiscardHandler), nil)
	require.NoError(t, err)

	ds, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, denuncias.SourceMock, ds.Source)
}

func TestBuildSourceNeverCachesFallbackData(t *testing.T) {
	var down atomic.Bool
	down.Store(true)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"source":"api","h25_denuncias_bas":[{"folio_id":10001}]}`))
	}))
	defer srv.Close()

	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	src, err := buildSource(upstreamConfig(srv.URL), slog.New(slog.DiscardHandler), m)
	require.NoError(t, err)
	ctx := context.Background()

	ds, err := src.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, denuncias.SourceMock, ds.Source, "upstream down serves demo data")

	down.Store(false)
	ds, err = src.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, denuncias.SourceAPI, ds.Source, "recovered upstream is used at once")

	down.Store(true)
	ds, err = src.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, denuncias.SourceAPI, ds.Source, "live data stays cached")
	assert.Equal(t, int32(2), calls.Load())
}
