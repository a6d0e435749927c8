package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"delivery-dispatch/internal/config"
	"delivery-dispatch/internal/logx"
	"delivery-dispatch/internal/metrics"
)

type httpServersIn struct {
	dig.In

	Main  *http.Server
	Pprof *http.Server `name:"pprof_server" optional:"true"`
}

func setupHTTPContainerWithCfg(t *testing.T, cfg *config.Config) *dig.Container {
	t.Helper()

	c := dig.New()

	require.NoError(t, c.Provide(func() context.Context { return context.Background() }))
	require.NoError(t, c.Provide(func() *config.Config { return cfg }))
	require.NoError(t, c.Provide(logx.Nop))
	require.NoError(t, c.Provide(func() *pgxpool.Pool { return &pgxpool.Pool{} }))

	require.NoError(t, registerService(c))
	require.NoError(t, registerHTTP(c))

	return c
}

func TestRegisterHTTP_PprofDisabled_ReturnsNilPprofServer(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Port: 8080}
	c := setupHTTPContainerWithCfg(t, cfg)
	err := c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Main)
		require.Equal(t, ":8080", in.Main.Addr)
		require.Nil(t, in.Pprof)
	})
	require.NoError(t, err)
}

func TestRegisterHTTP_PprofEnabled_ProvidesPprofServer(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Port: 8080,
		Pprof: config.Pprof{
			Addr: "127.0.0.1:6060",
			User: "u",
			Pass: "p",
		},
	}
	c := setupHTTPContainerWithCfg(t, cfg)
	err := c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Main)
		require.NotNil(t, in.Pprof)
		require.Equal(t, "127.0.0.1:6060", in.Pprof.Addr)
		require.NotNil(t, in.Pprof.Handler)
	})
	require.NoError(t, err)
}

func swapDefaultRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()

	oldReg := prometheus.DefaultRegisterer
	oldGath := prometheus.DefaultGatherer
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = oldReg
		prometheus.DefaultGatherer = oldGath
	})
	return reg
}

func TestNewPassMetrics_RegistersCollectors(t *testing.T) {
	swapDefaultRegistry(t)

	pm := newPassMetrics()
	require.NotNil(t, pm.Passes)
	require.NotNil(t, pm.Matched)
	require.NotNil(t, pm.Unmatched)
	require.NotNil(t, pm.Duration)
}

func TestNewPassMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := swapDefaultRegistry(t)

	existing := metrics.NewAssignmentPassesTotal()
	require.NoError(t, reg.Register(existing))

	pm := newPassMetrics()
	require.Same(t, existing, pm.Passes)
}

func TestRegisterOrSwap_ReturnsExistingCollector(t *testing.T) {
	reg := swapDefaultRegistry(t)

	existing := metrics.NewRateLimitExceededTotal()
	require.NoError(t, reg.Register(existing))

	got := registerOrSwap(metrics.NewRateLimitExceededTotal())
	require.Same(t, existing, got)
}
