package main

import (
	"testing"

	"github.com/Domenick1991/flightdeals/config"
	"github.com/Domenick1991/flightdeals/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsServerError(t *testing.T) {
	cfg := config.Default()
	cfg.Deals.Seed = 7
	cfg.GRPC.Address = "not-an-address"

	err := run(&cfg, logger.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen gRPC")
}

func TestBuildCatalog_SeedIsReproducible(t *testing.T) {
	cfg := config.DealsConfig{Seed: 11}

	first := buildCatalog(cfg)
	second := buildCatalog(cfg)

	require.Len(t, first, 21)
	assert.Equal(t, first[0].Price, second[0].Price)
}
