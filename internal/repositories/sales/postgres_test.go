//go:build integration
// +build integration

package sales_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokechain-api/internal/repositories/sales"
)

// Requires POKECHAIN_TEST_POSTGRES_DSN pointing at a disposable database
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("POKECHAIN_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POKECHAIN_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	suite.Run(t, &RepositoryTestSuite{newRepo: func() sales.Repository {
		store, err := sales.NewPostgres(ctx, dsn)
		require.NoError(t, err)
		t.Cleanup(store.Close)
		pool, err := pgxpool.New(ctx, dsn)
		require.NoError(t, err)
		defer pool.Close()
		_, err = pool.Exec(ctx, "TRUNCATE sales")
		require.NoError(t, err)
		return store
	}})
}
