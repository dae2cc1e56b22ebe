package sales

import (
	"context"
	_ "embed"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KirkDiggler/pokechain-api/internal/entities"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
)

//go:embed schema.sql
var schema string

// PostgresStore keeps sale history in Postgres
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to dsn and ensures the schema exists
func NewPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, errors.InvalidArgument("postgres dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to open postgres pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to reach postgres")
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to apply sales schema")
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the pool
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

var _ Repository = (*PostgresStore)(nil)

// Record inserts a sale
func (s *PostgresStore) Record(ctx context.Context, input RecordInput) (*RecordOutput, error) {
	if input.Sale == nil || input.Sale.ListingID == "" {
		return nil, errors.InvalidArgument("sale with a listing ID is required")
	}
	sale := input.Sale

	_, err := s.pool.Exec(ctx, `
		INSERT INTO sales (
			listing_id, nft_id, nft_kind, seller, buyer, price, fee, seller_proceeds, sold_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (listing_id) DO NOTHING
	`,
		sale.ListingID,
		sale.NFTID,
		string(sale.NFTKind),
		sale.Seller,
		sale.Buyer,
		sale.Price,
		sale.Fee,
		sale.SellerProceeds,
		sale.SoldAt,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to record sale %s", sale.ListingID)
	}
	return &RecordOutput{}, nil
}

// List queries sale history
func (s *PostgresStore) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.pool.Query(ctx, `
		SELECT listing_id, nft_id, nft_kind, seller, buyer, price, fee, seller_proceeds, sold_at
		FROM sales
		WHERE ($1 = '' OR seller = $1 OR buyer = $1)
		  AND ($2 = '' OR nft_id = $2)
		ORDER BY sold_at DESC, listing_id
		LIMIT $3
	`, input.Wallet, input.NFTID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query sales")
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Sale, error) {
		var (
			sale Sale
			kind string
		)
		if err := row.Scan(
			&sale.ListingID,
			&sale.NFTID,
			&kind,
			&sale.Seller,
			&sale.Buyer,
			&sale.Price,
			&sale.Fee,
			&sale.SellerProceeds,
			&sale.SoldAt,
		); err != nil {
			return nil, err
		}
		sale.NFTKind = entities.NFTKind(kind)
		return &sale, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan sales")
	}

	return &ListOutput{Sales: out}, nil
}
