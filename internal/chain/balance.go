// Package chain reads wallet state from an EVM ledger
package chain

//go:generate mockgen -destination=mock/mock_balance.go -package=chainmock github.com/KirkDiggler/pokechain-api/internal/chain BalanceReader

import (
	"context"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/KirkDiggler/pokechain-api/internal/errors"
)

// BalanceReader returns a wallet's spendable balance in the smallest unit
type BalanceReader interface {
	BalanceOf(ctx context.Context, address string) (int64, error)
}

// balanceAtClient is the part of ethclient.Client the reader needs
type balanceAtClient interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Client wraps go-ethereum RPC
type Client struct {
	rpcClient *rpc.Client
	eth       balanceAtClient
}

// Dial connects to an RPC endpoint
func Dial(ctx context.Context, rpcURL string) (*Client, error) {
	if rpcURL == "" {
		return nil, errors.InvalidArgument("rpc url is required")
	}
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to dial chain rpc")
	}
	return &Client{
		rpcClient: rpcClient,
		eth:       ethclient.NewClient(rpcClient),
	}, nil
}

// Close closes the underlying RPC client
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

var _ BalanceReader = (*Client)(nil)

// BalanceOf reads the latest balance. Balances beyond int64 saturate since
// listing prices can never exceed that.
func (c *Client) BalanceOf(ctx context.Context, address string) (int64, error) {
	if !common.IsHexAddress(address) {
		return 0, errors.InvalidArgumentf("invalid wallet address %q", address)
	}
	bal, err := c.eth.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read balance")
	}
	return saturate(bal), nil
}

func saturate(v *big.Int) int64 {
	if v == nil || v.Sign() <= 0 {
		return 0
	}
	if !v.IsInt64() {
		return math.MaxInt64
	}
	return v.Int64()
}
