package entities

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/KirkDiggler/pokechain-api/internal/errors"
)

// NormalizeAddress validates a wallet address and returns its EIP-55 form.
// Owners, sellers and buyers are always stored normalized so equality checks
// are case-insensitive in effect.
func NormalizeAddress(addr string) (string, error) {
	if !common.IsHexAddress(addr) {
		return "", errors.InvalidArgumentf("invalid wallet address %q", addr)
	}
	return common.HexToAddress(addr).Hex(), nil
}

// SameAddress compares two addresses ignoring checksum casing
func SameAddress(a, b string) bool {
	if !common.IsHexAddress(a) || !common.IsHexAddress(b) {
		return a == b
	}
	return common.HexToAddress(a) == common.HexToAddress(b)
}
