package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// totalSupplySelector is the 4-byte method ID of the ERC-20 totalSupply()
// function.
var totalSupplySelector = []byte{0x18, 0x16, 0x0d, 0xdd}

// ContractCaller is the eth_call subset needed by the Reader. Satisfied by
// *ethclient.Client.
type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Reader reads the total supply of one fixed ERC-20 token contract.
type Reader struct {
	caller ContractCaller
	token  common.Address
}

// NewReader creates a Reader for the given token contract address.
func NewReader(caller ContractCaller, tokenAddress string) *Reader {
	return &Reader{
		caller: caller,
		token:  common.HexToAddress(tokenAddress),
	}
}

// TokenAddress returns the checksummed address of the token contract.
func (r *Reader) TokenAddress() string {
	return r.token.Hex()
}

// TotalSupply reads totalSupply() at the latest block and returns the raw
// integer unit count, no decimal scaling.
func (r *Reader) TotalSupply(ctx context.Context) (*big.Int, error) {
	result, err := r.caller.CallContract(ctx, ethereum.CallMsg{
		To:   &r.token,
		Data: totalSupplySelector,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("calling totalSupply on %s: %w", r.token.Hex(), err)
	}

	if len(result) < 32 {
		return nil, fmt.Errorf("totalSupply on %s returned %d bytes, want 32", r.token.Hex(), len(result))
	}

	return new(big.Int).SetBytes(result[len(result)-32:]), nil
}
