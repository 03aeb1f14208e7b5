package domain

import (
	"math/big"
	"strings"
)

var (
	Big0  = big.NewInt(0)
	Big10 = big.NewInt(10)
	// BigTenPow18 is one whole token at the fixed 18-decimal wire convention
	BigTenPow18 = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

// NativeTokenAddress is the conventional sentinel some contracts use for the
// chain's native token in currency fields.
const NativeTokenAddress = Address("0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// IsNative reports whether the address stands for the chain's native token.
// Both the zero address default and the 0xeee... sentinel qualify.
func (a Address) IsNative() bool {
	return a.IsEmpty() || a.Equals(EmptyAddress) || a.Equals(NativeTokenAddress)
}

type TxHash string

type BlockNumber uint64

func ToBigInt(nums []string) ([]*big.Int, error) {
	var bns []*big.Int
	for _, n := range nums {
		bn, ok := new(big.Int).SetString(n, 10)
		if !ok {
			return nil, ErrInvalidNumberFormat
		}
		bns = append(bns, bn)
	}
	return bns, nil
}
