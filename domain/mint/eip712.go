package mint

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/x-xyz/dropapi/domain"
)

const (
	PrimaryType      = "MintRequest"
	Eip712DomainName = "EIP712Domain"
	DomainVersion    = "1"
)

var MintRequestTypes = apitypes.Types{
	"MintRequest": {
		{Name: "to", Type: "address"},
		{Name: "primarySaleRecipient", Type: "address"},
		{Name: "quantity", Type: "uint256"},
		{Name: "price", Type: "uint256"},
		{Name: "currency", Type: "address"},
		{Name: "validityStartTimestamp", Type: "uint128"},
		{Name: "validityEndTimestamp", Type: "uint128"},
		{Name: "uid", Type: "bytes32"},
	},
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
}

// GetDomainSeparator builds the typed-data domain for a token contract. The
// domain name is the token's on-chain name.
func GetDomainSeparator(name string, chainId domain.ChainId, verifyingContract domain.Address) apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              name,
		Version:           DomainVersion,
		ChainId:           math.NewHexOrDecimal256(int64(chainId)),
		VerifyingContract: verifyingContract.ToLowerStr(),
	}
}

func (r *Request) ToMessage() apitypes.TypedDataMessage {
	return apitypes.TypedDataMessage{
		"to":                     strings.ToLower(r.To.Hex()),
		"primarySaleRecipient":   strings.ToLower(r.PrimarySaleRecipient.Hex()),
		"quantity":               r.Quantity.String(),
		"price":                  r.Price.String(),
		"currency":               strings.ToLower(r.Currency.Hex()),
		"validityStartTimestamp": r.ValidityStartTimestamp.String(),
		"validityEndTimestamp":   r.ValidityEndTimestamp.String(),
		"uid":                    hexutil.Encode(r.Uid[:]),
	}
}

// Hash returns the EIP-712 struct hash of the request.
func (r *Request) Hash() ([]byte, error) {
	typedData := apitypes.TypedData{
		Types:       MintRequestTypes,
		PrimaryType: PrimaryType,
		Domain:      GetDomainSeparator("", 1, domain.EmptyAddress), // dummy
		Message:     r.ToMessage(),
	}

	return typedData.HashStruct(typedData.PrimaryType, typedData.Message)
}

// TypedDataHash returns the final signing digest,
// keccak256("\x19\x01" || domainSeparator || structHash).
func (r *Request) TypedDataHash(name string, chainId domain.ChainId, verifyingContract domain.Address) ([]byte, error) {
	typedData := apitypes.TypedData{
		Types:       MintRequestTypes,
		PrimaryType: PrimaryType,
		Domain:      GetDomainSeparator(name, chainId, verifyingContract),
		Message:     r.ToMessage(),
	}

	domainSeparator, err := typedData.HashStruct(Eip712DomainName, typedData.Domain.Map())
	if err != nil {
		return nil, err
	}
	structHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return nil, err
	}
	rawData := []byte(fmt.Sprintf("\x19\x01%s%s", string(domainSeparator), string(structHash)))
	return crypto.Keccak256(rawData), nil
}
