package token

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/domain"
	"github.com/x-xyz/dropapi/domain/mint"
)

// RawClaimCondition mirrors the on-chain claim condition tuple of drop-style
// contracts, in declared field order.
type RawClaimCondition struct {
	StartTimestamp         *big.Int
	MaxClaimableSupply     *big.Int
	SupplyClaimed          *big.Int
	QuantityLimitPerWallet *big.Int
	MerkleRoot             [32]byte
	PricePerToken          *big.Int
	Currency               common.Address
	Metadata               string
}

// ClaimCondition is the normalized, currency-aware view of the active claim
// phase. Supplies are base-unit integer strings.
type ClaimCondition struct {
	AvailableSupply       string               `json:"availableSupply"`
	CurrentMintSupply     string               `json:"currentMintSupply"`
	MaxClaimableSupply    string               `json:"maxClaimableSupply"`
	MaxClaimablePerWallet string               `json:"maxClaimablePerWallet"`
	CurrencyAddress       domain.Address       `json:"currencyAddress"`
	CurrencyMetadata      domain.CurrencyValue `json:"currencyMetadata"`
}

// Transport is the single seam between token operations and chain state. One
// implementation speaks to an RPC node, the other to the out-of-process
// bridge; the choice is made once at construction, never per call.
type Transport interface {
	// reads
	Name(c ctx.Ctx, chainId domain.ChainId, token domain.Address) (string, error)
	Symbol(c ctx.Ctx, chainId domain.ChainId, token domain.Address) (string, error)
	Decimals(c ctx.Ctx, chainId domain.ChainId, token domain.Address) (int32, error)
	TotalSupply(c ctx.Ctx, chainId domain.ChainId, token domain.Address) (*big.Int, error)
	BalanceOf(c ctx.Ctx, chainId domain.ChainId, token, owner domain.Address) (*big.Int, error)
	Allowance(c ctx.Ctx, chainId domain.ChainId, token, owner, spender domain.Address) (*big.Int, error)
	ActiveClaimConditionId(c ctx.Ctx, chainId domain.ChainId, token domain.Address) (*big.Int, error)
	ClaimConditionById(c ctx.Ctx, chainId domain.ChainId, token domain.Address, conditionId *big.Int) (*RawClaimCondition, error)
	PrimarySaleRecipient(c ctx.Ctx, chainId domain.ChainId, token domain.Address) (domain.Address, error)
	VerifyMintRequest(c ctx.Ctx, chainId domain.ChainId, token domain.Address, req *mint.Request, signature []byte) (bool, error)

	// writes
	Transfer(c ctx.Ctx, chainId domain.ChainId, token, to domain.Address, amount *big.Int) (*domain.TransactionResult, error)
	TransferFrom(c ctx.Ctx, chainId domain.ChainId, token, from, to domain.Address, amount *big.Int) (*domain.TransactionResult, error)
	Approve(c ctx.Ctx, chainId domain.ChainId, token, spender domain.Address, amount *big.Int) (*domain.TransactionResult, error)
	MintTo(c ctx.Ctx, chainId domain.ChainId, token, to domain.Address, amount *big.Int) (*domain.TransactionResult, error)
	Burn(c ctx.Ctx, chainId domain.ChainId, token domain.Address, amount *big.Int) (*domain.TransactionResult, error)
	BurnFrom(c ctx.Ctx, chainId domain.ChainId, token, holder domain.Address, amount *big.Int) (*domain.TransactionResult, error)
	Claim(c ctx.Ctx, chainId domain.ChainId, token, receiver domain.Address, quantity *big.Int, currency domain.Address, pricePerToken, value *big.Int) (*domain.TransactionResult, error)
	MintWithSignature(c ctx.Ctx, chainId domain.ChainId, token domain.Address, req *mint.Request, signature []byte, value *big.Int) (*domain.TransactionResult, error)

	// GenerateMintSignature delegates voucher signing to the transport's
	// signer. Only the bridge supports it; the local transport returns
	// domain.ErrUnsupportedOperation.
	GenerateMintSignature(c ctx.Ctx, chainId domain.ChainId, token domain.Address, payload *mint.Payload) (*mint.SignedPayload, error)
}

// ClaimConditionResolver normalizes the active on-chain claim condition.
type ClaimConditionResolver interface {
	GetActive(c ctx.Ctx, chainId domain.ChainId, token domain.Address) (*ClaimCondition, error)
}

// CurrencyResolver snapshots a currency's display metadata. The zero address
// resolves to the chain's native token.
type CurrencyResolver interface {
	Resolve(c ctx.Ctx, chainId domain.ChainId, currency domain.Address) (*domain.Currency, error)
}

// SignatureMinter generates, verifies and redeems signature mint vouchers.
// A nil signingKey falls back to the configured ambient key, or to the bridge
// signer when running on a restricted target.
type SignatureMinter interface {
	GenerateSignature(c ctx.Ctx, chainId domain.ChainId, token domain.Address, payload *mint.Payload, signingKey *ecdsa.PrivateKey) (*mint.SignedPayload, error)
	VerifySignature(c ctx.Ctx, chainId domain.ChainId, token domain.Address, sp *mint.SignedPayload) (bool, error)
	MintWithSignature(c ctx.Ctx, chainId domain.ChainId, token domain.Address, sp *mint.SignedPayload) (*domain.TransactionResult, error)
}

// Usecase orchestrates ERC20 reads and writes. Human-readable amounts are
// converted to base units at the token's own decimals exactly once per call.
type Usecase interface {
	Get(c ctx.Ctx, chainId domain.ChainId, token domain.Address) (*domain.CurrencyValue, error)
	Balance(c ctx.Ctx, chainId domain.ChainId, token domain.Address) (*domain.CurrencyValue, error)
	BalanceOf(c ctx.Ctx, chainId domain.ChainId, token, owner domain.Address) (*domain.CurrencyValue, error)
	Allowance(c ctx.Ctx, chainId domain.ChainId, token, spender domain.Address) (*domain.CurrencyValue, error)
	AllowanceOf(c ctx.Ctx, chainId domain.ChainId, token, owner, spender domain.Address) (*domain.CurrencyValue, error)
	TotalSupply(c ctx.Ctx, chainId domain.ChainId, token domain.Address) (*domain.CurrencyValue, error)

	Transfer(c ctx.Ctx, chainId domain.ChainId, token, to domain.Address, amount string) (*domain.TransactionResult, error)
	TransferFrom(c ctx.Ctx, chainId domain.ChainId, token, from, to domain.Address, amount string) (*domain.TransactionResult, error)
	SetAllowance(c ctx.Ctx, chainId domain.ChainId, token, spender domain.Address, amount string) (*domain.TransactionResult, error)
	MintTo(c ctx.Ctx, chainId domain.ChainId, token, to domain.Address, amount string) (*domain.TransactionResult, error)
	Burn(c ctx.Ctx, chainId domain.ChainId, token domain.Address, amount string) (*domain.TransactionResult, error)
	BurnFrom(c ctx.Ctx, chainId domain.ChainId, token, holder domain.Address, amount string) (*domain.TransactionResult, error)
	Claim(c ctx.Ctx, chainId domain.ChainId, token domain.Address, amount string) (*domain.TransactionResult, error)
	ClaimTo(c ctx.Ctx, chainId domain.ChainId, token, to domain.Address, amount string) (*domain.TransactionResult, error)
}
