package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"

	bCtx "github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/domain"
	"github.com/x-xyz/dropapi/domain/mint"
	"github.com/x-xyz/dropapi/domain/token"
)

// allowlistProof is the empty-proof claim eligibility tuple. Merkle-proof
// allowlists are not implemented by this module.
type allowlistProof struct {
	Proof                  [][32]byte
	QuantityLimitPerWallet *big.Int
	PricePerToken          *big.Int
	Currency               common.Address
}

func emptyAllowlistProof() allowlistProof {
	return allowlistProof{
		Proof:                  [][32]byte{},
		QuantityLimitPerWallet: big.NewInt(0),
		PricePerToken:          math.MaxBig256,
		Currency:               common.Address{},
	}
}

func (e *Erc20) ActiveClaimConditionId(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (*big.Int, error) {
	unpacked, err := e.readDrop(ctx, chainId, addr, "getActiveClaimConditionId")
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) ClaimConditionById(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address, conditionId *big.Int) (*token.RawClaimCondition, error) {
	unpacked, err := e.readDrop(ctx, chainId, addr, "getClaimConditionById", conditionId)
	if err != nil {
		return nil, err
	}
	condition := ethabi.ConvertType(unpacked[0], new(token.RawClaimCondition)).(*token.RawClaimCondition)
	return condition, nil
}

func (e *Erc20) Claim(ctx bCtx.Ctx, chainId domain.ChainId, addr, receiver domain.Address, quantity *big.Int, currency domain.Address, pricePerToken, value *big.Int) (*domain.TransactionResult, error) {
	return e.sender.Send(ctx, int32(chainId), hexAddr(addr), value, e.dropAbi, "claim",
		hexAddr(receiver), quantity, hexAddr(currency), pricePerToken, emptyAllowlistProof(), []byte{})
}

func (e *Erc20) VerifyMintRequest(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address, req *mint.Request, signature []byte) (bool, error) {
	unpacked, err := e.read(ctx, chainId, addr, "verify", *req, signature)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc20) MintWithSignature(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address, req *mint.Request, signature []byte, value *big.Int) (*domain.TransactionResult, error) {
	return e.write(ctx, chainId, addr, value, "mintWithSignature", *req, signature)
}

// GenerateMintSignature is a bridge-only capability; local signing goes
// through the signature minter's ambient key instead.
func (e *Erc20) GenerateMintSignature(_ bCtx.Ctx, _ domain.ChainId, _ domain.Address, _ *mint.Payload) (*mint.SignedPayload, error) {
	return nil, domain.ErrUnsupportedOperation
}

func (e *Erc20) readDrop(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address, method string, params ...interface{}) ([]interface{}, error) {
	return e.chainService.Call(ctx, int32(chainId), hexAddr(addr), e.dropAbi, method, params...)
}
