package bridge

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/domain"
	"github.com/x-xyz/dropapi/domain/mint"
	"github.com/x-xyz/dropapi/domain/token"
)

// transport adapts the bridge client to the token transport seam. Route
// payloads mirror the domain structures with lower-camel-case keys; integers
// travel as decimal strings to keep arbitrary precision.
type transport struct {
	client Client
}

func NewTransport(client Client) token.Transport {
	return &transport{client: client}
}

// rawClaimConditionDTO is the bridge-side rendering of the on-chain claim
// condition tuple.
type rawClaimConditionDTO struct {
	StartTimestamp         string `json:"startTimestamp"`
	MaxClaimableSupply     string `json:"maxClaimableSupply"`
	SupplyClaimed          string `json:"supplyClaimed"`
	QuantityLimitPerWallet string `json:"quantityLimitPerWallet"`
	MerkleRoot             string `json:"merkleRoot"`
	PricePerToken          string `json:"pricePerToken"`
	Currency               string `json:"currency"`
	Metadata               string `json:"metadata"`
}

func (t *transport) Name(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (string, error) {
	return t.readString(ctx, "erc20/name", chainId, addr)
}

func (t *transport) Symbol(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (string, error) {
	return t.readString(ctx, "erc20/symbol", chainId, addr)
}

func (t *transport) Decimals(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (int32, error) {
	var out int32
	args, err := jsonArgs(chainId, addr)
	if err != nil {
		return 0, err
	}
	if err := t.client.Invoke(ctx, "erc20/decimals", args, &out); err != nil {
		return 0, err
	}
	return out, nil
}

func (t *transport) TotalSupply(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (*big.Int, error) {
	return t.readBigInt(ctx, "erc20/totalSupply", chainId, addr)
}

func (t *transport) BalanceOf(ctx bCtx.Ctx, chainId domain.ChainId, addr, owner domain.Address) (*big.Int, error) {
	return t.readBigInt(ctx, "erc20/balanceOf", chainId, addr, owner)
}

func (t *transport) Allowance(ctx bCtx.Ctx, chainId domain.ChainId, addr, owner, spender domain.Address) (*big.Int, error) {
	return t.readBigInt(ctx, "erc20/allowance", chainId, addr, owner, spender)
}

func (t *transport) ActiveClaimConditionId(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (*big.Int, error) {
	return t.readBigInt(ctx, "erc20/claimConditions/getActiveId", chainId, addr)
}

func (t *transport) ClaimConditionById(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address, conditionId *big.Int) (*token.RawClaimCondition, error) {
	args, err := jsonArgs(chainId, addr, conditionId.String())
	if err != nil {
		return nil, err
	}
	var dto rawClaimConditionDTO
	if err := t.client.Invoke(ctx, "erc20/claimConditions/getById", args, &dto); err != nil {
		return nil, err
	}
	nums, err := domain.ToBigInt([]string{
		dto.StartTimestamp,
		dto.MaxClaimableSupply,
		dto.SupplyClaimed,
		dto.QuantityLimitPerWallet,
		dto.PricePerToken,
	})
	if err != nil {
		return nil, err
	}
	var merkleRoot [32]byte
	if dto.MerkleRoot != "" {
		raw, err := hexutil.Decode(dto.MerkleRoot)
		if err != nil || len(raw) != 32 {
			return nil, xerrors.Errorf("decode merkle root %q: %w", dto.MerkleRoot, domain.ErrInvalidNumberFormat)
		}
		copy(merkleRoot[:], raw)
	}
	return &token.RawClaimCondition{
		StartTimestamp:         nums[0],
		MaxClaimableSupply:     nums[1],
		SupplyClaimed:          nums[2],
		QuantityLimitPerWallet: nums[3],
		MerkleRoot:             merkleRoot,
		PricePerToken:          nums[4],
		Currency:               common.HexToAddress(dto.Currency),
		Metadata:               dto.Metadata,
	}, nil
}

func (t *transport) PrimarySaleRecipient(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (domain.Address, error) {
	s, err := t.readString(ctx, "erc20/primarySaleRecipient", chainId, addr)
	if err != nil {
		return "", err
	}
	return domain.Address(s).ToLower(), nil
}

func (t *transport) VerifyMintRequest(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address, req *mint.Request, signature []byte) (bool, error) {
	sp := mint.SignedPayload{
		Signature: hexutil.Encode(signature),
		Payload:   req.ToPayloadOut(),
	}
	args, err := jsonArgs(chainId, addr, sp)
	if err != nil {
		return false, err
	}
	var out bool
	if err := t.client.Invoke(ctx, "erc20/signature/verify", args, &out); err != nil {
		return false, err
	}
	return out, nil
}

func (t *transport) Transfer(ctx bCtx.Ctx, chainId domain.ChainId, addr, to domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	return t.write(ctx, "erc20/transfer", chainId, addr, to, amount.String())
}

func (t *transport) TransferFrom(ctx bCtx.Ctx, chainId domain.ChainId, addr, from, to domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	return t.write(ctx, "erc20/transferFrom", chainId, addr, from, to, amount.String())
}

func (t *transport) Approve(ctx bCtx.Ctx, chainId domain.ChainId, addr, spender domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	return t.write(ctx, "erc20/setAllowance", chainId, addr, spender, amount.String())
}

func (t *transport) MintTo(ctx bCtx.Ctx, chainId domain.ChainId, addr, to domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	return t.write(ctx, "erc20/mintTo", chainId, addr, to, amount.String())
}

func (t *transport) Burn(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	return t.write(ctx, "erc20/burn", chainId, addr, amount.String())
}

func (t *transport) BurnFrom(ctx bCtx.Ctx, chainId domain.ChainId, addr, holder domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	return t.write(ctx, "erc20/burnFrom", chainId, addr, holder, amount.String())
}

func (t *transport) Claim(ctx bCtx.Ctx, chainId domain.ChainId, addr, receiver domain.Address, quantity *big.Int, currency domain.Address, pricePerToken, value *big.Int) (*domain.TransactionResult, error) {
	return t.write(ctx, "erc20/claimTo", chainId, addr, receiver, quantity.String(), currency, pricePerToken.String(), value.String())
}

func (t *transport) MintWithSignature(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address, req *mint.Request, signature []byte, value *big.Int) (*domain.TransactionResult, error) {
	sp := mint.SignedPayload{
		Signature: hexutil.Encode(signature),
		Payload:   req.ToPayloadOut(),
	}
	return t.write(ctx, "erc20/signature/mint", chainId, addr, sp, value.String())
}

func (t *transport) GenerateMintSignature(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address, payload *mint.Payload) (*mint.SignedPayload, error) {
	args, err := jsonArgs(chainId, addr, payload)
	if err != nil {
		return nil, err
	}
	var out mint.SignedPayload
	if err := t.client.Invoke(ctx, "erc20/signature/generate", args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *transport) readString(ctx bCtx.Ctx, route string, vals ...interface{}) (string, error) {
	args, err := jsonArgs(vals...)
	if err != nil {
		return "", err
	}
	var out string
	if err := t.client.Invoke(ctx, route, args, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (t *transport) readBigInt(ctx bCtx.Ctx, route string, vals ...interface{}) (*big.Int, error) {
	s, err := t.readString(ctx, route, vals...)
	if err != nil {
		return nil, err
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, xerrors.Errorf("bridge %s returned %q: %w", route, s, domain.ErrInvalidNumberFormat)
	}
	return n, nil
}

func (t *transport) write(ctx bCtx.Ctx, route string, vals ...interface{}) (*domain.TransactionResult, error) {
	args, err := jsonArgs(vals...)
	if err != nil {
		return nil, err
	}
	var out domain.TransactionResult
	if err := t.client.Invoke(ctx, route, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// wallet reads the connected wallet state owned by the bridge host.
type wallet struct {
	client Client
}

func NewWallet(client Client) domain.WalletContext {
	return &wallet{client: client}
}

func (w *wallet) GetAddress(ctx bCtx.Ctx) (domain.Address, error) {
	var out string
	if err := w.client.Invoke(ctx, "wallet/getAddress", nil, &out); err != nil {
		return "", err
	}
	return domain.Address(out).ToLower(), nil
}

func (w *wallet) GetChainId(ctx bCtx.Ctx) (domain.ChainId, error) {
	var out int32
	if err := w.client.Invoke(ctx, "wallet/getChainId", nil, &out); err != nil {
		return 0, err
	}
	return domain.ChainId(out), nil
}
