// Package usecase orchestrates ERC20 token operations over the transport
// seam. Amount conversion happens here, exactly once per call, at the token's
// own decimal count.
package usecase

import (
	"math/big"

	bCtx "github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/base/units"
	"github.com/x-xyz/dropapi/domain"
	"github.com/x-xyz/dropapi/domain/token"
)

type TokenUsecaseCfg struct {
	Transport       token.Transport
	Wallet          domain.WalletContext
	ClaimConditions token.ClaimConditionResolver
	Currency        token.CurrencyResolver
	DisplayDecimals int32
}

type tokenUsecase struct {
	transport       token.Transport
	wallet          domain.WalletContext
	claimConditions token.ClaimConditionResolver
	currency        token.CurrencyResolver
	displayDecimals int32
}

func NewTokenUsecase(cfg *TokenUsecaseCfg) token.Usecase {
	return &tokenUsecase{
		transport:       cfg.Transport,
		wallet:          cfg.Wallet,
		claimConditions: cfg.ClaimConditions,
		currency:        cfg.Currency,
		displayDecimals: cfg.DisplayDecimals,
	}
}

func (im *tokenUsecase) Get(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr domain.Address) (*domain.CurrencyValue, error) {
	supply, err := im.transport.TotalSupply(ctx, chainId, tokenAddr)
	if err != nil {
		return nil, err
	}
	return im.currencyValue(ctx, chainId, tokenAddr, supply)
}

func (im *tokenUsecase) Balance(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr domain.Address) (*domain.CurrencyValue, error) {
	owner, err := im.wallet.GetAddress(ctx)
	if err != nil {
		return nil, err
	}
	return im.BalanceOf(ctx, chainId, tokenAddr, owner)
}

func (im *tokenUsecase) BalanceOf(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr, owner domain.Address) (*domain.CurrencyValue, error) {
	balance, err := im.transport.BalanceOf(ctx, chainId, tokenAddr, owner)
	if err != nil {
		return nil, err
	}
	return im.currencyValue(ctx, chainId, tokenAddr, balance)
}

func (im *tokenUsecase) Allowance(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr, spender domain.Address) (*domain.CurrencyValue, error) {
	owner, err := im.wallet.GetAddress(ctx)
	if err != nil {
		return nil, err
	}
	return im.AllowanceOf(ctx, chainId, tokenAddr, owner, spender)
}

func (im *tokenUsecase) AllowanceOf(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr, owner, spender domain.Address) (*domain.CurrencyValue, error) {
	allowance, err := im.transport.Allowance(ctx, chainId, tokenAddr, owner, spender)
	if err != nil {
		return nil, err
	}
	return im.currencyValue(ctx, chainId, tokenAddr, allowance)
}

func (im *tokenUsecase) TotalSupply(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr domain.Address) (*domain.CurrencyValue, error) {
	return im.Get(ctx, chainId, tokenAddr)
}

func (im *tokenUsecase) Transfer(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr, to domain.Address, amount string) (*domain.TransactionResult, error) {
	baseAmount, err := im.toBaseUnits(ctx, chainId, tokenAddr, amount)
	if err != nil {
		return nil, err
	}
	return im.transport.Transfer(ctx, chainId, tokenAddr, to, baseAmount)
}

func (im *tokenUsecase) TransferFrom(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr, from, to domain.Address, amount string) (*domain.TransactionResult, error) {
	baseAmount, err := im.toBaseUnits(ctx, chainId, tokenAddr, amount)
	if err != nil {
		return nil, err
	}
	return im.transport.TransferFrom(ctx, chainId, tokenAddr, from, to, baseAmount)
}

func (im *tokenUsecase) SetAllowance(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr, spender domain.Address, amount string) (*domain.TransactionResult, error) {
	baseAmount, err := im.toBaseUnits(ctx, chainId, tokenAddr, amount)
	if err != nil {
		return nil, err
	}
	return im.transport.Approve(ctx, chainId, tokenAddr, spender, baseAmount)
}

func (im *tokenUsecase) MintTo(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr, to domain.Address, amount string) (*domain.TransactionResult, error) {
	baseAmount, err := im.toBaseUnits(ctx, chainId, tokenAddr, amount)
	if err != nil {
		return nil, err
	}
	return im.transport.MintTo(ctx, chainId, tokenAddr, to, baseAmount)
}

func (im *tokenUsecase) Burn(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr domain.Address, amount string) (*domain.TransactionResult, error) {
	baseAmount, err := im.toBaseUnits(ctx, chainId, tokenAddr, amount)
	if err != nil {
		return nil, err
	}
	return im.transport.Burn(ctx, chainId, tokenAddr, baseAmount)
}

func (im *tokenUsecase) BurnFrom(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr, holder domain.Address, amount string) (*domain.TransactionResult, error) {
	baseAmount, err := im.toBaseUnits(ctx, chainId, tokenAddr, amount)
	if err != nil {
		return nil, err
	}
	return im.transport.BurnFrom(ctx, chainId, tokenAddr, holder, baseAmount)
}

func (im *tokenUsecase) Claim(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr domain.Address, amount string) (*domain.TransactionResult, error) {
	to, err := im.wallet.GetAddress(ctx)
	if err != nil {
		return nil, err
	}
	return im.ClaimTo(ctx, chainId, tokenAddr, to, amount)
}

// ClaimTo claims against the active claim phase. When the phase prices claims
// in the native token the payable value is quantity times price scaled back
// down by the token's decimals.
func (im *tokenUsecase) ClaimTo(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr, to domain.Address, amount string) (*domain.TransactionResult, error) {
	decimals, err := im.transport.Decimals(ctx, chainId, tokenAddr)
	if err != nil {
		return nil, err
	}
	quantity, err := units.ToBaseUnits(amount, decimals)
	if err != nil {
		return nil, err
	}
	condition, err := im.claimConditions.GetActive(ctx, chainId, tokenAddr)
	if err != nil {
		return nil, err
	}
	nums, err := domain.ToBigInt([]string{condition.CurrencyMetadata.Value})
	if err != nil {
		return nil, err
	}
	pricePerToken := nums[0]

	value := big.NewInt(0)
	if condition.CurrencyAddress.IsNative() && pricePerToken.Sign() > 0 {
		value.Mul(quantity, pricePerToken)
		value.Quo(value, new(big.Int).Exp(domain.Big10, big.NewInt(int64(decimals)), nil))
	}
	return im.transport.Claim(ctx, chainId, tokenAddr, to, quantity, condition.CurrencyAddress, pricePerToken, value)
}

func (im *tokenUsecase) toBaseUnits(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr domain.Address, amount string) (*big.Int, error) {
	decimals, err := im.transport.Decimals(ctx, chainId, tokenAddr)
	if err != nil {
		return nil, err
	}
	return units.ToBaseUnits(amount, decimals)
}

func (im *tokenUsecase) currencyValue(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr domain.Address, raw *big.Int) (*domain.CurrencyValue, error) {
	cur, err := im.currency.Resolve(ctx, chainId, tokenAddr)
	if err != nil {
		return nil, err
	}
	cv := units.CurrencyValueOf(raw, *cur, im.displayDecimals)
	return &cv, nil
}
