package usecase

import (
	"math/big"
	"strings"

	bCtx "github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/base/log"
	"github.com/x-xyz/dropapi/base/units"
	"github.com/x-xyz/dropapi/domain"
	"github.com/x-xyz/dropapi/domain/token"
)

type ClaimConditionResolverCfg struct {
	Transport       token.Transport
	Currency        token.CurrencyResolver
	DisplayDecimals int32
}

type claimConditionResolver struct {
	transport       token.Transport
	currency        token.CurrencyResolver
	displayDecimals int32
}

func NewClaimConditionResolver(cfg *ClaimConditionResolverCfg) token.ClaimConditionResolver {
	return &claimConditionResolver{
		transport:       cfg.Transport,
		currency:        cfg.Currency,
		displayDecimals: cfg.DisplayDecimals,
	}
}

// GetActive resolves the token's active claim phase into its normalized view.
// Currency metadata failures degrade to an empty snapshot instead of failing
// the whole read.
func (im *claimConditionResolver) GetActive(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr domain.Address) (*token.ClaimCondition, error) {
	conditionId, err := im.transport.ActiveClaimConditionId(ctx, chainId, tokenAddr)
	if err != nil {
		return nil, err
	}
	raw, err := im.transport.ClaimConditionById(ctx, chainId, tokenAddr, conditionId)
	if err != nil {
		return nil, err
	}

	currencyAddr := domain.Address(strings.ToLower(raw.Currency.Hex()))
	cur, err := im.currency.Resolve(ctx, chainId, currencyAddr)
	if err != nil {
		ctx.WithFields(log.Fields{
			"chainId":  chainId,
			"token":    tokenAddr,
			"currency": currencyAddr,
			"err":      err,
		}).Warn("claim condition currency metadata unavailable")
		cur = &domain.Currency{Decimals: 18, ChainId: chainId, Address: currencyAddr}
	}

	available := new(big.Int).Sub(raw.MaxClaimableSupply, raw.SupplyClaimed)
	return &token.ClaimCondition{
		AvailableSupply:       available.String(),
		CurrentMintSupply:     raw.SupplyClaimed.String(),
		MaxClaimableSupply:    raw.MaxClaimableSupply.String(),
		MaxClaimablePerWallet: raw.QuantityLimitPerWallet.String(),
		CurrencyAddress:       currencyAddr,
		CurrencyMetadata:      units.CurrencyValueOf(raw.PricePerToken, *cur, im.displayDecimals),
	}, nil
}
