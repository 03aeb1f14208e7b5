package usecase

import (
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/base/log"
	"github.com/x-xyz/dropapi/domain"
	"github.com/x-xyz/dropapi/domain/token"
	currencycache "github.com/x-xyz/dropapi/service/cache/currency"
)

type CurrencyResolverCfg struct {
	Transport token.Transport
	// Cache is optional; currency snapshots tolerate staleness
	Cache currencycache.Cache
}

type currencyResolver struct {
	transport token.Transport
	cache     currencycache.Cache
}

func NewCurrencyResolver(cfg *CurrencyResolverCfg) token.CurrencyResolver {
	return &currencyResolver{
		transport: cfg.Transport,
		cache:     cfg.Cache,
	}
}

func (im *currencyResolver) Resolve(ctx bCtx.Ctx, chainId domain.ChainId, currency domain.Address) (*domain.Currency, error) {
	if currency.IsNative() {
		cur := domain.NativeCurrency(chainId)
		return &cur, nil
	}

	if im.cache != nil {
		if cur, err := im.cache.Get(ctx, chainId, currency); err == nil {
			return cur, nil
		}
	}

	name, err := im.transport.Name(ctx, chainId, currency)
	if err != nil {
		return nil, xerrors.Errorf("name of %s: %v: %w", currency, err, domain.ErrMetadataUnavailable)
	}
	symbol, err := im.transport.Symbol(ctx, chainId, currency)
	if err != nil {
		return nil, xerrors.Errorf("symbol of %s: %v: %w", currency, err, domain.ErrMetadataUnavailable)
	}
	decimals, err := im.transport.Decimals(ctx, chainId, currency)
	if err != nil {
		return nil, xerrors.Errorf("decimals of %s: %v: %w", currency, err, domain.ErrMetadataUnavailable)
	}

	cur := &domain.Currency{
		Name:     name,
		Symbol:   symbol,
		Decimals: decimals,
		ChainId:  chainId,
		Address:  currency.ToLower(),
	}
	if im.cache != nil {
		if err := im.cache.Set(ctx, cur); err != nil {
			ctx.WithFields(log.Fields{
				"chainId": chainId,
				"token":   currency,
				"err":     err,
			}).Warn("currency cache set failed")
		}
	}
	return cur, nil
}
