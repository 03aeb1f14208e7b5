// Package currency caches currency metadata snapshots in process. Currency
// snapshots carry no freshness guarantee, so serving a slightly stale entry
// is allowed.
package currency

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/coocood/freecache"

	bCtx "github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/domain"
)

type Cache interface {
	Get(c bCtx.Ctx, chainId domain.ChainId, address domain.Address) (*domain.Currency, error)
	Set(c bCtx.Ctx, cur *domain.Currency) error
}

type impl struct {
	cache *freecache.Cache
	ttl   time.Duration
}

// NewCache allocates sizeInMb of cache memory up front.
func NewCache(sizeInMb int, ttl time.Duration) Cache {
	return &impl{
		cache: freecache.NewCache(sizeInMb * 1024 * 1024),
		ttl:   ttl,
	}
}

func (im *impl) Get(c bCtx.Ctx, chainId domain.ChainId, address domain.Address) (*domain.Currency, error) {
	val, err := im.cache.Get(key(chainId, address))
	if err != nil {
		if err == freecache.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		c.WithField("err", err).Error("cache.Get failed")
		return nil, err
	}
	cur := &domain.Currency{}
	if err := json.Unmarshal(val, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

func (im *impl) Set(c bCtx.Ctx, cur *domain.Currency) error {
	val, err := json.Marshal(cur)
	if err != nil {
		return err
	}
	if err := im.cache.Set(key(cur.ChainId, cur.Address), val, int(im.ttl.Seconds())); err != nil {
		c.WithField("err", err).Error("cache.Set failed")
		return err
	}
	return nil
}

func key(chainId domain.ChainId, address domain.Address) []byte {
	return []byte(fmt.Sprintf("%d:%s", chainId, address.ToLowerStr()))
}
