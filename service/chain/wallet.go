package chain

import (
	bCtx "github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/domain"
)

// staticWallet is the connected wallet/chain pair configured at startup. The
// module only ever reads it.
type staticWallet struct {
	address domain.Address
	chainId domain.ChainId
}

func NewStaticWallet(address domain.Address, chainId domain.ChainId) domain.WalletContext {
	return &staticWallet{
		address: address.ToLower(),
		chainId: chainId,
	}
}

func (w *staticWallet) GetAddress(_ bCtx.Ctx) (domain.Address, error) {
	return w.address, nil
}

func (w *staticWallet) GetChainId(_ bCtx.Ctx) (domain.ChainId, error) {
	return w.chainId, nil
}
