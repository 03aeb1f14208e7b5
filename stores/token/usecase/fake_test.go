package usecase

import (
	"math/big"

	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/domain"
	"github.com/x-xyz/dropapi/domain/mint"
	"github.com/x-xyz/dropapi/domain/token"
)

// fakeTransport serves canned chain state and records writes.
type fakeTransport struct {
	meta map[domain.Address]*domain.Currency

	totalSupply *big.Int
	balances    map[domain.Address]*big.Int
	allowance   *big.Int

	activeId  *big.Int
	condition *token.RawClaimCondition

	primarySaleRecipient domain.Address

	verifyResult bool
	verifyErr    error

	calls        []string
	lastAmount   *big.Int
	lastValue    *big.Int
	lastCurrency domain.Address
	lastPrice    *big.Int
	lastReq      *mint.Request
	lastSig      []byte
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		meta:         map[domain.Address]*domain.Currency{},
		balances:     map[domain.Address]*big.Int{},
		verifyResult: true,
	}
}

func (f *fakeTransport) setMeta(addr domain.Address, name, symbol string, decimals int32) {
	f.meta[addr.ToLower()] = &domain.Currency{
		Name:     name,
		Symbol:   symbol,
		Decimals: decimals,
		Address:  addr.ToLower(),
	}
}

func (f *fakeTransport) lookup(addr domain.Address) (*domain.Currency, error) {
	cur, ok := f.meta[addr.ToLower()]
	if !ok {
		return nil, xerrors.Errorf("no contract at %s", addr)
	}
	return cur, nil
}

func (f *fakeTransport) Name(_ bCtx.Ctx, _ domain.ChainId, addr domain.Address) (string, error) {
	cur, err := f.lookup(addr)
	if err != nil {
		return "", err
	}
	return cur.Name, nil
}

func (f *fakeTransport) Symbol(_ bCtx.Ctx, _ domain.ChainId, addr domain.Address) (string, error) {
	cur, err := f.lookup(addr)
	if err != nil {
		return "", err
	}
	return cur.Symbol, nil
}

func (f *fakeTransport) Decimals(_ bCtx.Ctx, _ domain.ChainId, addr domain.Address) (int32, error) {
	cur, err := f.lookup(addr)
	if err != nil {
		return 0, err
	}
	return cur.Decimals, nil
}

func (f *fakeTransport) TotalSupply(_ bCtx.Ctx, _ domain.ChainId, _ domain.Address) (*big.Int, error) {
	return f.totalSupply, nil
}

func (f *fakeTransport) BalanceOf(_ bCtx.Ctx, _ domain.ChainId, _, owner domain.Address) (*big.Int, error) {
	if b, ok := f.balances[owner.ToLower()]; ok {
		return b, nil
	}
	return big.NewInt(0), nil
}

func (f *fakeTransport) Allowance(_ bCtx.Ctx, _ domain.ChainId, _, _, _ domain.Address) (*big.Int, error) {
	if f.allowance == nil {
		return big.NewInt(0), nil
	}
	return f.allowance, nil
}

func (f *fakeTransport) ActiveClaimConditionId(_ bCtx.Ctx, _ domain.ChainId, _ domain.Address) (*big.Int, error) {
	return f.activeId, nil
}

func (f *fakeTransport) ClaimConditionById(_ bCtx.Ctx, _ domain.ChainId, _ domain.Address, _ *big.Int) (*token.RawClaimCondition, error) {
	return f.condition, nil
}

func (f *fakeTransport) PrimarySaleRecipient(_ bCtx.Ctx, _ domain.ChainId, _ domain.Address) (domain.Address, error) {
	return f.primarySaleRecipient, nil
}

func (f *fakeTransport) VerifyMintRequest(_ bCtx.Ctx, _ domain.ChainId, _ domain.Address, req *mint.Request, signature []byte) (bool, error) {
	f.calls = append(f.calls, "verify")
	f.lastReq = req
	f.lastSig = signature
	return f.verifyResult, f.verifyErr
}

func (f *fakeTransport) Transfer(_ bCtx.Ctx, _ domain.ChainId, _, _ domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	f.lastAmount = amount
	return f.confirm("transfer")
}

func (f *fakeTransport) TransferFrom(_ bCtx.Ctx, _ domain.ChainId, _, _, _ domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	f.lastAmount = amount
	return f.confirm("transferFrom")
}

func (f *fakeTransport) Approve(_ bCtx.Ctx, _ domain.ChainId, _, _ domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	f.lastAmount = amount
	return f.confirm("approve")
}

func (f *fakeTransport) MintTo(_ bCtx.Ctx, _ domain.ChainId, _, _ domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	f.lastAmount = amount
	return f.confirm("mintTo")
}

func (f *fakeTransport) Burn(_ bCtx.Ctx, _ domain.ChainId, _ domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	f.lastAmount = amount
	return f.confirm("burn")
}

func (f *fakeTransport) BurnFrom(_ bCtx.Ctx, _ domain.ChainId, _, _ domain.Address, amount *big.Int) (*domain.TransactionResult, error) {
	f.lastAmount = amount
	return f.confirm("burnFrom")
}

func (f *fakeTransport) Claim(_ bCtx.Ctx, _ domain.ChainId, _, _ domain.Address, quantity *big.Int, currency domain.Address, pricePerToken, value *big.Int) (*domain.TransactionResult, error) {
	f.lastAmount = quantity
	f.lastCurrency = currency
	f.lastPrice = pricePerToken
	f.lastValue = value
	return f.confirm("claim")
}

func (f *fakeTransport) MintWithSignature(_ bCtx.Ctx, _ domain.ChainId, _ domain.Address, req *mint.Request, signature []byte, value *big.Int) (*domain.TransactionResult, error) {
	f.lastReq = req
	f.lastSig = signature
	f.lastValue = value
	return f.confirm("mintWithSignature")
}

func (f *fakeTransport) GenerateMintSignature(_ bCtx.Ctx, _ domain.ChainId, _ domain.Address, _ *mint.Payload) (*mint.SignedPayload, error) {
	f.calls = append(f.calls, "generateMintSignature")
	return nil, domain.ErrUnsupportedOperation
}

func (f *fakeTransport) confirm(method string) (*domain.TransactionResult, error) {
	f.calls = append(f.calls, method)
	return &domain.TransactionResult{
		Status:      domain.TxStatusConfirmed,
		TxHash:      "0x1",
		BlockNumber: 1,
	}, nil
}

func (f *fakeTransport) called(method string) bool {
	for _, c := range f.calls {
		if c == method {
			return true
		}
	}
	return false
}

type fakeWallet struct {
	address domain.Address
	chainId domain.ChainId
}

func (w *fakeWallet) GetAddress(_ bCtx.Ctx) (domain.Address, error) {
	return w.address, nil
}

func (w *fakeWallet) GetChainId(_ bCtx.Ctx) (domain.ChainId, error) {
	return w.chainId, nil
}
