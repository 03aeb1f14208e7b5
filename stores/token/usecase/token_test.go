package usecase

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/domain"
	"github.com/x-xyz/dropapi/domain/token"
)

const testWalletAddr = domain.Address("0x00000000000000000000000000000000000000cc")

func newUsecase(ft *fakeTransport) token.Usecase {
	currency := NewCurrencyResolver(&CurrencyResolverCfg{Transport: ft})
	return NewTokenUsecase(&TokenUsecaseCfg{
		Transport: ft,
		Wallet:    &fakeWallet{address: testWalletAddr, chainId: testChainId},
		ClaimConditions: NewClaimConditionResolver(&ClaimConditionResolverCfg{
			Transport:       ft,
			Currency:        currency,
			DisplayDecimals: 6,
		}),
		Currency:        currency,
		DisplayDecimals: 6,
	})
}

func TestTransferConvertsAtTokenDecimals(t *testing.T) {
	ft := newFakeTransport()
	ft.setMeta(testToken, "USD Coin", "USDC", 6)

	res, err := newUsecase(ft).Transfer(bCtx.Background(), testChainId, testToken, testWalletAddr, "1.5")
	require.NoError(t, err)
	require.Equal(t, domain.TxStatusConfirmed, res.Status)
	require.Equal(t, big.NewInt(1_500_000), ft.lastAmount)
}

func TestTransferRejectsMalformedAmount(t *testing.T) {
	ft := newFakeTransport()
	ft.setMeta(testToken, "USD Coin", "USDC", 6)

	_, err := newUsecase(ft).Transfer(bCtx.Background(), testChainId, testToken, testWalletAddr, "1.5.0")
	require.ErrorIs(t, err, domain.ErrInvalidNumberFormat)
	require.False(t, ft.called("transfer"))

	_, err = newUsecase(ft).Transfer(bCtx.Background(), testChainId, testToken, testWalletAddr, "-1")
	require.ErrorIs(t, err, domain.ErrInvalidNumberFormat)
	require.False(t, ft.called("transfer"))
}

func TestBalanceUsesWalletAddress(t *testing.T) {
	ft := newFakeTransport()
	ft.setMeta(testToken, "USD Coin", "USDC", 6)
	ft.balances[testWalletAddr.ToLower()] = big.NewInt(1_234_500_000)

	cv, err := newUsecase(ft).Balance(bCtx.Background(), testChainId, testToken)
	require.NoError(t, err)
	require.Equal(t, "1234500000", cv.Value)
	require.Equal(t, "1234.5", cv.DisplayValue)
	require.Equal(t, "USDC", cv.Symbol)
}

func TestGetReturnsTotalSupply(t *testing.T) {
	ft := newFakeTransport()
	ft.setMeta(testToken, "My Token", "MTK", 18)
	ft.totalSupply = new(big.Int).Mul(big.NewInt(1_000_000), domain.BigTenPow18)

	cv, err := newUsecase(ft).Get(bCtx.Background(), testChainId, testToken)
	require.NoError(t, err)
	require.Equal(t, "My Token", cv.Name)
	require.Equal(t, "1000000", cv.DisplayValue)
}

func TestSetAllowanceAndReadBack(t *testing.T) {
	ft := newFakeTransport()
	ft.setMeta(testToken, "My Token", "MTK", 18)
	ft.allowance = new(big.Int).Mul(big.NewInt(25), domain.BigTenPow18)

	uc := newUsecase(ft)
	_, err := uc.SetAllowance(bCtx.Background(), testChainId, testToken, testCurrency, "25")
	require.NoError(t, err)
	require.Equal(t, ft.allowance, ft.lastAmount)

	cv, err := uc.Allowance(bCtx.Background(), testChainId, testToken, testCurrency)
	require.NoError(t, err)
	require.Equal(t, "25", cv.DisplayValue)
}

func TestClaimToPaysNativePrice(t *testing.T) {
	ft := newFakeTransport()
	ft.setMeta(testToken, "Drop Token", "DROP", 18)
	ft.activeId = big.NewInt(0)
	pricePerToken := new(big.Int).Mul(big.NewInt(2), domain.BigTenPow18)
	ft.condition = &token.RawClaimCondition{
		StartTimestamp:         big.NewInt(0),
		MaxClaimableSupply:     new(big.Int).Mul(big.NewInt(1000), domain.BigTenPow18),
		SupplyClaimed:          big.NewInt(0),
		QuantityLimitPerWallet: big.NewInt(0),
		PricePerToken:          pricePerToken,
		Currency:               common.Address{},
	}

	_, err := newUsecase(ft).ClaimTo(bCtx.Background(), testChainId, testToken, testWalletAddr, "3")
	require.NoError(t, err)
	require.True(t, ft.called("claim"))
	require.Equal(t, new(big.Int).Mul(big.NewInt(3), domain.BigTenPow18), ft.lastAmount)
	require.Equal(t, pricePerToken, ft.lastPrice)
	// 3 tokens at 2 native each
	require.Equal(t, new(big.Int).Mul(big.NewInt(6), domain.BigTenPow18), ft.lastValue)
}

func TestClaimErc20PricedSendsNoValue(t *testing.T) {
	ft := newFakeTransport()
	ft.setMeta(testToken, "Drop Token", "DROP", 18)
	ft.setMeta(testCurrency, "USD Coin", "USDC", 6)
	ft.activeId = big.NewInt(0)
	ft.condition = &token.RawClaimCondition{
		StartTimestamp:         big.NewInt(0),
		MaxClaimableSupply:     new(big.Int).Mul(big.NewInt(1000), domain.BigTenPow18),
		SupplyClaimed:          big.NewInt(0),
		QuantityLimitPerWallet: big.NewInt(0),
		PricePerToken:          big.NewInt(5_000_000),
		Currency:               common.HexToAddress(testCurrency.ToLowerStr()),
	}

	// claim resolves the wallet as receiver
	_, err := newUsecase(ft).Claim(bCtx.Background(), testChainId, testToken, "1")
	require.NoError(t, err)
	require.True(t, ft.called("claim"))
	require.Equal(t, testCurrency, ft.lastCurrency)
	require.Equal(t, int64(0), ft.lastValue.Int64())
}
