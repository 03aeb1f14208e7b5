package bridge

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/domain"
)

const (
	testToken = domain.Address("0x00000000000000000000000000000000000000aa")
	testOwner = domain.Address("0x00000000000000000000000000000000000000bb")
)

func TestTransportBalanceOf(t *testing.T) {
	srv := newBridgeServer(t, func(route string, args []string) (interface{}, string) {
		require.Equal(t, "erc20/balanceOf", route)
		require.Equal(t, []string{"1", `"` + string(testToken) + `"`, `"` + string(testOwner) + `"`}, args)
		return "1000", ""
	})
	defer srv.Close()

	tr := NewTransport(newTestClient(srv.URL))
	balance, err := tr.BalanceOf(bCtx.Background(), 1, testToken, testOwner)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1000), balance)
}

func TestTransportRejectsNonNumericResult(t *testing.T) {
	srv := newBridgeServer(t, func(string, []string) (interface{}, string) {
		return "not-a-number", ""
	})
	defer srv.Close()

	tr := NewTransport(newTestClient(srv.URL))
	_, err := tr.TotalSupply(bCtx.Background(), 1, testToken)
	require.ErrorIs(t, err, domain.ErrInvalidNumberFormat)
}

func TestTransportClaimConditionById(t *testing.T) {
	srv := newBridgeServer(t, func(route string, args []string) (interface{}, string) {
		require.Equal(t, "erc20/claimConditions/getById", route)
		require.Len(t, args, 3)
		require.Equal(t, `"7"`, args[2])
		return rawClaimConditionDTO{
			StartTimestamp:         "0",
			MaxClaimableSupply:     "1000",
			SupplyClaimed:          "200",
			QuantityLimitPerWallet: "10",
			MerkleRoot:             "0x0000000000000000000000000000000000000000000000000000000000000000",
			PricePerToken:          "2000000",
			Currency:               string(testOwner),
		}, ""
	})
	defer srv.Close()

	tr := NewTransport(newTestClient(srv.URL))
	cond, err := tr.ClaimConditionById(bCtx.Background(), 1, testToken, big.NewInt(7))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1000), cond.MaxClaimableSupply)
	require.Equal(t, big.NewInt(200), cond.SupplyClaimed)
	require.Equal(t, big.NewInt(2000000), cond.PricePerToken)
}

func TestTransportWrite(t *testing.T) {
	srv := newBridgeServer(t, func(route string, args []string) (interface{}, string) {
		require.Equal(t, "erc20/transfer", route)
		require.Equal(t, `"1500000"`, args[3])
		return domain.TransactionResult{
			Status:      domain.TxStatusConfirmed,
			TxHash:      "0x1",
			BlockNumber: 10,
		}, ""
	})
	defer srv.Close()

	tr := NewTransport(newTestClient(srv.URL))
	res, err := tr.Transfer(bCtx.Background(), 1, testToken, testOwner, big.NewInt(1_500_000))
	require.NoError(t, err)
	require.Equal(t, domain.TxStatusConfirmed, res.Status)
	require.Equal(t, domain.BlockNumber(10), res.BlockNumber)
}

func TestWalletRoutes(t *testing.T) {
	srv := newBridgeServer(t, func(route string, _ []string) (interface{}, string) {
		switch route {
		case "wallet/getAddress":
			return string(testOwner), ""
		case "wallet/getChainId":
			return int32(5), ""
		}
		return nil, "unknown route"
	})
	defer srv.Close()

	w := NewWallet(newTestClient(srv.URL))
	addr, err := w.GetAddress(bCtx.Background())
	require.NoError(t, err)
	require.Equal(t, testOwner, addr)
	chainId, err := w.GetChainId(bCtx.Background())
	require.NoError(t, err)
	require.Equal(t, domain.ChainId(5), chainId)
}
