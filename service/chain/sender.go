package chain

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum"
	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/base/log"
	"github.com/x-xyz/dropapi/base/metrics"
	"github.com/x-xyz/dropapi/domain"
)

type SenderCfg struct {
	RpcUrls map[int32]string
	// PrivateKey signs outgoing transactions. Key custody beyond this single
	// configured account is out of scope.
	PrivateKey string
}

// Sender submits contract writes and waits for inclusion. Writes are not
// idempotent and are never retried here; resubmission is the caller's call.
type Sender interface {
	Send(c bCtx.Ctx, chainId int32, to common.Address, value *big.Int, _abi ethabi.ABI, method string, params ...interface{}) (*domain.TransactionResult, error)
	From() common.Address
}

type senderImpl struct {
	clients map[int32]*ethclient.Client
	key     *ecdsa.PrivateKey
	from    common.Address
	met     *metrics.Service
}

func NewSender(ctx bCtx.Ctx, cfg *SenderCfg) (Sender, error) {
	key, err := crypto.HexToECDSA(cfg.PrivateKey)
	if err != nil {
		return nil, xerrors.Errorf("parse sender key: %w", err)
	}
	clients := make(map[int32]*ethclient.Client)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			continue
		}
		clients[chainId] = client
	}
	return &senderImpl{
		clients: clients,
		key:     key,
		from:    crypto.PubkeyToAddress(key.PublicKey),
		met:     metrics.New("chain"),
	}, nil
}

func (s *senderImpl) From() common.Address {
	return s.from
}

func (s *senderImpl) Send(ctx bCtx.Ctx, chainId int32, to common.Address, value *big.Int, _abi ethabi.ABI, method string, params ...interface{}) (*domain.TransactionResult, error) {
	client, ok := s.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}

	defer s.met.BumpTime("send.time", "method", method).End()

	if value == nil {
		value = domain.Big0
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}

	nonce, err := client.PendingNonceAt(ctx, s.from)
	if err != nil {
		return nil, s.failed(ctx, method, err)
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, s.failed(ctx, method, err)
	}
	gasLimit, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From:  s.from,
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return nil, s.failed(ctx, method, err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(big.NewInt(int64(chainId))), s.key)
	if err != nil {
		return nil, s.failed(ctx, method, err)
	}

	if err := client.SendTransaction(ctx, signedTx); err != nil {
		return nil, s.failed(ctx, method, err)
	}

	txHash := domain.TxHash(signedTx.Hash().Hex())
	ctx.WithFields(log.Fields{
		"method": method,
		"txHash": txHash,
	}).Info("transaction submitted")

	receipt, err := bind.WaitMined(ctx, client, signedTx)
	if err != nil {
		// the broadcast transaction is left as-is; no rollback exists
		return &domain.TransactionResult{
			Status: domain.TxStatusSubmitted,
			TxHash: txHash,
		}, s.failed(ctx, method, err)
	}

	status := domain.TxStatusConfirmed
	if receipt.Status != types.ReceiptStatusSuccessful {
		status = domain.TxStatusReverted
	}
	return &domain.TransactionResult{
		Status:      status,
		TxHash:      txHash,
		BlockNumber: domain.BlockNumber(receipt.BlockNumber.Uint64()),
	}, nil
}

func (s *senderImpl) failed(ctx bCtx.Ctx, method string, err error) error {
	s.met.BumpSum("send.err", 1, "method", method)
	ctx.WithFields(log.Fields{
		"method": method,
		"err":    err,
	}).Error("transaction failed")
	return xerrors.Errorf("%s: %v: %w", method, err, domain.ErrTransactionFailed)
}
