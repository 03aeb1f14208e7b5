package domain

import (
	"github.com/x-xyz/dropapi/base/ctx"
)

type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusSubmitted TxStatus = "submitted"
	TxStatusConfirmed TxStatus = "confirmed"
	TxStatusReverted  TxStatus = "reverted"
	TxStatusFailed    TxStatus = "failed"
)

// TransactionResult is returned verbatim from the write collaborator. The
// module never retries a write and never fabricates partial success.
type TransactionResult struct {
	Status      TxStatus    `json:"status"`
	TxHash      TxHash      `json:"txHash"`
	BlockNumber BlockNumber `json:"blockNumber"`
}

// WalletContext exposes the externally owned "currently connected wallet"
// state. Implementations are read-only from this module's perspective.
type WalletContext interface {
	GetAddress(c ctx.Ctx) (Address, error)
	GetChainId(c ctx.Ctx) (ChainId, error)
}
