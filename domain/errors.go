package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// ErrInvalidNumberFormat will throw on malformed decimal or hex input
	ErrInvalidNumberFormat = errors.New("invalid number format")
	// ErrUnsupportedOperation will throw if the capability is not available on
	// the current runtime target, e.g. allowlist proofs on the bridge
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrSignatureMismatch will throw if a recomputed typed-data hash disagrees
	// with the signature it is submitted with
	ErrSignatureMismatch = errors.New("signature mismatch")
	// ErrMetadataUnavailable marks a failed currency metadata fetch; the claim
	// condition resolver degrades instead of propagating it
	ErrMetadataUnavailable = errors.New("currency metadata unavailable")
	// ErrTransactionFailed wraps failures surfaced by the write collaborator
	ErrTransactionFailed = errors.New("transaction failed")

	ErrInvalidChainId = errors.New("invalid chain id")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrInvalidSignature = errors.New("Invalid signature")
)
