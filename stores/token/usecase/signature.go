package usecase

import (
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/dropapi/base/ctx"
	"github.com/x-xyz/dropapi/base/ethereum"
	"github.com/x-xyz/dropapi/base/log"
	"github.com/x-xyz/dropapi/domain"
	"github.com/x-xyz/dropapi/domain/mint"
	"github.com/x-xyz/dropapi/domain/token"
)

type SignatureMinterCfg struct {
	Transport token.Transport
	// SigningKey is the ambient voucher signer. Nil without a bridge means
	// signature generation is unavailable.
	SigningKey *ecdsa.PrivateKey
}

type signatureMinter struct {
	transport  token.Transport
	signingKey *ecdsa.PrivateKey
}

func NewSignatureMinter(cfg *SignatureMinterCfg) token.SignatureMinter {
	return &signatureMinter{
		transport:  cfg.Transport,
		signingKey: cfg.SigningKey,
	}
}

// GenerateSignature signs a mint voucher with the explicit key, falling back
// to the ambient key, falling back to the transport's signer.
func (im *signatureMinter) GenerateSignature(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr domain.Address, payload *mint.Payload, signingKey *ecdsa.PrivateKey) (*mint.SignedPayload, error) {
	key := signingKey
	if key == nil {
		key = im.signingKey
	}
	if key == nil {
		return im.transport.GenerateMintSignature(ctx, chainId, tokenAddr, payload)
	}

	recipient := payload.PrimarySaleRecipient
	if recipient.IsEmpty() || recipient.Equals(domain.EmptyAddress) {
		r, err := im.transport.PrimarySaleRecipient(ctx, chainId, tokenAddr)
		if err != nil {
			return nil, err
		}
		recipient = r
	}
	req, err := mint.BuildRequest(payload, recipient)
	if err != nil {
		return nil, err
	}

	digest, err := im.typedDataHash(ctx, chainId, tokenAddr, req)
	if err != nil {
		return nil, err
	}
	sig, err := ethereum.SignHash(digest, key)
	if err != nil {
		return nil, err
	}
	return &mint.SignedPayload{
		Signature: hexutil.Encode(sig),
		Payload:   req.ToPayloadOut(),
	}, nil
}

// VerifySignature recomputes the typed-data digest, recovers the signer and
// delegates the final accept decision to the contract's verify view.
func (im *signatureMinter) VerifySignature(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr domain.Address, sp *mint.SignedPayload) (bool, error) {
	req, sig, err := im.recoverRequest(ctx, chainId, tokenAddr, sp)
	if err != nil {
		return false, err
	}
	return im.transport.VerifyMintRequest(ctx, chainId, tokenAddr, req, sig)
}

// MintWithSignature redeems a signed voucher on chain. Rejected vouchers fail
// with domain.ErrSignatureMismatch before any transaction is sent.
func (im *signatureMinter) MintWithSignature(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr domain.Address, sp *mint.SignedPayload) (*domain.TransactionResult, error) {
	req, sig, err := im.recoverRequest(ctx, chainId, tokenAddr, sp)
	if err != nil {
		return nil, err
	}
	ok, err := im.transport.VerifyMintRequest(ctx, chainId, tokenAddr, req, sig)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, xerrors.Errorf("voucher rejected by contract: %w", domain.ErrSignatureMismatch)
	}

	value := big.NewInt(0)
	currency := domain.Address(strings.ToLower(req.Currency.Hex()))
	if currency.IsNative() && req.Price.Sign() > 0 {
		value.Mul(req.Quantity, req.Price)
		value.Quo(value, domain.BigTenPow18)
	}
	return im.transport.MintWithSignature(ctx, chainId, tokenAddr, req, sig, value)
}

// recoverRequest rebuilds the request from the signed payload and checks that
// the signature recovers to some address at all.
func (im *signatureMinter) recoverRequest(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr domain.Address, sp *mint.SignedPayload) (*mint.Request, []byte, error) {
	req, err := mint.RequestFromSigned(&sp.Payload)
	if err != nil {
		return nil, nil, err
	}
	sig, err := hexutil.Decode(sp.Signature)
	if err != nil {
		return nil, nil, xerrors.Errorf("decode signature: %v: %w", err, domain.ErrSignatureMismatch)
	}
	digest, err := im.typedDataHash(ctx, chainId, tokenAddr, req)
	if err != nil {
		return nil, nil, err
	}
	signer, err := ethereum.RecoverHashSigner(digest, sig)
	if err != nil {
		return nil, nil, xerrors.Errorf("recover signer: %v: %w", err, domain.ErrSignatureMismatch)
	}
	ctx.WithFields(log.Fields{
		"uid":    sp.Payload.Uid,
		"signer": strings.ToLower(signer.Hex()),
	}).Debug("voucher signer recovered")
	return req, sig, nil
}

func (im *signatureMinter) typedDataHash(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddr domain.Address, req *mint.Request) ([]byte, error) {
	name, err := im.transport.Name(ctx, chainId, tokenAddr)
	if err != nil {
		return nil, err
	}
	return req.TypedDataHash(name, chainId, tokenAddr)
}
