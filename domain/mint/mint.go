package mint

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/x-xyz/dropapi/base/units"
	"github.com/x-xyz/dropapi/domain"
)

// VoucherDecimals is the fixed decimal convention of the signature mint wire
// format, independent of the token's actual decimals.
const VoucherDecimals = 18

const defaultValidityWindow = 10 * 365 * 24 * time.Hour

// Payload is the caller-facing mint voucher request. Quantity and Price are
// human-readable decimal strings.
type Payload struct {
	To                   domain.Address `json:"to"`
	Quantity             string         `json:"quantity"`
	Price                string         `json:"price"`
	CurrencyAddress      domain.Address `json:"currencyAddress"`
	PrimarySaleRecipient domain.Address `json:"primarySaleRecipient"`
	Uid                  string         `json:"uid"`
	MintStartTime        int64          `json:"mintStartTime"`
	MintEndTime          int64          `json:"mintEndTime"`
}

// NewPayload builds a payload with a fresh uid and the default price,
// currency and validity window. The window starts now and stays open for ten
// years unless the caller overrides it.
func NewPayload(to domain.Address, quantity string) *Payload {
	now := time.Now()
	return &Payload{
		To:                   to,
		Quantity:             quantity,
		Price:                "0",
		CurrencyAddress:      domain.EmptyAddress,
		PrimarySaleRecipient: domain.EmptyAddress,
		Uid:                  NewUid(),
		MintStartTime:        now.Unix(),
		MintEndTime:          now.Add(defaultValidityWindow).Unix(),
	}
}

// NewUid returns a fresh 32-byte hex identifier. uuids are 16 bytes, so two
// v4 values are concatenated to fill the bytes32 wire field.
func NewUid() string {
	var uid [32]byte
	a, b := uuid.New(), uuid.New()
	copy(uid[:16], a[:])
	copy(uid[16:], b[:])
	return hexutil.Encode(uid[:])
}

// PayloadOut mirrors Payload with base-unit integer strings for quantity and
// price. It is the signed, wire-ready form.
type PayloadOut struct {
	To                   domain.Address `json:"to"`
	Quantity             string         `json:"quantity"`
	Price                string         `json:"price"`
	CurrencyAddress      domain.Address `json:"currencyAddress"`
	PrimarySaleRecipient domain.Address `json:"primarySaleRecipient"`
	Uid                  string         `json:"uid"`
	MintStartTime        int64          `json:"mintStartTime"`
	MintEndTime          int64          `json:"mintEndTime"`
}

// SignedPayload is immutable once produced and is not persisted by this
// module.
type SignedPayload struct {
	Signature string     `json:"signature"`
	Payload   PayloadOut `json:"payload"`
}

// Request is the exact struct hashed for EIP-712. Field order and ABI types
// (address, address, uint256, uint256, address, uint128, uint128, bytes32)
// are part of the wire contract.
type Request struct {
	To                     common.Address
	PrimarySaleRecipient   common.Address
	Quantity               *big.Int
	Price                  *big.Int
	Currency               common.Address
	ValidityStartTimestamp *big.Int
	ValidityEndTimestamp   *big.Int
	Uid                    [32]byte
}

// BuildRequest converts a payload into the on-chain request struct. Pure
// transform, no I/O. Quantity and price are converted at the fixed 18-decimal
// voucher convention regardless of the token's decimals.
func BuildRequest(p *Payload, primarySaleRecipient domain.Address) (*Request, error) {
	quantity, err := units.ToBaseUnits(p.Quantity, VoucherDecimals)
	if err != nil {
		return nil, err
	}
	price := p.Price
	if price == "" {
		price = "0"
	}
	priceUnits, err := units.ToBaseUnits(price, VoucherDecimals)
	if err != nil {
		return nil, err
	}
	uid, err := decodeUid(p.Uid)
	if err != nil {
		return nil, err
	}
	recipient := p.PrimarySaleRecipient
	if recipient.IsEmpty() || recipient.Equals(domain.EmptyAddress) {
		recipient = primarySaleRecipient
	}
	currency := p.CurrencyAddress
	if currency.IsEmpty() {
		currency = domain.EmptyAddress
	}
	return &Request{
		To:                     common.HexToAddress(p.To.ToLowerStr()),
		PrimarySaleRecipient:   common.HexToAddress(recipient.ToLowerStr()),
		Quantity:               quantity,
		Price:                  priceUnits,
		Currency:               common.HexToAddress(currency.ToLowerStr()),
		ValidityStartTimestamp: big.NewInt(p.MintStartTime),
		ValidityEndTimestamp:   big.NewInt(p.MintEndTime),
		Uid:                    uid,
	}, nil
}

// RequestFromSigned rebuilds the request struct from a signed payload.
// Quantity and price are already base-unit integer strings at this point.
func RequestFromSigned(out *PayloadOut) (*Request, error) {
	nums, err := domain.ToBigInt([]string{out.Quantity, out.Price})
	if err != nil {
		return nil, err
	}
	uid, err := decodeUid(out.Uid)
	if err != nil {
		return nil, err
	}
	return &Request{
		To:                     common.HexToAddress(out.To.ToLowerStr()),
		PrimarySaleRecipient:   common.HexToAddress(out.PrimarySaleRecipient.ToLowerStr()),
		Quantity:               nums[0],
		Price:                  nums[1],
		Currency:               common.HexToAddress(out.CurrencyAddress.ToLowerStr()),
		ValidityStartTimestamp: big.NewInt(out.MintStartTime),
		ValidityEndTimestamp:   big.NewInt(out.MintEndTime),
		Uid:                    uid,
	}, nil
}

// ToPayloadOut renders the request back into its wire-ready payload form.
func (r *Request) ToPayloadOut() PayloadOut {
	return PayloadOut{
		To:                   domain.Address(strings.ToLower(r.To.Hex())),
		Quantity:             r.Quantity.String(),
		Price:                r.Price.String(),
		CurrencyAddress:      domain.Address(strings.ToLower(r.Currency.Hex())),
		PrimarySaleRecipient: domain.Address(strings.ToLower(r.PrimarySaleRecipient.Hex())),
		Uid:                  hexutil.Encode(r.Uid[:]),
		MintStartTime:        r.ValidityStartTimestamp.Int64(),
		MintEndTime:          r.ValidityEndTimestamp.Int64(),
	}
}

func decodeUid(s string) ([32]byte, error) {
	var uid [32]byte
	raw, err := hexutil.Decode(s)
	if err != nil {
		return uid, xerrors.Errorf("decode uid %q: %w", s, domain.ErrInvalidNumberFormat)
	}
	if len(raw) != 32 {
		return uid, xerrors.Errorf("uid must be 32 bytes, got %d: %w", len(raw), domain.ErrInvalidNumberFormat)
	}
	copy(uid[:], raw)
	return uid, nil
}
