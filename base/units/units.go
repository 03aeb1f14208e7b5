// Package units converts between human-readable token amounts and base-unit
// integers across tokens with heterogeneous decimal counts. Arbitrary
// precision throughout; fixed-width types would overflow for large-supply
// tokens.
package units

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/dropapi/domain"
)

// intermediateDecimals is the precision amounts are parsed at before being
// rescaled to the token's own decimal count.
const intermediateDecimals = 18

// ToBaseUnits converts a human amount string into the base-unit integer of a
// token with the given decimal count. Negative and malformed amounts are
// rejected with domain.ErrInvalidNumberFormat.
func ToBaseUnits(amount string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, xerrors.Errorf("parse amount %q: %w", amount, domain.ErrInvalidNumberFormat)
	}
	if d.IsNegative() {
		return nil, xerrors.Errorf("negative amount %q: %w", amount, domain.ErrInvalidNumberFormat)
	}
	base := d.Shift(intermediateDecimals).Truncate(0).BigInt()
	return Rescale(base, intermediateDecimals, decimals), nil
}

// Rescale moves a base-unit integer between decimal counts. Scaling up is
// exact; scaling down truncates like on-chain integer division does.
func Rescale(v *big.Int, fromDecimals, toDecimals int32) *big.Int {
	if fromDecimals == toDecimals {
		return new(big.Int).Set(v)
	}
	diff := fromDecimals - toDecimals
	if diff < 0 {
		diff = -diff
	}
	factor := new(big.Int).Exp(domain.Big10, big.NewInt(int64(diff)), nil)
	if toDecimals > fromDecimals {
		return new(big.Int).Mul(v, factor)
	}
	return new(big.Int).Quo(v, factor)
}

// Format renders a base-unit integer as a human string truncated (not
// rounded) to displayDecimals fractional digits. displayDecimals is capped at
// the token's own decimal count, so the rendering never claims precision the
// value does not have.
func Format(raw *big.Int, decimals, displayDecimals int32, includeCommas bool) string {
	if displayDecimals > decimals {
		displayDecimals = decimals
	}
	if displayDecimals < 0 {
		displayDecimals = 0
	}

	v := new(big.Int).Set(raw)
	sign := ""
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}

	factor := new(big.Int).Exp(domain.Big10, big.NewInt(int64(decimals)), nil)
	quo, rem := new(big.Int).QuoRem(v, factor, new(big.Int))

	whole := quo.String()
	if includeCommas {
		whole = groupThousands(whole)
	}

	frac := ""
	if displayDecimals > 0 && rem.Sign() > 0 {
		digits := rem.String()
		for int32(len(digits)) < decimals {
			digits = "0" + digits
		}
		frac = strings.TrimRight(digits[:displayDecimals], "0")
	}
	if frac == "" {
		return sign + whole
	}
	return sign + whole + "." + frac
}

// CurrencyValueOf couples a base-unit integer with its currency snapshot.
func CurrencyValueOf(raw *big.Int, cur domain.Currency, displayDecimals int32) domain.CurrencyValue {
	return domain.CurrencyValue{
		Currency:     cur,
		Value:        raw.String(),
		DisplayValue: Format(raw, cur.Decimals, displayDecimals, false),
	}
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
