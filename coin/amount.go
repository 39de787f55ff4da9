package coin

import (
	"encoding/json"
	"math/big"
	"regexp"

	"github.com/holiman/uint256"
	"github.com/iov-one/ledger/errors"
)

// maxAmountBits is the width of the largest representable amount.
const maxAmountBits = 128

var isDecimal = regexp.MustCompile(`^[0-9]+$`).MatchString

// Amount is a non negative quantity of the smallest ledger unit. Its value
// never exceeds 2^128-1.
//
// Internally the value is kept in a 256 bit integer, so that multiplying two
// amounts, or an amount and a rate, never overflows before the result is
// scaled down.
//
// In JSON an amount is always a decimal string, so that clients limited to
// 53 bit numbers do not lose precision.
type Amount struct {
	v uint256.Int
}

// NewAmount returns an amount of given value.
func NewAmount(v uint64) Amount {
	var a Amount
	a.v.SetUint64(v)
	return a
}

// MaxAmount returns the largest representable amount, 2^128-1.
func MaxAmount() Amount {
	var a Amount
	a.v.SetUint64(1)
	a.v.Lsh(&a.v, maxAmountBits)
	a.v.Sub(&a.v, new(uint256.Int).SetUint64(1))
	return a
}

// ParseAmount returns an amount represented by given decimal string.
func ParseAmount(s string) (Amount, error) {
	if !isDecimal(s) {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "not a decimal number: %q", s)
	}
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "not a decimal number: %q", s)
	}
	if b.BitLen() > maxAmountBits {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "amount %s exceeds 128 bits", s)
	}
	var a Amount
	if overflow := a.v.SetFromBig(b); overflow {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "amount %s exceeds 128 bits", s)
	}
	return a, nil
}

// MustParseAmount works like ParseAmount but panics on invalid input. Use it
// only for constant values.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the decimal representation.
func (a Amount) String() string {
	return a.v.ToBig().String()
}

// IsZero returns true if this amount is zero.
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// Equals returns true if both amounts hold the same value.
func (a Amount) Equals(b Amount) bool {
	return a.v.Eq(&b.v)
}

// Cmp compares two amounts and returns -1, 0 or 1.
func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(&b.v)
}

// Add returns the sum of both amounts. It fails if the result does not fit
// in 128 bits.
func (a Amount) Add(b Amount) (Amount, error) {
	var sum Amount
	sum.v.Add(&a.v, &b.v)
	if sum.v.BitLen() > maxAmountBits {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", a, b)
	}
	return sum, nil
}

// Sub returns the difference of both amounts. It fails if b is greater than
// a, because an amount cannot be negative.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.v.Lt(&b.v) {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "%s - %s", a, b)
	}
	var diff Amount
	diff.v.Sub(&a.v, &b.v)
	return diff, nil
}

// Validate returns an error if this amount is outside of the 128 bit range.
func (a Amount) Validate() error {
	if a.v.BitLen() > maxAmountBits {
		return errors.Wrap(errors.ErrOverflow, "amount exceeds 128 bits")
	}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrAmount, "amount must be a decimal string")
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
