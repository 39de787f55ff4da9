package coin

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/ledger/errors"
)

// BasisPoint is a rate expressed in hundredths of a percent.
type BasisPoint uint32

// FullBasisPoint is 100%.
const FullBasisPoint BasisPoint = 10000

// Validate returns an error if the rate is greater than 100%.
func (bp BasisPoint) Validate() error {
	if bp > FullBasisPoint {
		return errors.Wrapf(errors.ErrInput, "basis point %d exceeds %d", bp, FullBasisPoint)
	}
	return nil
}

// ApplyBasisPoint returns floor(amount * bp / 10000).
//
// The rate is not validated. The multiplication is done on 256 bits and
// cannot overflow for any amount and any rate.
func ApplyBasisPoint(amount Amount, bp BasisPoint) Amount {
	var share Amount
	rate := new(uint256.Int).SetUint64(uint64(bp))
	full := new(uint256.Int).SetUint64(uint64(FullBasisPoint))
	share.v.Mul(&amount.v, rate)
	share.v.Div(&share.v, full)
	return share
}
