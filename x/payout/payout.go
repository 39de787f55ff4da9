package payout

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
)

// Payout maps each beneficiary to the amount it should receive.
type Payout struct {
	Payout map[ledger.AccountID]coin.Amount `json:"payout"`
}

// Equal returns true if both payouts contain the same set of beneficiaries
// with the same amounts.
func (p *Payout) Equal(o *Payout) bool {
	if len(p.Payout) != len(o.Payout) {
		return false
	}
	for acc, amount := range p.Payout {
		other, ok := o.Payout[acc]
		if !ok || !amount.Equals(other) {
			return false
		}
	}
	return true
}

// Sum returns the total of all entries.
func (p *Payout) Sum() (coin.Amount, error) {
	var total coin.Amount
	for _, amount := range p.Payout {
		var err error
		if total, err = total.Add(amount); err != nil {
			return total, err
		}
	}
	return total, nil
}
