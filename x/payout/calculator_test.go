package payout

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/gconf"
	"github.com/iov-one/ledger/ledgertest/assert"
	"github.com/iov-one/ledger/store"
	"github.com/iov-one/ledger/x/nft"
)

// newState returns a store holding given configuration and a token "1"
// owned by alice.
func newState(t testing.TB, conf *Configuration) (store.CacheableKVStore, *nft.Controller) {
	t.Helper()
	db := store.MemStore()
	if conf != nil {
		if err := gconf.Save(db, confPkg, conf); err != nil {
			t.Fatalf("cannot save configuration: %s", err)
		}
	}
	ctrl := nft.NewController(nft.NewBucket())
	if _, err := ctrl.Mint(db, "1", "alice", nft.TokenMetadata{}); err != nil {
		t.Fatalf("cannot mint: %s", err)
	}
	return db, ctrl
}

func maxLen(n uint32) *uint32 {
	return &n
}

func TestCalculatorPayout(t *testing.T) {
	cases := map[string]struct {
		Conf       *Configuration
		TokenID    string
		Balance    string
		MaxLen     *uint32
		WantErr    *errors.Error
		WantPayout map[ledger.AccountID]string
	}{
		"no royalty": {
			TokenID:    "1",
			Balance:    "1000000",
			WantPayout: map[ledger.AccountID]string{"alice": "1000000"},
		},
		"empty configuration": {
			Conf:       &Configuration{},
			TokenID:    "1",
			Balance:    "1000000",
			WantPayout: map[ledger.AccountID]string{"alice": "1000000"},
		},
		"ten percent royalty": {
			Conf:       &Configuration{Creator: "bob", Rate: 1000},
			TokenID:    "1",
			Balance:    "1000000",
			WantPayout: map[ledger.AccountID]string{"bob": "100000", "alice": "900000"},
		},
		"royalty is rounded down": {
			Conf:       &Configuration{Creator: "bob", Rate: 3333},
			TokenID:    "1",
			Balance:    "10",
			WantPayout: map[ledger.AccountID]string{"bob": "3", "alice": "7"},
		},
		"zero royalty keeps the creator entry": {
			Conf:       &Configuration{Creator: "bob", Rate: 0},
			TokenID:    "1",
			Balance:    "500",
			WantPayout: map[ledger.AccountID]string{"bob": "0", "alice": "500"},
		},
		"full royalty": {
			Conf:       &Configuration{Creator: "bob", Rate: 10000},
			TokenID:    "1",
			Balance:    "500",
			WantPayout: map[ledger.AccountID]string{"bob": "500", "alice": "0"},
		},
		"zero balance": {
			Conf:       &Configuration{Creator: "bob", Rate: 1000},
			TokenID:    "1",
			Balance:    "0",
			WantPayout: map[ledger.AccountID]string{"bob": "0", "alice": "0"},
		},
		"creator owns the token": {
			Conf:       &Configuration{Creator: "alice", Rate: 1000},
			TokenID:    "1",
			Balance:    "1000000",
			WantPayout: map[ledger.AccountID]string{"alice": "1000000"},
		},
		"creator owns the token with limit of one": {
			Conf:       &Configuration{Creator: "alice", Rate: 1000},
			TokenID:    "1",
			Balance:    "1000000",
			MaxLen:     maxLen(1),
			WantPayout: map[ledger.AccountID]string{"alice": "1000000"},
		},
		"maximum balance": {
			Conf:    &Configuration{Creator: "bob", Rate: 1000},
			TokenID: "1",
			Balance: "340282366920938463463374607431768211455",
			WantPayout: map[ledger.AccountID]string{
				"bob":   "34028236692093846346337460743176821145",
				"alice": "306254130228844617117037146688591390310",
			},
		},
		"limit exceeded": {
			Conf:    &Configuration{Creator: "bob", Rate: 1000},
			TokenID: "1",
			Balance: "1000000",
			MaxLen:  maxLen(1),
			WantErr: ErrLimitExceeded,
		},
		"zero limit": {
			TokenID: "1",
			Balance: "1000000",
			MaxLen:  maxLen(0),
			WantErr: errors.ErrInput,
		},
		"zero limit is checked before the token": {
			TokenID: "404",
			Balance: "1000000",
			MaxLen:  maxLen(0),
			WantErr: errors.ErrInput,
		},
		"missing token": {
			TokenID: "404",
			Balance: "1000000",
			WantErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db, ctrl := newState(t, tc.Conf)
			calc := NewCalculator(ctrl)

			balance := coin.MustParseAmount(tc.Balance)
			payout, err := calc.Payout(db, tc.TokenID, balance, tc.MaxLen)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.WantErr != nil {
				return
			}

			want := &Payout{Payout: make(map[ledger.AccountID]coin.Amount)}
			for acc, amount := range tc.WantPayout {
				want.Payout[acc] = coin.MustParseAmount(amount)
			}
			if !want.Equal(payout) {
				t.Fatalf("want %v, got %v", want.Payout, payout.Payout)
			}

			sum, err := payout.Sum()
			assert.Nil(t, err)
			assert.Equal(t, balance.String(), sum.String())
		})
	}
}

func TestPayoutSumEqualsBalance(t *testing.T) {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	balances := []string{
		"0", "1", "9999", "10000", "10001", "123456789",
		"1000000000000000000000000",
		new(big.Int).Rsh(max, 1).String(),
		new(big.Int).Sub(max, big.NewInt(1)).String(),
		max.String(),
	}
	rates := []coin.BasisPoint{0, 1, 250, 1000, 3333, 5000, 9999, 10000}

	for _, rate := range rates {
		db, ctrl := newState(t, &Configuration{Creator: "bob", Rate: rate})
		calc := NewCalculator(ctrl)

		for _, b := range balances {
			balance := coin.MustParseAmount(b)
			payout, err := calc.Payout(db, "1", balance, nil)
			assert.Nil(t, err)
			assert.Equal(t, 2, len(payout.Payout))

			sum, err := payout.Sum()
			assert.Nil(t, err)
			if !sum.Equals(balance) {
				t.Fatalf("rate %d, balance %s: sum %s", rate, balance, sum)
			}

			// creator share is floor(balance * rate / 10000)
			want := new(big.Int).Mul(balanceInt(t, b), big.NewInt(int64(rate)))
			want.Div(want, big.NewInt(10000))
			if got := payout.Payout["bob"].String(); got != want.String() {
				t.Fatalf("rate %d, balance %s: want creator share %s, got %s", rate, b, want, got)
			}
		}
	}
}

func balanceInt(t testing.TB, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("invalid number %q", s)
	}
	return n
}

func TestPayoutIsDeterministic(t *testing.T) {
	db, ctrl := newState(t, &Configuration{Creator: "bob", Rate: 1000})
	calc := NewCalculator(ctrl)
	balance := coin.NewAmount(1000000)

	first, err := calc.Payout(db, "1", balance, nil)
	assert.Nil(t, err)
	firstRaw, err := json.Marshal(first)
	assert.Nil(t, err)
	assert.Equal(t, `{"payout":{"alice":"900000","bob":"100000"}}`, string(firstRaw))

	for i := 0; i < 20; i++ {
		p, err := calc.Payout(db, "1", balance, nil)
		assert.Nil(t, err)
		raw, err := json.Marshal(p)
		assert.Nil(t, err)
		assert.Equal(t, string(firstRaw), string(raw))
	}
}

func TestPayoutLimitNeverZero(t *testing.T) {
	confs := []*Configuration{
		nil,
		{Creator: "bob", Rate: 1000},
		{Creator: "alice", Rate: 1000},
	}
	for _, conf := range confs {
		db, ctrl := newState(t, conf)
		calc := NewCalculator(ctrl)
		for _, b := range []uint64{0, 1, 1000000} {
			_, err := calc.Payout(db, "1", coin.NewAmount(b), maxLen(0))
			assert.IsErr(t, errors.ErrInput, err)
		}
	}
}
