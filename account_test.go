package ledger

import (
	"bytes"
	"testing"

	"github.com/iov-one/ledger/crypto/bech32"
	"github.com/iov-one/ledger/errors"
)

func TestAccountIDValidate(t *testing.T) {
	addr, err := bech32.Encode("tiov", bytes.Repeat([]byte{0x01}, bech32.AddressLength))
	if err != nil {
		t.Fatalf("cannot encode address: %s", err)
	}

	cases := map[string]struct {
		id      AccountID
		wantErr *errors.Error
	}{
		"simple name":              {id: "alice"},
		"sub account":              {id: "alice.near"},
		"dash and underscore":      {id: "creator_1-x.testnet"},
		"bech32 address":           {id: AccountID(addr)},
		"too short":                {id: "a", wantErr: errors.ErrInput},
		"empty":                    {id: "", wantErr: errors.ErrInput},
		"upper case":               {id: "Alice", wantErr: errors.ErrInput},
		"double separator":         {id: "alice..near", wantErr: errors.ErrInput},
		"trailing separator":       {id: "alice-", wantErr: errors.ErrInput},
		"too long":                 {id: AccountID(bytes.Repeat([]byte("a"), 65)), wantErr: errors.ErrInput},
		"address with bad checksum": {id: "tiov1qyqszqgpqyqszqgpqyqszqgpqyqszqgpgt5zjj", wantErr: errors.ErrInput},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.id.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
