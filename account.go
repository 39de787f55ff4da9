package ledger

import (
	"regexp"
	"strings"

	"github.com/iov-one/ledger/crypto/bech32"
	"github.com/iov-one/ledger/errors"
)

const (
	minAccountIDLen = 2
	maxAccountIDLen = 64
)

// Account names are lowercase alphanumeric parts separated by a single
// dot, dash or underscore, for example "alice.near" or "creator_1".
var isAccountName = regexp.MustCompile(`^(([a-z\d]+[\-_])*[a-z\d]+\.)*([a-z\d]+[\-_])*[a-z\d]+$`).MatchString

// addressPrefixes are human readable parts of bech32 encoded addresses.
// Identifiers using those prefixes must carry a valid address.
var addressPrefixes = []string{"iov1", "tiov1"}

// AccountID identifies an account that can own tokens and receive payouts.
type AccountID string

// Validate returns an error if the identifier is not a valid account name.
// Identifiers that look like a bech32 address must also pass the checksum
// verification.
func (a AccountID) Validate() error {
	s := string(a)
	if n := len(s); n < minAccountIDLen || n > maxAccountIDLen {
		return errors.Wrapf(errors.ErrInput, "account id %q must be %d-%d characters", s, minAccountIDLen, maxAccountIDLen)
	}
	if !isAccountName(s) {
		return errors.Wrapf(errors.ErrInput, "invalid account id %q", s)
	}
	if a.IsAddress() {
		if _, _, err := bech32.DecodeAddress(s); err != nil {
			return errors.Wrapf(err, "account id %q", s)
		}
	}
	return nil
}

// IsAddress returns true if the identifier is using a bech32 address
// format.
func (a AccountID) IsAddress() bool {
	for _, p := range addressPrefixes {
		if strings.HasPrefix(string(a), p) {
			return true
		}
	}
	return false
}

// Equals returns true if both identifiers are the same.
func (a AccountID) Equals(b AccountID) bool {
	return a == b
}

func (a AccountID) String() string {
	return string(a)
}
