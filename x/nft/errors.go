package nft

import (
	"github.com/iov-one/ledger/errors"
)

// nft reserves 500~599
var (
	// ErrNotOwner is returned when the signer is neither the token owner
	// nor an approved account.
	ErrNotOwner = errors.Register(500, "not token owner")

	// ErrStaleApproval is returned when the approval ID provided does not
	// match the current approval of the sender.
	ErrStaleApproval = errors.Register(501, "stale approval")
)
