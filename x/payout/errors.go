package payout

import (
	"github.com/iov-one/ledger/errors"
)

// payout reserves 600~699
var (
	// ErrLimitExceeded is returned when the payout would contain more
	// entries than the caller accepts.
	ErrLimitExceeded = errors.Register(600, "payout limit exceeded")

	// ErrTransferRejected is returned when the token transfer that follows
	// a payout computation fails. The transfer failure is kept as the
	// cause.
	ErrTransferRejected = errors.Register(601, "transfer rejected")
)
