package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x/payout"
)

func cmdPayout(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print how given balance would be split between the beneficiaries of a
token. The state is not modified.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl      = flDB(fl)
		tokenFl   = fl.String("token", "", "Token ID.")
		balanceFl = fl.String("balance", "", "Sale balance, in the smallest unit.")
		maxLenFl  = flOptionalUint32(fl, "max-len", fmt.Sprintf("Maximum number of payout entries. Defaults to %d.", payout.DefaultMaxLenPayout))
	)
	fl.Parse(args)

	balance, err := coin.ParseAmount(*balanceFl)
	if err != nil {
		return errors.Wrap(err, "balance")
	}
	req := payout.PayoutRequest{
		TokenID:      *tokenFl,
		Balance:      balance,
		MaxLenPayout: *maxLenFl,
	}
	return query(output, dbFl, payout.QueryPath, req)
}

func cmdTransferPayout(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Transfer a token to the receiver and print how given balance must be split
between the beneficiaries. The split is computed for the owner before the
transfer. Exactly one unit must be attached as the deposit.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl       = flDB(fl)
		signerFl   = flSigner(fl, ledger.OneYocto.String())
		tokenFl    = fl.String("token", "", "Token ID.")
		receiverFl = fl.String("receiver", "", "New owner of the token.")
		approvalFl = flOptionalUint64(fl, "approval", "Approval ID of the signer, if not the owner.")
		memoFl     = fl.String("memo", "", "Optional memo.")
		balanceFl  = fl.String("balance", "", "Sale balance, in the smallest unit.")
		maxLenFl   = flOptionalUint32(fl, "max-len", fmt.Sprintf("Maximum number of payout entries. Defaults to %d.", payout.DefaultMaxLenPayout))
	)
	fl.Parse(args)

	balance, err := coin.ParseAmount(*balanceFl)
	if err != nil {
		return errors.Wrap(err, "balance")
	}
	msg := payout.TransferPayoutMsg{
		ReceiverID:   ledger.AccountID(*receiverFl),
		TokenID:      *tokenFl,
		ApprovalID:   *approvalFl,
		Memo:         *memoFl,
		Balance:      balance,
		MaxLenPayout: *maxLenFl,
	}
	return deliver(output, dbFl, signerFl, msg.Path(), &msg)
}
