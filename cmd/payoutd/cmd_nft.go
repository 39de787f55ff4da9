package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x/nft"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Initialize the database using given genesis file. The royalty configuration
is read from "app_state" -> "conf" -> "payout", the collection metadata from
"app_state" -> "conf" -> "nft" and the initial tokens from
"app_state" -> "nft" -> "tokens".
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl      = flDB(fl)
		genesisFl = fl.String("genesis", env("PAYOUTD_GENESIS", "genesis.json"), "Path to the genesis file.")
	)
	fl.Parse(args)

	gen, err := app.LoadGenesis(*genesisFl)
	if err != nil {
		return err
	}
	a, closeDB, err := dbFl.open()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := a.InitChain(gen); err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, gen.ChainID)
	return err
}

func cmdMint(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Mint new tokens. A random token ID is generated unless provided. Each
minted token is written to the output.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl     = flDB(fl)
		signerFl = flSigner(fl, "0")
		idFl     = fl.String("id", "", "Token ID. Generated if not provided. Can be used only with a single copy.")
		ownerFl  = fl.String("owner", "", "Token owner. Signer if not provided.")
		copiesFl = fl.Uint("copies", 1, "How many tokens to mint.")
		titleFl  = fl.String("title", "", "Token title.")
		descFl   = fl.String("description", "", "Token description.")
		mediaFl  = fl.String("media", "", "Token media URL.")
	)
	fl.Parse(args)

	if *copiesFl == 0 {
		return errors.Wrap(errors.ErrInput, "at least one copy must be minted")
	}
	if *idFl != "" && *copiesFl > 1 {
		return errors.Wrap(errors.ErrInput, "token ID can be provided only for a single copy")
	}
	for i := uint(0); i < *copiesFl; i++ {
		id := *idFl
		if id == "" {
			id = uuid.New().String()
		}
		msg := nft.MintMsg{
			TokenID: id,
			OwnerID: ledger.AccountID(*ownerFl),
			Metadata: nft.TokenMetadata{
				Title:       *titleFl,
				Description: *descFl,
				Media:       *mediaFl,
			},
		}
		if err := deliver(output, dbFl, signerFl, msg.Path(), &msg); err != nil {
			return errors.Wrapf(err, "mint %q", id)
		}
	}
	return nil
}

func cmdApprove(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Approve an account to transfer a token on behalf of the owner. The new
approval ID is written to the output.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl      = flDB(fl)
		signerFl  = flSigner(fl, "0")
		tokenFl   = fl.String("token", "", "Token ID.")
		accountFl = fl.String("account", "", "Account that is approved.")
	)
	fl.Parse(args)

	msg := nft.ApproveMsg{TokenID: *tokenFl, AccountID: ledger.AccountID(*accountFl)}
	return deliver(output, dbFl, signerFl, msg.Path(), &msg)
}

func cmdRevoke(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Revoke the approval of an account. All approvals are revoked if no account
is provided.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl      = flDB(fl)
		signerFl  = flSigner(fl, "1")
		tokenFl   = fl.String("token", "", "Token ID.")
		accountFl = fl.String("account", "", "Account whose approval is revoked.")
	)
	fl.Parse(args)

	msg := nft.RevokeMsg{TokenID: *tokenFl, AccountID: ledger.AccountID(*accountFl)}
	return deliver(output, dbFl, signerFl, msg.Path(), &msg)
}

func cmdTransfer(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Transfer a token to the receiver without computing a payout.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl       = flDB(fl)
		signerFl   = flSigner(fl, "1")
		tokenFl    = fl.String("token", "", "Token ID.")
		receiverFl = fl.String("receiver", "", "New owner of the token.")
		approvalFl = flOptionalUint64(fl, "approval", "Approval ID of the signer, if not the owner.")
		memoFl     = fl.String("memo", "", "Optional memo.")
	)
	fl.Parse(args)

	msg := nft.TransferMsg{
		TokenID:    *tokenFl,
		ReceiverID: ledger.AccountID(*receiverFl),
		ApprovalID: *approvalFl,
		Memo:       *memoFl,
	}
	return deliver(output, dbFl, signerFl, msg.Path(), &msg)
}

func cmdOwner(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print the ownership record of a token.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl    = flDB(fl)
		tokenFl = fl.String("token", "", "Token ID.")
	)
	fl.Parse(args)

	req := struct {
		TokenID string `json:"token_id"`
	}{TokenID: *tokenFl}
	return query(output, dbFl, "nft/token", req)
}

func cmdMetadata(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print the collection metadata declared in the genesis file.
		`)
		fl.PrintDefaults()
	}
	dbFl := flDB(fl)
	fl.Parse(args)

	return query(output, dbFl, "nft/metadata", struct{}{})
}
