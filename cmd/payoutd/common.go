package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	payoutd "github.com/iov-one/ledger/cmd/payoutd/app"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
	"github.com/tendermint/tendermint/libs/log"
)

// logOutput is where all commands write their logs.
var logOutput io.Writer = os.Stderr

// dbFlags are the flags shared by all commands working on the database.
type dbFlags struct {
	path     *string
	logLevel *string
}

func flDB(fl *flag.FlagSet) dbFlags {
	return dbFlags{
		path:     fl.String("db", env("PAYOUTD_DB", "payoutd.db"), "Path to the database file."),
		logLevel: fl.String("log-level", env("PAYOUTD_LOG_LEVEL", "info"), "Logging level. One of debug, info, error or none."),
	}
}

// open returns the application using the database file. Returned function
// must be called to release the database.
func (f dbFlags) open() (*app.Application, func(), error) {
	logger, err := newLogger(logOutput, *f.logLevel)
	if err != nil {
		return nil, nil, err
	}
	db, err := store.OpenBoltStore(*f.path)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error("cannot close database", "err", err)
		}
	}
	return payoutd.Application(db, logger), closeDB, nil
}

func newLogger(w io.Writer, level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(w))
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}

// signerFlags are the flags describing who sends a message.
type signerFlags struct {
	signer  *string
	deposit *string
}

func flSigner(fl *flag.FlagSet, deposit string) signerFlags {
	return signerFlags{
		signer:  fl.String("signer", env("PAYOUTD_SIGNER", ""), "Account that signs the message."),
		deposit: fl.String("deposit", deposit, "Amount attached to the message, in the smallest unit."),
	}
}

func (f signerFlags) context() (ledger.Context, error) {
	signer := ledger.AccountID(*f.signer)
	if err := signer.Validate(); err != nil {
		return nil, errors.Wrap(err, "signer")
	}
	deposit, err := coin.ParseAmount(*f.deposit)
	if err != nil {
		return nil, errors.Wrap(err, "deposit")
	}
	ctx := ledger.WithSigner(context.Background(), signer)
	if !deposit.IsZero() {
		ctx = ledger.WithDeposit(ctx, deposit)
	}
	return ctx, nil
}

// flOptionalUint32 returns a flag that is nil unless set.
func flOptionalUint32(fl *flag.FlagSet, name, usage string) **uint32 {
	var v *uint32
	fl.Func(name, usage, func(s string) error {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return err
		}
		u := uint32(n)
		v = &u
		return nil
	})
	return &v
}

// flOptionalUint64 returns a flag that is nil unless set.
func flOptionalUint64(fl *flag.FlagSet, name, usage string) **uint64 {
	var v *uint64
	fl.Func(name, usage, func(s string) error {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return err
		}
		v = &n
		return nil
	})
	return &v
}

// deliver sends the message to the application and writes the result data
// to the output.
func deliver(out io.Writer, db dbFlags, sf signerFlags, path string, msg interface{}) error {
	ctx, err := sf.context()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	a, closeDB, err := db.open()
	if err != nil {
		return err
	}
	defer closeDB()

	res, err := a.Deliver(ctx, path, raw)
	if err != nil {
		return err
	}
	return writeJSON(out, res.Data)
}

// query runs the query and writes the result to the output.
func query(out io.Writer, db dbFlags, path string, req interface{}) error {
	raw, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	a, closeDB, err := db.open()
	if err != nil {
		return err
	}
	defer closeDB()

	res, err := a.Query(path, raw)
	if err != nil {
		return err
	}
	return writeJSON(out, res)
}

// errorMessage returns the error description presented to the user.
// Unless in debug mode, errors that are not registered and recovered panics
// are reported as internal errors without details.
func errorMessage(err error, debug bool) string {
	code, desc := errors.ABCIInfo(errors.Redact(err, debug), debug)
	return fmt.Sprintf("error %d: %s", code, desc)
}

func writeJSON(out io.Writer, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(out, string(data))
	return err
}
