package ledger

import (
	"context"
	"os"
	"testing"

	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	// try logger with default
	newLogger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, newLogger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, newLogger, GetLogger(ctx))

	// signer - uninitialized
	_, ok := GetSigner(ctx)
	assert.False(t, ok)
	ctx = WithSigner(ctx, "alice")
	signer, ok := GetSigner(ctx)
	assert.True(t, ok)
	assert.Equal(t, AccountID("alice"), signer)
	// no reset
	assert.Panics(t, func() { WithSigner(ctx, "bob") })

	// deposit defaults to zero
	assert.True(t, GetDeposit(ctx).IsZero())
	ctx = WithDeposit(ctx, coin.NewAmount(1))
	assert.True(t, GetDeposit(ctx).Equals(coin.NewAmount(1)))
	assert.Panics(t, func() { WithDeposit(ctx, coin.NewAmount(2)) })

	// changing the info, should modify the logger, but not the signer
	ctx2 := WithLogInfo(ctx, "foo", "bar")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(ctx2))
	signer, _ = GetSigner(ctx2)
	assert.Equal(t, AccountID("alice"), signer)

	// chain id MUST be set exactly once
	assert.Panics(t, func() { GetChainID(ctx) })
	ctx2 = WithChainID(ctx, "my-chain")
	assert.Equal(t, "my-chain", GetChainID(ctx2))
	assert.Panics(t, func() { WithChainID(ctx2, "my-chain") })
}

func TestChainID(t *testing.T) {
	cases := []struct {
		chainID string
		valid   bool
	}{
		{"", false},
		{"foo", false},
		{"special", true},
		{"wish-YOU-88", true},
		{"invalid;;chars", false},
		{"this-chain-id-is-way-too-long", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.valid, IsValidChainID(tc.chainID), tc.chainID)
	}
}

func TestRequireOneYocto(t *testing.T) {
	bg := context.Background()

	assert.True(t, errors.ErrUnauthorized.Is(RequireOneYocto(bg)))
	assert.True(t, errors.ErrUnauthorized.Is(RequireOneYocto(WithDeposit(bg, coin.NewAmount(2)))))
	assert.NoError(t, RequireOneYocto(WithDeposit(bg, coin.NewAmount(1))))
}

func TestRequireSigner(t *testing.T) {
	bg := context.Background()

	_, err := RequireSigner(bg)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	signer, err := RequireSigner(WithSigner(bg, "alice"))
	assert.NoError(t, err)
	assert.Equal(t, AccountID("alice"), signer)
}
