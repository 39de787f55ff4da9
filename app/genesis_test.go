package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	good := filepath.Join(dir, "good.json")
	require.NoError(t, ioutil.WriteFile(good, []byte(`{
		"chain_id": "test-chain",
		"app_state": {"nft": {"tokens": []}}
	}`), 0600))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, ioutil.WriteFile(bad, []byte(`{"chain_id": 7}`), 0600))

	gen, err := LoadGenesis(good)
	require.NoError(t, err)
	assert.Equal(t, "test-chain", gen.ChainID)
	assert.Contains(t, gen.AppOptions, "nft")

	_, err = LoadGenesis(bad)
	assert.True(t, errors.ErrInput.Is(err))
	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.ErrInput.Is(err))
}

func TestChainInitializers(t *testing.T) {
	var calls []string
	record := func(name string, err error) ledger.Initializer {
		return initializerFunc(func(ledger.Options, store.KVStore) error {
			calls = append(calls, name)
			return err
		})
	}

	err := ChainInitializers(record("a", nil), record("b", nil)).FromGenesis(nil, store.MemStore())
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, calls)

	calls = nil
	err = ChainInitializers(record("a", errors.ErrInput), record("b", nil)).FromGenesis(nil, store.MemStore())
	assert.True(t, errors.ErrInput.Is(err))
	assert.Equal(t, []string{"a"}, calls)
}
