package app

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/commands/server"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/x/cash"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestGenInitOptions(t *testing.T) {
	addr := barter.NewCondition("test", "init", []byte{1}).Address()

	raw, err := GenInitOptions([]string{"BBB", addr.String()})
	require.NoError(t, err)

	var opts barter.Options
	require.NoError(t, json.Unmarshal(raw, &opts))

	// The generated state must be accepted by the genesis initializers.
	db := store.MemStore()
	require.NoError(t, Initializers().FromGenesis(opts, db))

	coins, err := cash.NewController(cash.NewBucket()).Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(demoAmount), coins.Balance("BBB"))

	_, err = GenInitOptions([]string{"not-a-ticker"})
	assert.True(t, errors.ErrCurrency.Is(err))

	// Without an address a new key is generated.
	raw, err = GenInitOptions(nil)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &opts))
	require.NoError(t, Initializers().FromGenesis(opts, store.MemStore()))
}

func TestGenerateAppPersists(t *testing.T) {
	home, err := ioutil.TempDir("", "barterd-")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	conf := server.DefaultConfig()
	application, err := GenerateApp(home, conf, log.NewNopLogger(), prometheus.NewRegistry())
	require.NoError(t, err)

	application.InitChain(abci.RequestInitChain{
		ChainId:       testChainID,
		AppStateBytes: []byte(`{"cash": []}`),
	})
	application.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})
	application.EndBlock(abci.RequestEndBlock{Height: 1})
	commit := application.Commit()

	info := application.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)
	assert.Equal(t, "barterd", info.Data)
}
