package app

import (
	"context"
	"strings"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/bartertest"
	"github.com/iov-one/barter/bartertest/assert"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestBaseAppLifecycle(t *testing.T) {
	db, cleanup := bartertest.CommitKVStore(t)
	defer cleanup()

	qr := barter.NewQueryRouter()
	orm.RegisterQuery(qr)

	sa, err := NewStoreApp("test-app", db, qr, context.Background())
	if err != nil {
		t.Fatalf("cannot create store app: %s", err)
	}
	sa.WithInit(genesisInit{})

	r := NewRouter()
	r.Handle("test/write", &bartertest.Handler{
		WriteKey:   []byte("written"),
		WriteValue: []byte("yes"),
	})
	r.Handle("test/fail", &bartertest.Handler{
		CheckErr:   errors.ErrAmount,
		DeliverErr: errors.ErrAmount,
	})
	app := NewBaseApp(sa, pathDecoder, r)

	app.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain",
		AppStateBytes: []byte(`{"test": {"value": "hello"}}`),
	})
	assert.Equal(t, "test-chain", app.GetChainID())

	app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})

	cases := map[string]struct {
		path     string
		wantCode uint32
	}{
		"success":             {path: "test/write", wantCode: errors.SuccessABCICode},
		"handler failure":     {path: "test/fail", wantCode: errors.ErrAmount.ABCICode()},
		"path not registered": {path: "test/unknown", wantCode: errors.ErrNotFound.ABCICode()},
		"decoder panic":       {path: "panic", wantCode: errors.ErrPanic.ABCICode()},
		"decoder failure":     {path: "", wantCode: errors.ErrInput.ABCICode()},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			cres := app.CheckTx([]byte(tc.path))
			assert.Equal(t, tc.wantCode, cres.Code)
			if cres.Code != 0 && !strings.HasPrefix(cres.Log, "cannot check tx") {
				t.Fatalf("unexpected check log: %q", cres.Log)
			}
			dres := app.DeliverTx([]byte(tc.path))
			assert.Equal(t, tc.wantCode, dres.Code)
			if dres.Code != 0 && !strings.HasPrefix(dres.Log, "cannot deliver tx") {
				t.Fatalf("unexpected deliver log: %q", dres.Log)
			}
		})
	}

	app.EndBlock(abci.RequestEndBlock{Height: 1})
	commit := app.Commit()
	if len(commit.Data) == 0 {
		t.Fatal("empty app hash")
	}

	info := app.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, "test-app", info.Data)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)

	// Committed state is visible to queries.
	raw := NewABCIStore(app, "/")
	for key, want := range map[string]string{"written": "yes", "genesis": "hello"} {
		got, err := raw.Get([]byte(key))
		if err != nil {
			t.Fatalf("cannot get %q: %s", key, err)
		}
		assert.Equal(t, want, string(got))
	}
	if v, err := raw.Get([]byte("missing")); err != nil || v != nil {
		t.Fatalf("want no value, got %q, %v", v, err)
	}

	res := app.Query(abci.RequestQuery{Path: "/not-registered"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)
	_, err = NewABCIStore(app, "/not-registered").Get([]byte("written"))
	assert.IsErr(t, errors.ErrNotFound, err)

	// Genesis can be loaded only once.
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{
			ChainId:       "test-chain",
			AppStateBytes: []byte(`{}`),
		})
	})

	// Restarting from the same store restores the chain id and height.
	restarted, err := NewStoreApp("test-app", db, qr, context.Background())
	if err != nil {
		t.Fatalf("cannot restart: %s", err)
	}
	assert.Equal(t, "test-chain", restarted.GetChainID())
	height, _ := barter.GetHeight(restarted.BlockContext())
	assert.Equal(t, int64(1), height)
}

func TestInitChainValidation(t *testing.T) {
	cases := map[string]struct {
		chainID  string
		appState string
	}{
		"missing app state": {chainID: "test-chain", appState: ""},
		"invalid app state": {chainID: "test-chain", appState: "[not json"},
		"invalid chain id":  {chainID: "x", appState: "{}"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db, cleanup := bartertest.CommitKVStore(t)
			defer cleanup()
			sa, err := NewStoreApp("test-app", db, barter.NewQueryRouter(), context.Background())
			if err != nil {
				t.Fatalf("cannot create store app: %s", err)
			}
			assert.Panics(t, func() {
				sa.InitChain(abci.RequestInitChain{
					ChainId:       tc.chainID,
					AppStateBytes: []byte(tc.appState),
				})
			})
		})
	}
}

func TestJoinResults(t *testing.T) {
	models := []barter.Model{
		barter.Pair([]byte("a"), []byte("1")),
		barter.Pair([]byte("b"), []byte("2")),
	}
	keys, values := splitModels(models)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, keys.Results)
	got, err := JoinResults(keys, values)
	if err != nil {
		t.Fatalf("cannot join: %s", err)
	}
	assert.Equal(t, models, got)

	_, short := splitModels(models[:1])
	_, err = JoinResults(keys, short)
	assert.IsErr(t, errors.ErrState, err)
}

func TestSplitPath(t *testing.T) {
	cases := map[string]struct {
		path     string
		wantPath string
		wantMod  string
	}{
		"no modifier":   {path: "/wallets", wantPath: "/wallets"},
		"prefix":        {path: "/wallets?prefix", wantPath: "/wallets", wantMod: "prefix"},
		"nested":        {path: "/escrows/maker?prefix", wantPath: "/escrows/maker", wantMod: "prefix"},
		"empty":         {path: "", wantPath: ""},
		"only modifier": {path: "?x?y", wantPath: "", wantMod: "x?y"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			p, m := splitPath(tc.path)
			assert.Equal(t, tc.wantPath, p)
			assert.Equal(t, tc.wantMod, m)
		})
	}
}

// pathDecoder turns raw bytes into a transaction whose message path is
// the content of the bytes.
func pathDecoder(raw []byte) (barter.Tx, error) {
	switch s := string(raw); s {
	case "":
		return nil, errors.Wrap(errors.ErrInput, "empty transaction")
	case "panic":
		panic("decoder")
	default:
		return &bartertest.Tx{Msg: &bartertest.Msg{RoutePath: s}}, nil
	}
}

// genesisInit writes the "test" genesis value under the "genesis" key.
type genesisInit struct{}

func (genesisInit) FromGenesis(opts barter.Options, db barter.KVStore) error {
	var conf struct {
		Value string `json:"value"`
	}
	if err := opts.ReadOptions("test", &conf); err != nil {
		return err
	}
	return db.Set([]byte("genesis"), []byte(conf.Value))
}
