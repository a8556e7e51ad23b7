package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp is the storage side of the ABCI application: genesis, block
// boundaries, commits and queries. BaseApp runs transactions on top of
// it.
//
// Tendermint cannot be told that Info, InitChain or Commit failed, so
// those panic instead.
type StoreApp struct {
	name    string
	state   *state
	init    barter.Initializer
	queries barter.QueryRouter
	logger  log.Logger
	debug   bool

	// chainID is empty until genesis is loaded.
	chainID string

	// appCtx lives as long as the application. Every BeginBlock derives
	// blockCtx from it.
	appCtx   barter.Context
	blockCtx barter.Context
}

// NewStoreApp loads the latest committed version of db. A chain id
// written by an earlier genesis is restored.
func NewStoreApp(name string, db barter.CommitKVStore, queries barter.QueryRouter, ctx barter.Context) (*StoreApp, error) {
	st, err := loadState(db)
	if err != nil {
		return nil, err
	}
	chainID, err := st.chainID()
	if err != nil {
		return nil, err
	}
	latest, err := st.latest()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}

	s := &StoreApp{
		name:    name,
		state:   st,
		queries: queries,
		chainID: chainID,
		appCtx:  ctx,
	}
	if chainID != "" {
		s.appCtx = barter.WithChainID(s.appCtx, chainID)
	}
	s.blockCtx = barter.WithHeight(s.appCtx, latest.Version)
	return s.WithLogger(log.NewNopLogger()), nil
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets the initializer that loads the genesis app_state.
func (s *StoreApp) WithInit(init barter.Initializer) *StoreApp {
	s.init = init
	return s
}

// WithDebug makes failed responses carry the full error with its stack
// trace.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// WithLogger sets the logger used by the application and handed to
// handlers through the context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.appCtx = barter.WithLogger(s.appCtx, logger)
	s.blockCtx = barter.WithLogger(s.blockCtx, logger)
	return s
}

// BlockContext carries the chain id, logger, header and height of the
// current block.
func (s *StoreApp) BlockContext() barter.Context {
	return s.blockCtx
}

func (s *StoreApp) DeliverStore() barter.CacheableKVStore {
	return s.state.deliver
}

func (s *StoreApp) CheckStore() barter.CacheableKVStore {
	return s.state.check
}

// Info reports the last committed height and app hash, so tendermint
// knows which blocks to replay.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	latest, err := s.state.latest()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", latest.Version, "hash", fmt.Sprintf("%X", latest.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          barter.Version(),
		LastBlockHeight:  latest.Version,
		LastBlockAppHash: latest.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// InitChain stores the chain id and loads the genesis app_state through
// the initializer. It succeeds once in the life of a chain.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (s *StoreApp) loadGenesis(chainID string, appState []byte) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %s", s.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis")
	}
	var opts barter.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}
	if err := s.state.setChainID(chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.appCtx = barter.WithChainID(s.appCtx, chainID)
	if s.init == nil {
		return nil
	}
	return s.init.FromGenesis(opts, s.state.deliver)
}

func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := barter.WithHeader(s.appCtx, req.Header)
	s.blockCtx = barter.WithHeight(ctx, req.Header.GetHeight())
	return abci.ResponseBeginBlock{}
}

// EndBlock never changes the validator set.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.state.commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// Query reads the last committed state. The path names a registered
// bucket or index, "/escrows" or "/escrows/maker", optionally followed by
// "?prefix". Key and Value of the response are ResultSets of equal
// length.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(req.Path)
	h := s.queries.Handler(path)
	if h == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "query path: %s", req.Path), s.debug)
	}
	latest, err := s.state.latest()
	if err != nil {
		return queryError(err, s.debug)
	}

	db := s.state.committed.CacheWrap()
	defer db.Discard()
	models, err := h.Query(db, mod, req.Data)
	if err != nil {
		return queryError(err, s.debug)
	}

	keys, values := splitModels(models)
	res := abci.ResponseQuery{Height: latest.Version}
	if res.Key, err = barter.Marshal(keys); err != nil {
		return queryError(err, s.debug)
	}
	if res.Value, err = barter.Marshal(values); err != nil {
		return queryError(err, s.debug)
	}
	return res
}

// splitPath separates the query modifier given after the first "?".
func splitPath(full string) (path, mod string) {
	if i := strings.Index(full, "?"); i >= 0 {
		return full[:i], full[i+1:]
	}
	return full, ""
}
