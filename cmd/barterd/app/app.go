/*
Package app assembles the barterd application: signature checks and
the cash and escrow extensions on top of an iavl store.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/app"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
	"github.com/iov-one/barter/store/iavl"
	"github.com/iov-one/barter/x"
	"github.com/iov-one/barter/x/cash"
	"github.com/iov-one/barter/x/escrow"
	"github.com/iov-one/barter/x/sigs"
	"github.com/iov-one/barter/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

const metricsNamespace = "barter"

// Stack is the handler of every transaction: the decorators in front of
// the cash and escrow routes. Metrics are registered with reg.
func Stack(reg prometheus.Registerer) barter.Handler {
	decorators := app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewMetrics(metricsNamespace, reg),
		utils.NewActionTagger(),
		// A failed check leaves no trace in the mempool state.
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// Below the signature check, so a failed deliver still uses up
		// the sequence of its signers.
		utils.NewSavepoint().OnDeliver(),
	)

	auth := x.ChainAuth(sigs.Authenticate{})
	bank := cash.NewController(cash.NewBucket())
	r := app.NewRouter()
	cash.RegisterRoutes(r, auth, bank)
	escrow.RegisterRoutes(r, auth, bank)

	return decorators.WithHandler(r)
}

// queries serves "/", "/wallets", "/vaults", "/auth", "/escrows" and
// "/escrows/maker".
func queries() barter.QueryRouter {
	qr := barter.NewQueryRouter()
	qr.RegisterAll(
		orm.RegisterQuery,
		cash.RegisterQuery,
		sigs.RegisterQuery,
		escrow.RegisterQuery,
	)
	return qr
}

// Initializers load the genesis app state.
func Initializers() barter.Initializer {
	return barter.ChainInitializers(cash.Initializer{})
}

// Application runs h over the store at dbPath. An empty path keeps
// everything in memory.
func Application(name string, h barter.Handler, decoder barter.TxDecoder,
	dbPath string, logger log.Logger, debug bool) (app.BaseApp, error) {
	kv, err := openStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	s, err := app.NewStoreApp(name, kv, queries(), context.Background())
	if err != nil {
		return app.BaseApp{}, err
	}
	s = s.WithInit(Initializers()).WithLogger(logger).WithDebug(debug)
	return app.NewBaseApp(s, decoder, h), nil
}

func openStore(dbPath string) (barter.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %s", dbPath)
	}
	// The store adds its own ".db" suffix.
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path))
}
