package server

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagChainID = "chain"
	flagForce   = "f"

	appStateKey = "app_state"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenerateCoinKey returns a new private key along with its address. You can
// give coins to this address and keep the key to access them.
func GenerateCoinKey() (barter.Address, *crypto.PrivateKey) {
	privKey := crypto.GenPrivKeyEd25519()
	return privKey.PublicKey().Address(), privKey
}

// GenesisPath returns the location of the genesis file that tendermint
// reads for given home directory.
func GenesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd writes the application state into the genesis file. If no genesis
// file exists, a new one is created with the given chain id. An existing
// app_state is only replaced when forced.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	var (
		chainID string
		force   bool
	)
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.StringVar(&chainID, flagChainID, fmt.Sprintf("barter-%s", cmn.RandStr(6)), "chain id of a newly created genesis file")
	initFlags.BoolVar(&force, flagForce, false, "overwrite an existing app_state")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	options, err := gen(initFlags.Args())
	if err != nil {
		return errors.Wrap(err, "generate app state")
	}

	genFile := GenesisPath(home)
	doc, err := loadGenesis(genFile)
	switch {
	case errors.ErrNotFound.Is(err):
		if !barter.IsValidChainID(chainID) {
			return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
		}
		id, _ := json.Marshal(chainID)
		doc = GenesisDoc{"chain_id": id}
		logger.Info("Creating genesis file", "path", genFile, "chain_id", chainID)
	case err != nil:
		return err
	default:
		if _, ok := doc[appStateKey]; ok && !force {
			return errors.Wrapf(errors.ErrDuplicate, "%s already has an app_state", genFile)
		}
		logger.Info("Updating genesis file", "path", genFile)
	}

	doc[appStateKey] = options
	return saveGenesis(genFile, doc)
}

// ValidateGenesis loads the app_state of every given genesis file into a
// throwaway store. The first file that does not initialize fails it.
func ValidateGenesis(ini barter.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		doc, err := loadGenesis(path)
		if err != nil {
			return err
		}
		var state barter.Options
		if raw, ok := doc[appStateKey]; ok {
			if err := json.Unmarshal(raw, &state); err != nil {
				return errors.Wrapf(errors.ErrInput, "%s app_state: %s", path, err)
			}
		}
		if err := ini.FromGenesis(state, store.MemStore()); err != nil {
			return errors.Wrapf(err, "%s", path)
		}
	}
	return nil
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func loadGenesis(filename string) (GenesisDoc, error) {
	bz, err := ioutil.ReadFile(filename)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrNotFound, filename)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot parse %s: %s", filename, err)
	}
	return doc, nil
}

func saveGenesis(filename string, doc GenesisDoc) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := ioutil.WriteFile(filename, out, 0600); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
