package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/commands/server"
	"github.com/iov-one/barter/errors"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// demoAmount is the balance of the account created by GenInitOptions.
const demoAmount = 123456789

// GenInitOptions returns an app state with a single funded account for
// development. Arguments are the ticker, "AAA" by default, and the hex
// address of the account. Without an address a key is generated and its
// private part printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "AAA"
	if len(args) > 0 {
		ticker = args[0]
	}
	if !coin.IsCC(ticker) {
		return nil, errors.Wrapf(errors.ErrCurrency, "ticker %q", ticker)
	}

	var addr string
	if len(args) > 1 {
		addr = args[1]
	} else {
		a, key := server.GenerateCoinKey()
		addr = a.String()
		fmt.Printf("private key: %s\n", hex.EncodeToString(key.GetEd25519()))
	}

	type balance struct {
		Ticker string `json:"ticker"`
		Amount int64  `json:"amount"`
	}
	type account struct {
		Address string    `json:"address"`
		Coins   []balance `json:"coins"`
	}
	state := map[string][]account{
		"cash": {{Address: addr, Coins: []balance{{Ticker: ticker, Amount: demoAmount}}}},
	}
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp builds the application served by the start command.
func GenerateApp(home string, conf server.Config, logger log.Logger, reg prometheus.Registerer) (abci.Application, error) {
	a, err := Application("barterd", Stack(reg), TxDecoder, conf.DBFile(home), logger, conf.Debug)
	if err != nil {
		return nil, err
	}
	return a, nil
}
