// Command barterd runs the escrow chain as an ABCI application.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/cmd/barterd/app"
	"github.com/iov-one/barter/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

type command struct {
	help string
	run  func(home string, args []string) error
}

func commands(logger log.Logger) map[string]command {
	return map[string]command{
		"init": {
			help: "write the app state of the genesis file",
			run: func(home string, args []string) error {
				return server.InitCmd(app.GenInitOptions, logger, home, args)
			},
		},
		"validate": {
			help: "run the genesis initializers against genesis files",
			run: func(home string, args []string) error {
				if len(args) == 0 {
					args = []string{server.GenesisPath(home)}
				}
				return server.ValidateGenesis(app.Initializers(), args)
			},
		},
		"start": {
			help: "serve the application over abci",
			run: func(home string, args []string) error {
				return server.StartCmd(app.GenerateApp, logger, home, args)
			},
		},
		"version": {
			help: "print the version",
			run: func(string, []string) error {
				fmt.Println(barter.Version())
				return nil
			},
		},
	}
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "barter")
	cmds := commands(logger)

	home := flag.String("home", filepath.Join(os.ExpandEnv("$HOME"), ".barterd"), "directory to store files under")
	flag.Usage = func() { usage(cmds) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	cmd, ok := cmds[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		flag.Usage()
		os.Exit(2)
	}
	if err := cmd.run(*home, flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func usage(cmds map[string]command) {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "barterd: escrow ABCI application")
	fmt.Fprintln(out)
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-9s %s\n", name, cmds[name].help)
	}
	fmt.Fprintln(out)
	flag.PrintDefaults()
}
