package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/app"
	"github.com/iov-one/timelock/x/token"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create the home directory with the default configuration and a genesis file.

The genesis configures the ledger token and optionally mints the whole supply
to a single faucet address. This command fails if the home directory already
contains a configuration.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl     = fl.String("home", defaultHome(), "Home directory. You can use TIMELOCK_HOME environment variable to set it.")
		chainFl    = fl.String("chain-id", "timelock-local", "Chain ID stored with the ledger state.")
		tickerFl   = fl.String("ticker", "TLK", "Ticker of the ledger token.")
		nameFl     = fl.String("name", "Timelock token", "Name of the ledger token.")
		decimalsFl = fl.Int("decimals", 6, "Number of fractional digits of the ledger token.")
		supplyFl   = fl.String("supply", "", "Amount minted to the faucet, for example 1000.5")
		faucetFl   timelock.Address
	)
	fl.Var(&faucetFl, "faucet", "Address receiving the initial supply.")
	fl.Parse(args)

	if *supplyFl != "" && len(faucetFl) == 0 {
		flagDie("-supply requires -faucet")
	}

	gen, err := newGenesis(*chainFl, *tickerFl, *nameFl, int32(*decimalsFl), faucetFl, *supplyFl)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*homeFl, 0700); err != nil {
		return fmt.Errorf("cannot create home directory: %s", err)
	}
	cfgPath := filepath.Join(*homeFl, app.ConfigFile)
	if _, err := os.Stat(cfgPath); !os.IsNotExist(err) {
		return fmt.Errorf("configuration %q already exists", cfgPath)
	}
	if err := app.WriteConfig(*homeFl, app.DefaultConfig()); err != nil {
		return err
	}
	if err := app.WriteGenesis(filepath.Join(*homeFl, app.GenesisFile), gen); err != nil {
		return err
	}
	_, err = fmt.Fprintf(output, "initialized %s\n", *homeFl)
	return err
}

// newGenesis returns the genesis of a ledger with a single token.
func newGenesis(chainID, ticker, name string, decimals int32, faucet timelock.Address, supply string) (*app.Genesis, error) {
	tg := token.Genesis{
		Ticker:   ticker,
		Name:     name,
		Decimals: decimals,
	}
	if supply != "" {
		amount, err := token.ParseAmount(supply, decimals)
		if err != nil {
			return nil, fmt.Errorf("invalid supply: %s", err)
		}
		tg.Balances = append(tg.Balances, token.GenesisBalance{Address: faucet, Amount: amount})
	}
	raw, err := json.Marshal(tg)
	if err != nil {
		return nil, fmt.Errorf("cannot serialize token genesis: %s", err)
	}
	gen := &app.Genesis{
		ChainID:    chainID,
		AppOptions: timelock.Options{token.GenesisKey: raw},
	}
	if !app.IsValidChainID(gen.ChainID) {
		return nil, fmt.Errorf("invalid chain id %q", chainID)
	}
	return gen, nil
}

// flagDie terminates the program when a command line flag was provided with
// an invalid value.
func flagDie(description string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, description, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(2)
}
