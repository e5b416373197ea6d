package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/app"
	"github.com/iov-one/timelock/store/iavl"
	"github.com/iov-one/timelock/x/escrow"
	"github.com/iov-one/timelock/x/sigs"
	"github.com/iov-one/timelock/x/token"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"
)

// shutdownTimeout is how long in-flight requests are given to finish.
const shutdownTimeout = 10 * time.Second

func cmdStart(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Open the ledger and serve the HTTP API until interrupted.

On the first start the genesis file is applied to the empty ledger.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", defaultHome(), "Home directory. You can use TIMELOCK_HOME environment variable to set it.")
	)
	fl.Parse(args)

	cfg, err := app.LoadConfig(*homeFl)
	if err != nil {
		return err
	}
	logger, err := newLogger(output, cfg.Log)
	if err != nil {
		return err
	}

	db, err := iavl.OpenCommitStore(cfg.DBDir(*homeFl), cfg.DB.Name, dbm.DBBackendType(cfg.DB.Backend), cfg.DB.CacheSize)
	if err != nil {
		return err
	}
	defer db.Close()

	cs := app.NewCommitStore(db)
	cs.OnCommit(func(id timelock.CommitID) {
		logger.Debug("committed", "version", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	})

	gen, err := app.LoadGenesis(filepath.Join(*homeFl, app.GenesisFile))
	if err != nil {
		return err
	}
	applied, err := app.InitGenesis(cs, gen, app.ChainInitializers(token.Initializer{}))
	if err != nil {
		return err
	}
	if applied {
		logger.Info("genesis applied", "chain_id", gen.ChainID)
	}

	tokens := token.NewController()
	ledger := &Ledger{
		ChainID: gen.ChainID,
		Escrow:  escrow.NewService(cs, escrow.NewTokenTransferer(tokens)),
		Tx:      cs,
		Tokens:  tokens,
		Sigs:    sigs.NewController(),
	}
	server := &http.Server{
		Addr:    cfg.HTTP,
		Handler: NewRouter(ledger, logger),
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)

	errc := make(chan error, 1)
	go func() {
		logger.Info("serving", "http", cfg.HTTP, "version", timelock.Version(), "height", cs.CommitInfo().Version)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("http server: %s", err)
	case sig := <-sigc:
		logger.Info("shutting down", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %s", err)
	}
	return nil
}

// newLogger returns a logger writing to out in the configured format and
// level.
func newLogger(out io.Writer, cfg app.LogConfig) (log.Logger, error) {
	var logger log.Logger
	if cfg.Format == "json" {
		logger = log.NewTMJSONLogger(log.NewSyncWriter(out))
	} else {
		logger = log.NewTMLogger(log.NewSyncWriter(out))
	}
	opt, err := log.AllowLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %s", err)
	}
	return log.NewFilter(logger, opt).With("module", "timelock"), nil
}
