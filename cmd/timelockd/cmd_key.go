package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/x/sigs"
	"golang.org/x/crypto/ed25519"
)

func defaultKeyPath() string {
	return env("TIMELOCK_PRIV_KEY", filepath.Join(os.Getenv("HOME"), ".timelockd.priv.key"))
}

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use TIMELOCK_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first to ensure we do not delete
		// such crucial data by an accident (bad command usage).
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("cannot generate ed25519 key: %s", err)
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(priv); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	return nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the hex and bech32 address associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use TIMELOCK_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	key, err := readPrivateKey(*keyPathFl)
	if err != nil {
		return err
	}

	addr := keyAddress(key)
	b32, err := addr.Bech32(bech32Prefix)
	if err != nil {
		return fmt.Errorf("cannot serialize to bech32: %s", err)
	}
	_, err = fmt.Fprintf(output, "%s\n%s\n", addr, b32)
	return err
}

// keyAddress returns the address controlled by given private key.
func keyAddress(key ed25519.PrivateKey) timelock.Address {
	return sigs.Address(key.Public().(ed25519.PublicKey))
}

// readPrivateKey loads the private key kept in given file.
func readPrivateKey(path string) (ed25519.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: %d", len(raw))
	}
	return ed25519.PrivateKey(raw), nil
}
