package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
)

func cmdSign(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign a request body. The JSON body is read from standard input and the signed
request, ready to be posted to the API, is written to standard output.

Unless provided with flags, the chain ID and the sequence of the signer are
fetched from the API.

  echo '{"amount": "10"}' | timelockd sign -action approve
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use TIMELOCK_PRIV_KEY environment variable to set it.")
		apiFl = fl.String("api", env("TIMELOCK_API", "http://localhost:8000"),
			"API address. You can use TIMELOCK_API environment variable to set it.")
		actionFl   = fl.String("action", actionLock, "Request kind, either "+actionLock+" or "+actionApprove+".")
		chainFl    = fl.String("chain-id", "", "Chain ID. Fetched from the API when empty.")
		sequenceFl = fl.Int64("sequence", -1, "Sequence of the signer. Fetched from the API when negative.")
	)
	fl.Parse(args)

	if *actionFl != actionLock && *actionFl != actionApprove {
		flagDie("unknown action %q", *actionFl)
	}
	key, err := readPrivateKey(*keyPathFl)
	if err != nil {
		return err
	}

	body, err := ioutil.ReadAll(input)
	if err != nil {
		return fmt.Errorf("cannot read request body: %s", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return errors.New("no input data")
	}

	chainID := *chainFl
	if chainID == "" {
		var info struct {
			ChainID string `json:"chain_id"`
		}
		if err := apiGet(*apiFl+"/info", &info); err != nil {
			return fmt.Errorf("cannot fetch chain ID: %s", err)
		}
		chainID = info.ChainID
	}
	seq := *sequenceFl
	if seq < 0 {
		var signer struct {
			Sequence int64 `json:"sequence"`
		}
		if err := apiGet(*apiFl+"/signers/"+keyAddress(key).String(), &signer); err != nil {
			return fmt.Errorf("cannot fetch sequence: %s", err)
		}
		seq = signer.Sequence
	}

	req, err := newSignedRequest(key, *actionFl, body, chainID, seq)
	if err != nil {
		return fmt.Errorf("cannot sign: %s", err)
	}
	raw, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("cannot serialize request: %s", err)
	}
	_, err = fmt.Fprintf(output, "%s\n", raw)
	return err
}

// apiGet fetches a JSON document from the API.
func apiGet(url string, dest interface{}) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("cannot fetch: %s", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected response: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("cannot decode response: %s", err)
	}
	return nil
}
