package app

import (
	"encoding/json"
	"io/ioutil"
	"regexp"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// IsValidChainID is the RegExp to ensure valid chain IDs
var IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString

// Genesis file format
type Genesis struct {
	ChainID    string           `json:"chain_id"`
	AppOptions timelock.Options `json:"app_options"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "loading genesis file")
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrap(errors.ErrInput, "unmarshaling genesis file: "+err.Error())
	}
	if !IsValidChainID(gen.ChainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", gen.ChainID)
	}
	return &gen, nil
}

// WriteGenesis stores the genesis as indented JSON.
func WriteGenesis(filePath string, gen *Genesis) error {
	raw, err := json.MarshalIndent(gen, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serialize genesis")
	}
	if err := ioutil.WriteFile(filePath, raw, 0600); err != nil {
		return errors.Wrap(err, "write genesis file")
	}
	return nil
}

//------ init state -----

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...timelock.Initializer) timelock.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []timelock.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts timelock.Options, kv timelock.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

// InitGenesis applies the genesis to the store in a single transaction. A
// store that was already initialized with the same chain id is left
// untouched, one initialized with another chain id is an error.
// It returns true if the genesis was applied.
func InitGenesis(cs *CommitStore, gen *Genesis, init timelock.Initializer) (bool, error) {
	applied := false
	err := cs.Update(func(db timelock.KVStore) error {
		loaded, err := genesisLoaded(db)
		if err != nil {
			return err
		}
		switch loaded {
		case "":
		case gen.ChainID:
			return nil
		default:
			return errors.Wrapf(errors.ErrState, "store initialized for chain %q", loaded)
		}
		if err := saveGenesisMarker(db, gen.ChainID); err != nil {
			return err
		}
		if err := init.FromGenesis(gen.AppOptions, db); err != nil {
			return errors.Wrap(err, "genesis")
		}
		applied = true
		return nil
	})
	return applied, err
}
