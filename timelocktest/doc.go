// Package timelocktest provides helpers for tests of the ledger packages:
// identities, stores and contexts carrying the current time.
package timelocktest
