/*
Package sigs authenticates requests signed with ed25519 keys.

Every signer has a sequence number kept in the ledger store. A signature is
only accepted for the current sequence of its signer, after which the
sequence is incremented, so that a signed request cannot be replayed.
*/
package sigs
