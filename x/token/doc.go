/*
Package token implements the fungible asset held by the escrow.

There is no logic in the token, except that no balance may go below zero and
a spender can only move what the owner allowed. Balances and allowances are
kept in the ledger store, so every movement commits or rolls back together
with the operation that caused it.
*/
package token
