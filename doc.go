/*
Package timelock defines the common interfaces and values shared by the
packages of the timelock ledger: storage abstractions, identities, time and
the context helpers used to pass the current time and logger down to the
escrow logic.

The ledger is a custodial escrow. A creator locks an amount of a token for a
beneficiary until a given moment. Once that moment has passed anybody can
trigger the withdrawal that pays the beneficiary. See package x/escrow for the
state machine and package x/token for the reference asset implementation.

We pass context through context.Context between the service layer and the
escrow controller. There should exist two functions for every XYZ of type T
that we want to support in Context:

  WithXYZ(Context, T) Context
  XYZ(Context) (val T, ok bool)
*/
package timelock
