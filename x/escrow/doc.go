/*
Package escrow implements a custodial timelock escrow.

A creator locks an amount of the token for a beneficiary until a given time.
The funds are held by the custody address of the escrow. Once the lock time
has passed, anybody can trigger the withdrawal that pays the full amount to
the beneficiary. There is no partial withdrawal and a deposit can be neither
cancelled nor modified.

Every deposit gets an id from a single global sequence starting at 1. The
beneficiary index keeps, for each beneficiary, the ids of all deposits ever
created for it, including withdrawn ones. Every successful operation appends
an event to the audit trail.

A withdrawn deposit is marked before the funds leave the custody, so that a
second withdrawal of the same deposit, even one triggered while the first one
is still transferring funds, fails with ErrNotFound.
*/
package escrow
