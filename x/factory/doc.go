/*
Package factory instantiates escrows.

A factory holds the identifier of the escrow template it deploys. It checks
the economic parameters of a new escrow, asks the host ledger to instantiate
it and, for token escrows, pulls the principal from the caller into the new
escrow using the allowance the caller granted to the factory. Either all of
it happens or nothing does.
*/
package factory
