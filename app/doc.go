/*
Package app is an in-process host ledger for escrows, factories and tokens.

The host serializes all calls. Each call runs in a cache wrap of the current
state: it either commits all its writes and records or none of them. Native
value attached to a call is moved from the caller to the callee before the
call body runs. Token sub-calls run in nested cache wraps, so that a failing
or panicking token ledger never leaves partial writes behind.

The state is kept in a CommitKVStore. Blocks are produced explicitly with
Tick, which advances the height and commits the state.
*/
package app
