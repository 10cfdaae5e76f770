/*
Package cash keeps the native balances of the host ledger accounts.

There is no logic in the native currency, except that the balance of any
account may not go below zero or overflow. Attached call value and native
escrow payments are both moved by this package.
*/
package cash
