/*
Package token implements a fungible token ledger.

Each token lives at its own address and keeps balances, allowances, an owner
and the total supply. The ledger exposes balance_of, allowance, approve,
transfer, transfer_from and an owner only mint. It is a reference
implementation of the token rail used by escrows. Escrows only depend on the
Transfer and TransferFrom operations.
*/
package token
