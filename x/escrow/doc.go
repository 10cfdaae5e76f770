/*
Package escrow implements a hashed timelock escrow.

An initiator locks value for a beneficiary. The value is released to the
beneficiary when somebody reveals a secret matching the keccak-256 commitment
before the expiry height. Once the expiry height is reached the value can only
be returned to the initiator. Whoever finalizes the escrow, by claim or by
refund, receives the resolver deposit.

Escrows lock either native value or tokens of an external token ledger. The
resolver deposit is always native.
*/
package escrow
