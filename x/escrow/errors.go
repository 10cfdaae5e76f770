package escrow

import (
	"github.com/iov-one/htlc/errors"
)

// Error codes
// x/escrow reserves 1000 ~ 1099.

var (
	ErrAlreadyFinalized     = errors.Register(1000, "escrow already finalized")
	ErrNotExpired           = errors.Register(1001, "escrow not expired")
	ErrBadSecret            = errors.Register(1002, "secret does not match")
	ErrNativeTransferFailed = errors.Register(1003, "native transfer failed")
	ErrTokenTransferFailed  = errors.Register(1004, "token transfer failed")
)
