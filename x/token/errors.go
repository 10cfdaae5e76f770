package token

import (
	"github.com/iov-one/htlc/errors"
)

// Error codes
// x/token reserves 1100 ~ 1199.

var (
	ErrInsufficientBalance   = errors.Register(1100, "insufficient balance")
	ErrInsufficientAllowance = errors.Register(1101, "insufficient allowance")
)
