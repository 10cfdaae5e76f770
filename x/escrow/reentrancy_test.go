package escrow

import (
	"context"
	"testing"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/store"
	"github.com/iov-one/htlc/weavetest"
	"github.com/iov-one/htlc/weavetest/assert"
	"github.com/iov-one/htlc/x/cash"
)

// hostileLedger is a token ledger that calls back into the escrow while it
// is being paid. It credits the recipient on a plain counter.
type hostileLedger struct {
	escrow   *Controller
	secret   []byte
	paid     map[string]uint64
	reenters []error
}

func (l *hostileLedger) Transfer(ctx context.Context, db htlc.KVStore, token, from, to htlc.Address, amount uint64) error {
	if len(l.reenters) == 0 {
		l.reenters = append(l.reenters,
			l.escrow.Claim(ctx, db, from, l.secret),
			l.escrow.Refund(ctx, db, from),
		)
	}
	l.paid[to.String()] += amount
	return nil
}

func (l *hostileLedger) TransferFrom(ctx context.Context, db htlc.KVStore, token, spender, from, to htlc.Address, amount uint64) error {
	l.paid[to.String()] += amount
	return nil
}

func TestReentrantSettlementIsRejected(t *testing.T) {
	db := store.MemStore()
	cashCtrl := cash.NewController(cash.NewBucket())
	ledger := &hostileLedger{secret: secret, paid: make(map[string]uint64)}
	ctrl := NewController(cashLedger{ctrl: cashCtrl}, ledger)
	ledger.escrow = ctrl

	initiator := weavetest.NewAddress()
	beneficiary := weavetest.NewAddress()
	resolver := weavetest.NewAddress()
	addr := weavetest.NewAddress()

	assert.Nil(t, cashCtrl.IssueCoins(db, addr, 10))
	p := &Params{
		Beneficiary:     beneficiary,
		HashedSecret:    hashed,
		ExpiryOffset:    100,
		ResolverDeposit: 10,
		AssetKind:       AssetToken,
		Token:           weavetest.NewAddress(),
		Amount:          500,
	}
	_, err := ctrl.Create(callCtx(1, initiator, nil), db, addr, p, 10)
	assert.Nil(t, err)

	assert.Nil(t, ctrl.Claim(callCtx(2, resolver, nil), db, addr, secret))

	assert.Equal(t, 2, len(ledger.reenters))
	assert.IsErr(t, ErrAlreadyFinalized, ledger.reenters[0])
	assert.IsErr(t, ErrAlreadyFinalized, ledger.reenters[1])

	// Settlement happened exactly once.
	assert.Equal(t, map[string]uint64{beneficiary.String(): 500}, ledger.paid)
	bal, err := cashCtrl.Balance(db, resolver)
	assert.Nil(t, err)
	assert.Equal(t, uint64(10), bal)

	e, err := ctrl.Escrow(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, true, e.Claimed)
	assert.Equal(t, false, e.Refunded)
}
