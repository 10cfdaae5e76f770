package token

import (
	"context"
	"testing"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/store"
	"github.com/iov-one/htlc/weavetest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTokenLedger(t *testing.T) {
	Convey("Given a token with initial supply", t, func() {
		db := store.MemStore()
		ctrl := NewController()
		var records htlc.RecordBuffer
		ctx := htlc.WithRecordSink(context.Background(), &records)

		tok := weavetest.NewAddress()
		owner := weavetest.NewAddress()
		alice := weavetest.NewAddress()
		bob := weavetest.NewAddress()

		err := ctrl.Create(ctx, db, tok, owner, &CreateParams{Name: "Test", Symbol: "TST", InitialSupply: 1000})
		So(err, ShouldBeNil)

		Convey("The owner holds the whole supply", func() {
			supply, err := ctrl.TotalSupply(db, tok)
			So(err, ShouldBeNil)
			So(supply, ShouldEqual, uint64(1000))

			bal, err := ctrl.BalanceOf(db, tok, owner)
			So(err, ShouldBeNil)
			So(bal, ShouldEqual, uint64(1000))

			So(records.Records(), ShouldResemble, []htlc.Record{
				TransferRecord{Token: tok, To: owner, Amount: 1000},
			})
		})

		Convey("A token cannot be created twice", func() {
			err := ctrl.Create(ctx, db, tok, owner, &CreateParams{})
			So(errors.ErrDuplicate.Is(err), ShouldBeTrue)
		})

		Convey("Transfer moves the balance", func() {
			So(ctrl.Transfer(ctx, db, tok, owner, alice, 300), ShouldBeNil)

			bal, _ := ctrl.BalanceOf(db, tok, owner)
			So(bal, ShouldEqual, uint64(700))
			bal, _ = ctrl.BalanceOf(db, tok, alice)
			So(bal, ShouldEqual, uint64(300))

			Convey("But not beyond the balance", func() {
				err := ctrl.Transfer(ctx, db, tok, alice, bob, 301)
				So(ErrInsufficientBalance.Is(err), ShouldBeTrue)
				bal, _ := ctrl.BalanceOf(db, tok, alice)
				So(bal, ShouldEqual, uint64(300))
			})

			Convey("A transfer to self keeps the balance", func() {
				So(ctrl.Transfer(ctx, db, tok, alice, alice, 100), ShouldBeNil)
				bal, _ := ctrl.BalanceOf(db, tok, alice)
				So(bal, ShouldEqual, uint64(300))
			})

			Convey("A zero transfer only emits a record", func() {
				records.Reset()
				So(ctrl.Transfer(ctx, db, tok, bob, alice, 0), ShouldBeNil)
				So(records.Records(), ShouldResemble, []htlc.Record{
					TransferRecord{Token: tok, From: bob, To: alice},
				})
			})
		})

		Convey("Transfer of an unknown token fails", func() {
			err := ctrl.Transfer(ctx, db, weavetest.NewAddress(), owner, alice, 1)
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		})

		Convey("With an allowance granted to alice", func() {
			So(ctrl.Approve(ctx, db, tok, owner, alice, 500), ShouldBeNil)

			allowed, err := ctrl.Allowance(db, tok, owner, alice)
			So(err, ShouldBeNil)
			So(allowed, ShouldEqual, uint64(500))

			Convey("Alice can spend part of it", func() {
				So(ctrl.TransferFrom(ctx, db, tok, alice, owner, bob, 200), ShouldBeNil)

				allowed, _ := ctrl.Allowance(db, tok, owner, alice)
				So(allowed, ShouldEqual, uint64(300))
				bal, _ := ctrl.BalanceOf(db, tok, bob)
				So(bal, ShouldEqual, uint64(200))
				bal, _ = ctrl.BalanceOf(db, tok, owner)
				So(bal, ShouldEqual, uint64(800))
			})

			Convey("Spending more than allowed fails", func() {
				err := ctrl.TransferFrom(ctx, db, tok, alice, owner, bob, 501)
				So(ErrInsufficientAllowance.Is(err), ShouldBeTrue)
			})

			Convey("Bob has no allowance", func() {
				err := ctrl.TransferFrom(ctx, db, tok, bob, owner, bob, 1)
				So(ErrInsufficientAllowance.Is(err), ShouldBeTrue)
			})

			Convey("Allowance is checked before the balance", func() {
				So(ctrl.Approve(ctx, db, tok, owner, alice, 5000), ShouldBeNil)
				err := ctrl.TransferFrom(ctx, db, tok, alice, owner, bob, 2000)
				So(ErrInsufficientBalance.Is(err), ShouldBeTrue)

				err = ctrl.TransferFrom(ctx, db, tok, bob, owner, bob, 2000)
				So(ErrInsufficientAllowance.Is(err), ShouldBeTrue)

				allowed, _ := ctrl.Allowance(db, tok, owner, alice)
				So(allowed, ShouldEqual, uint64(5000))
			})

			Convey("Approve replaces the allowance", func() {
				So(ctrl.Approve(ctx, db, tok, owner, alice, 7), ShouldBeNil)
				allowed, _ := ctrl.Allowance(db, tok, owner, alice)
				So(allowed, ShouldEqual, uint64(7))
			})
		})

		Convey("Only the owner can mint", func() {
			err := ctrl.Mint(ctx, db, tok, alice, alice, 10)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)

			So(ctrl.Mint(ctx, db, tok, owner, alice, 10), ShouldBeNil)
			bal, _ := ctrl.BalanceOf(db, tok, alice)
			So(bal, ShouldEqual, uint64(10))
			supply, _ := ctrl.TotalSupply(db, tok)
			So(supply, ShouldEqual, uint64(1010))
		})
	})
}

func TestTemplateConstruct(t *testing.T) {
	Convey("Token template", t, func() {
		db := store.MemStore()
		ctrl := NewController()
		tmpl := NewTemplate(ctrl)
		owner := weavetest.NewAddress()
		addr := weavetest.NewAddress()

		args, err := EncodeCreateParams(&CreateParams{Name: "Test", Symbol: "TST", Decimals: 6, InitialSupply: 42})
		So(err, ShouldBeNil)

		Convey("Requires a caller", func() {
			err := tmpl.Construct(context.Background(), db, addr, args, 0)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
		})

		Convey("Rejects value", func() {
			ctx := htlc.WithCaller(context.Background(), owner)
			err := tmpl.Construct(ctx, db, addr, args, 1)
			So(errors.ErrAmount.Is(err), ShouldBeTrue)
		})

		Convey("Creates a token owned by the caller", func() {
			ctx := htlc.WithCaller(context.Background(), owner)
			So(tmpl.Construct(ctx, db, addr, args, 0), ShouldBeNil)

			info, err := ctrl.Info(db, addr)
			So(err, ShouldBeNil)
			So(info.Owner, ShouldResemble, owner)
			So(info.Decimals, ShouldEqual, uint32(6))

			bal, err := ctrl.BalanceOf(db, addr, owner)
			So(err, ShouldBeNil)
			So(bal, ShouldEqual, uint64(42))
		})
	})
}
