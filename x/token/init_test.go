package token

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/store"
	"github.com/iov-one/htlc/weavetest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesis(t *testing.T) {
	Convey("Test initializer", t, func() {
		tok := weavetest.NewAddress()
		owner := weavetest.NewAddress()
		holder := weavetest.NewAddress()

		genesis := fmt.Sprintf(`
		{
			"token": [
				{
					"address": %q,
					"owner": %q,
					"name": "Genesis Token",
					"symbol": "GEN",
					"decimals": 9,
					"holders": [{"address": %q, "amount": 777}]
				}
			]
		}`, tok.String(), owner.String(), holder.String())
		var o htlc.Options
		So(json.Unmarshal([]byte(genesis), &o), ShouldBeNil)

		db := store.MemStore()
		var init Initializer
		So(init.FromGenesis(o, db), ShouldBeNil)

		ctrl := NewController()
		info, err := ctrl.Info(db, tok)
		So(err, ShouldBeNil)
		So(info.Symbol, ShouldEqual, "GEN")
		So(info.TotalSupply, ShouldEqual, uint64(777))

		bal, err := ctrl.BalanceOf(db, tok, holder)
		So(err, ShouldBeNil)
		So(bal, ShouldEqual, uint64(777))
	})
}
