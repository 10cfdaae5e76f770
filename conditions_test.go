package htlc_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := htlc.Address(b)

		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%X", addr))
		So(addr.String(), ShouldEqual, strings.ToUpper(fmt.Sprintf("%x", addr)))
	})

	Convey("test hexademical condition printing", t, func() {
		cond := htlc.NewCondition("escrow", "inst", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldNotEqual, fmt.Sprintf("%X", cond))
		So(cond.String(), ShouldStartWith, "escrow/inst/")
	})

	Convey("nil address is printed as a placeholder", t, func() {
		So(htlc.Address(nil).String(), ShouldEqual, "(nil)")
	})
}

func TestAddressUnmarshalJSON(t *testing.T) {
	twenty := htlc.Address("twenty-bytes-address")
	bech, err := twenty.Bech32()
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr htlc.Address
	}{
		"default decoding": {
			json:     `"7477656e74792d62797465732d61646472657373"`,
			wantAddr: twenty,
		},
		"hex decoding": {
			json:     `"hex:7477656e74792d62797465732d61646472657373"`,
			wantAddr: twenty,
		},
		"bech32 decoding": {
			json:     `"bech32:` + bech + `"`,
			wantAddr: twenty,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: htlc.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"invalid hex length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a htlc.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestAddressMarshalJSONRoundTrip(t *testing.T) {
	addr := htlc.NewCondition("escrow", "inst", []byte{1, 2, 3}).Address()
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got htlc.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)
}

func TestConditionUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json          string
		wantErr       *errors.Error
		wantCondition htlc.Condition
	}{
		"default decoding": {
			json:          `"foo/bar/636f6e646974696f6e64617461"`,
			wantCondition: htlc.NewCondition("foo", "bar", []byte("conditiondata")),
		},
		"invalid condition format": {
			json:    `"foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"zero address": {
			json:          `""`,
			wantCondition: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got htlc.Condition
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !got.Equals(tc.wantCondition) {
				t.Fatalf("expected %q but got condition: %q", tc.wantCondition, got)
			}
		})
	}
}

func TestConditionMarshalJSON(t *testing.T) {
	cases := map[string]struct {
		source   htlc.Condition
		wantJson string
	}{
		"cond encoding": {
			source:   htlc.NewCondition("foo", "bar", []byte("conditiondata")),
			wantJson: `"foo/bar/636F6E646974696F6E64617461"`,
		},
		"nil encoding": {
			source:   nil,
			wantJson: `""`,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := json.Marshal(tc.source)
			require.NoError(t, err)
			assert.Equal(t, tc.wantJson, string(got))
		})
	}
}

func TestAddressValidate(t *testing.T) {
	assert.NoError(t, htlc.NewAddress([]byte("anything")).Validate())
	assert.Error(t, htlc.Address(nil).Validate())
	assert.Error(t, htlc.Address("short").Validate())
}
