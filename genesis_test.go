package htlc

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/htlc/errors"
)

type countInit struct {
	called int
	err    error
}

func (c *countInit) FromGenesis(Options, KVStore) error {
	c.called++
	return c.err
}

func TestReadOptions(t *testing.T) {
	opts := Options{
		"name":   json.RawMessage(`"alice"`),
		"broken": json.RawMessage(`{`),
	}

	var name string
	if err := opts.ReadOptions("name", &name); err != nil {
		t.Fatalf("cannot read: %s", err)
	}
	if name != "alice" {
		t.Fatalf("unexpected value: %q", name)
	}

	missing := "untouched"
	if err := opts.ReadOptions("missing", &missing); err != nil {
		t.Fatalf("missing key must not fail: %s", err)
	}
	if missing != "untouched" {
		t.Fatalf("missing key modified the destination: %q", missing)
	}

	var broken map[string]string
	if err := opts.ReadOptions("broken", &broken); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestChainInitializers(t *testing.T) {
	a := &countInit{}
	b := &countInit{err: errors.ErrState}
	c := &countInit{}

	err := ChainInitializers(a, b, c).FromGenesis(Options{}, nil)
	if !errors.ErrState.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.called != 1 || b.called != 1 || c.called != 0 {
		t.Fatalf("unexpected calls: %d %d %d", a.called, b.called, c.called)
	}
}
