package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/app"
	"github.com/iov-one/htlc/store/iavl"
	"github.com/tendermint/tendermint/libs/log"
)

// dbName is the name of the database kept in the home directory.
const dbName = "htlc"

// newLogger returns a logger writing to w that drops entries below given
// level.
func newLogger(w io.Writer, level string) (log.Logger, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", err)
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w)).With("module", "htlccli")
	return log.NewFilter(logger, opt), nil
}

// open loads the chain from the home directory. The returned function must be
// called to release the database.
func (c chainFlags) open() (*app.Chain, func(), error) {
	logger, err := newLogger(os.Stderr, *c.logLevel)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(*c.home, 0700); err != nil {
		return nil, nil, fmt.Errorf("cannot create home directory: %s", err)
	}
	store := iavl.NewCommitStore(*c.home, dbName)
	return app.NewChain(store, logger), store.Close, nil
}

// commit persists the state of a successful call. The local chain has no
// block producer, so every state changing command closes a version.
func commit(chain *app.Chain) error {
	if _, err := chain.Commit(); err != nil {
		return fmt.Errorf("cannot commit: %s", err)
	}
	return nil
}

type recordOutput struct {
	Type   string      `json:"type"`
	Record htlc.Record `json:"record"`
}

// writeRecords writes each record as a single line of JSON.
func writeRecords(w io.Writer, records []htlc.Record) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(recordOutput{Type: r.RecordType(), Record: r}); err != nil {
			return fmt.Errorf("cannot encode record: %s", err)
		}
	}
	return nil
}
