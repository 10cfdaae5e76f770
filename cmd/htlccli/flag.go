package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/htlc"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *htlc.Address {
	var a htlc.Address
	if defaultVal != "" {
		var err error
		a, err = htlc.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q htlc.Address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

// flHex returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flHex(fl *flag.FlagSet, name, defaultVal, usage string) *[]byte {
	var b flagbyte
	if defaultVal != "" {
		if err := b.Set(defaultVal); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q hex encoded flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&b, name, usage)
	return (*[]byte)(&b)
}

type flagbyte []byte

func (b flagbyte) String() string {
	return hex.EncodeToString(b)
}

func (b *flagbyte) Set(raw string) error {
	val, err := hex.DecodeString(raw)
	if err != nil {
		return err
	}
	*b = val
	return nil
}

// chainFlags are the flags shared by all commands operating on the local
// chain.
type chainFlags struct {
	home     *string
	logLevel *string
}

func flChain(fl *flag.FlagSet) chainFlags {
	return chainFlags{
		home: fl.String("home", env("HTLCCLI_HOME", filepath.Join(os.Getenv("HOME"), ".htlccli")),
			"Directory the chain state is kept in. You can use HTLCCLI_HOME environment variable to set it."),
		logLevel: fl.String("log", env("HTLCCLI_LOG", "error"),
			"Log level, one of debug, info, error or none. You can use HTLCCLI_LOG environment variable to set it."),
	}
}
