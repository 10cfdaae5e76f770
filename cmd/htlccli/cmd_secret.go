package main

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/iov-one/htlc/x/escrow"
)

// secretSize is the length of a generated secret.
const secretSize = 32

type secretFile struct {
	Secret string `json:"secret"`
	Hash   string `json:"hash"`
}

func cmdGenSecret(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new random secret and print it together with its hash. The hash is
what an escrow is locked with. Keep the secret private until you claim.
`)
		fl.PrintDefaults()
	}
	var (
		saveFl = fl.String("save", "", "Optional path of a file the secret and the hash are saved to. The file must not exist.")
	)
	fl.Parse(args)

	secret := make([]byte, secretSize)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("cannot generate secret: %s", err)
	}
	sf := secretFile{
		Secret: hex.EncodeToString(secret),
		Hash:   hex.EncodeToString(escrow.Hash(secret)),
	}

	if *saveFl != "" {
		if _, err := os.Stat(*saveFl); !os.IsNotExist(err) {
			// Never overwrite a secret, it might still be needed to
			// claim an escrow.
			return fmt.Errorf("secret file %q already exists", *saveFl)
		}
		raw, err := json.MarshalIndent(sf, "", "\t")
		if err != nil {
			return fmt.Errorf("cannot serialize secret: %s", err)
		}
		if err := ioutil.WriteFile(*saveFl, raw, 0600); err != nil {
			return fmt.Errorf("cannot write secret file: %s", err)
		}
	}

	fmt.Fprintf(output, "secret: %s\nhash: %s\n", sf.Secret, sf.Hash)
	return nil
}

func cmdHash(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the hex encoded keccak-256 hash of given secret.
`)
		fl.PrintDefaults()
	}
	var (
		secretFl = flHex(fl, "secret", "", "Hex encoded secret.")
	)
	fl.Parse(args)

	if len(*secretFl) == 0 {
		flagDie("secret is required")
	}
	fmt.Fprintln(output, hex.EncodeToString(escrow.Hash(*secretFl)))
	return nil
}

func cmdVerify(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Check that given secret matches a hash. The hash is taken either from the
-hash flag or from an escrow of the local chain.

This command fails if the secret does not match.
`)
		fl.PrintDefaults()
	}
	var (
		secretFl = flHex(fl, "secret", "", "Hex encoded secret.")
		hashFl   = flHex(fl, "hash", "", "Hex encoded hash the secret is checked against.")
		escrowFl = flAddress(fl, "escrow", "", "Address of an escrow the secret is checked against.")
		chainFl  = flChain(fl)
	)
	fl.Parse(args)

	var ok bool
	switch {
	case len(*escrowFl) != 0:
		chain, closeChain, err := chainFl.open()
		if err != nil {
			return err
		}
		defer closeChain()
		if ok, err = chain.VerifySecret(*escrowFl, *secretFl); err != nil {
			return fmt.Errorf("cannot verify: %s", err)
		}
	case len(*hashFl) != 0:
		ok = bytes.Equal(escrow.Hash(*secretFl), *hashFl)
	default:
		flagDie("either hash or escrow is required")
	}

	if !ok {
		return fmt.Errorf("secret does not match")
	}
	fmt.Fprintln(output, "secret matches")
	return nil
}

// flagDie terminates the program when an invalid flag value was provided.
func flagDie(description string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, description, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(2)
}
