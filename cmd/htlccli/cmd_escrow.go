package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
)

func cmdInfo(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the state of an escrow together with the current height, as JSON.
`)
		fl.PrintDefaults()
	}
	var (
		escrowFl  = flAddress(fl, "escrow", "", "Address of the escrow.")
		factoryFl = flAddress(fl, "factory", "", "Address of a factory. Its most recent escrow is used if no escrow is given.")
		chainFl   = flChain(fl)
	)
	fl.Parse(args)

	chain, closeChain, err := chainFl.open()
	if err != nil {
		return err
	}
	defer closeChain()

	addr := *escrowFl
	if len(addr) == 0 {
		if len(*factoryFl) == 0 {
			flagDie("either escrow or factory is required")
		}
		if addr, err = chain.LastEscrow(*factoryFl); err != nil {
			return err
		}
	}
	info, err := chain.EscrowInfo(addr)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(info, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(raw))
	return err
}

func cmdClaim(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Claim an escrow by revealing the secret. The locked amount goes to the
beneficiary and the resolver deposit to the claiming account. Emitted records
are printed as JSON, one per line.
`)
		fl.PrintDefaults()
	}
	var (
		fromFl   = flAddress(fl, "from", "", "Address of the claiming account.")
		escrowFl = flAddress(fl, "escrow", "", "Address of the escrow.")
		secretFl = flHex(fl, "secret", "", "Hex encoded secret.")
		chainFl  = flChain(fl)
	)
	fl.Parse(args)

	chain, closeChain, err := chainFl.open()
	if err != nil {
		return err
	}
	defer closeChain()

	records, err := chain.Claim(*fromFl, *escrowFl, *secretFl)
	if err != nil {
		return err
	}
	if err := commit(chain); err != nil {
		return err
	}
	return writeRecords(output, records)
}

func cmdRefund(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Refund an expired escrow. The locked amount goes back to the initiator and the
resolver deposit to the refunding account. Emitted records are printed as
JSON, one per line.
`)
		fl.PrintDefaults()
	}
	var (
		fromFl   = flAddress(fl, "from", "", "Address of the refunding account.")
		escrowFl = flAddress(fl, "escrow", "", "Address of the escrow.")
		chainFl  = flChain(fl)
	)
	fl.Parse(args)

	chain, closeChain, err := chainFl.open()
	if err != nil {
		return err
	}
	defer closeChain()

	records, err := chain.Refund(*fromFl, *escrowFl)
	if err != nil {
		return err
	}
	if err := commit(chain); err != nil {
		return err
	}
	return writeRecords(output, records)
}
