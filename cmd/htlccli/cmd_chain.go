package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/htlc/app"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize the local chain using a genesis file. Native balances are declared
under the "cash" key of the app state and tokens under the "token" key.

This command fails if the chain in the home directory is already initialized.
`)
		fl.PrintDefaults()
	}
	var (
		genesisFl = fl.String("genesis", "genesis.json", "Path to the genesis file.")
		chainFl   = flChain(fl)
	)
	fl.Parse(args)

	gen, err := app.LoadGenesis(*genesisFl)
	if err != nil {
		return err
	}
	chain, closeChain, err := chainFl.open()
	if err != nil {
		return err
	}
	defer closeChain()

	id, err := chain.InitChain(gen, app.DefaultInitializer())
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "chain: %s\nheight: %d\nhash: %X\n", gen.ChainID, gen.InitialHeight, id.Hash)
	return nil
}

func cmdTick(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Produce blocks. The height of the local chain advances by given number of
blocks and the state is committed.
`)
		fl.PrintDefaults()
	}
	var (
		blocksFl = fl.Uint64("blocks", 1, "Number of blocks to produce.")
		chainFl  = flChain(fl)
	)
	fl.Parse(args)

	chain, closeChain, err := chainFl.open()
	if err != nil {
		return err
	}
	defer closeChain()

	if _, err := chain.Tick(*blocksFl); err != nil {
		return err
	}
	height, err := chain.Height()
	if err != nil {
		return err
	}
	fmt.Fprintln(output, height)
	return nil
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the balance of an account. The native balance is printed unless a token
is given.
`)
		fl.PrintDefaults()
	}
	var (
		accountFl = flAddress(fl, "account", "", "Address of the account.")
		tokenFl   = flAddress(fl, "token", "", "Optional address of a token.")
		chainFl   = flChain(fl)
	)
	fl.Parse(args)

	if len(*accountFl) == 0 {
		flagDie("account is required")
	}
	chain, closeChain, err := chainFl.open()
	if err != nil {
		return err
	}
	defer closeChain()

	var amount uint64
	if len(*tokenFl) != 0 {
		amount, err = chain.TokenBalance(*tokenFl, *accountFl)
	} else {
		amount, err = chain.Balance(*accountFl)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(output, amount)
	return nil
}
