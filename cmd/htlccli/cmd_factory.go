package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/htlc/x/factory"
	"github.com/iov-one/htlc/x/token"
)

func cmdDeployFactory(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Deploy a new escrow factory and print its address.

With a salt the address is the same on every chain, no matter who deploys
the factory.
`)
		fl.PrintDefaults()
	}
	var (
		fromFl     = flAddress(fl, "from", "", "Address of the deploying account.")
		templateFl = flHex(fl, "template", "", "Optional hex encoded identifier of the escrow template. The default escrow template is used if not provided.")
		saltFl     = flHex(fl, "salt", "", "Optional hex encoded 32 byte salt.")
		chainFl    = flChain(fl)
	)
	fl.Parse(args)

	if len(*fromFl) == 0 {
		flagDie("from is required")
	}
	chain, closeChain, err := chainFl.open()
	if err != nil {
		return err
	}
	defer closeChain()

	addr, err := chain.DeployFactory(*fromFl, *templateFl, *saltFl)
	if err != nil {
		return err
	}
	if err := commit(chain); err != nil {
		return err
	}
	fmt.Fprintln(output, addr)
	return nil
}

func cmdDeployToken(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Deploy a new token and print its address. The deploying account owns the token
and receives the whole initial supply.
`)
		fl.PrintDefaults()
	}
	var (
		fromFl     = flAddress(fl, "from", "", "Address of the deploying account.")
		nameFl     = fl.String("name", "", "Name of the token.")
		symbolFl   = fl.String("symbol", "", "Ticker symbol of the token.")
		decimalsFl = fl.Uint("decimals", 0, "Number of decimals used to display amounts.")
		supplyFl   = fl.Uint64("supply", 0, "Initial supply.")
		saltFl     = flHex(fl, "salt", "", "Optional hex encoded 32 byte salt.")
		chainFl    = flChain(fl)
	)
	fl.Parse(args)

	if len(*fromFl) == 0 {
		flagDie("from is required")
	}
	chain, closeChain, err := chainFl.open()
	if err != nil {
		return err
	}
	defer closeChain()

	p := &token.CreateParams{
		Name:          *nameFl,
		Symbol:        *symbolFl,
		Decimals:      uint32(*decimalsFl),
		InitialSupply: *supplyFl,
	}
	addr, err := chain.DeployToken(*fromFl, p, *saltFl)
	if err != nil {
		return err
	}
	if err := commit(chain); err != nil {
		return err
	}
	fmt.Fprintln(output, addr)
	return nil
}

func cmdApprove(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Allow a spender to move tokens on behalf of the account. A factory must be
approved before it can create a token escrow.
`)
		fl.PrintDefaults()
	}
	var (
		fromFl    = flAddress(fl, "from", "", "Address of the token holder.")
		tokenFl   = flAddress(fl, "token", "", "Address of the token.")
		spenderFl = flAddress(fl, "spender", "", "Address of the spender, usually a factory.")
		amountFl  = fl.Uint64("amount", 0, "Allowance. Any previous allowance is replaced.")
		chainFl   = flChain(fl)
	)
	fl.Parse(args)

	chain, closeChain, err := chainFl.open()
	if err != nil {
		return err
	}
	defer closeChain()

	if err := chain.Approve(*fromFl, *tokenFl, *spenderFl, *amountFl); err != nil {
		return err
	}
	return commit(chain)
}

func cmdCreateNative(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a native escrow using a factory and print its address. The whole value
is moved into the escrow, everything above the resolver deposit is locked for
the beneficiary.
`)
		fl.PrintDefaults()
	}
	var (
		fromFl        = flAddress(fl, "from", "", "Address of the initiator.")
		factoryFl     = flAddress(fl, "factory", "", "Address of the factory.")
		beneficiaryFl = flAddress(fl, "beneficiary", "", "Address of the beneficiary.")
		hashFl        = flHex(fl, "hash", "", "Hex encoded hash of the secret.")
		expiryFl      = fl.Uint64("expiry", 0, "Number of blocks after which the escrow can be refunded.")
		depositFl     = fl.Uint64("deposit", 0, "Resolver deposit paid to whoever finalizes the escrow.")
		valueFl       = fl.Uint64("value", 0, "Native value sent with the call.")
		saltFl        = flHex(fl, "salt", "", "Optional hex encoded 32 byte salt.")
		chainFl       = flChain(fl)
	)
	fl.Parse(args)

	chain, closeChain, err := chainFl.open()
	if err != nil {
		return err
	}
	defer closeChain()

	req := factory.NativeRequest{
		Beneficiary:     *beneficiaryFl,
		HashedSecret:    *hashFl,
		ExpiryOffset:    *expiryFl,
		ResolverDeposit: *depositFl,
		Salt:            *saltFl,
	}
	addr, err := chain.CreateNativeEscrow(*fromFl, *factoryFl, req, *valueFl)
	if err != nil {
		return err
	}
	if err := commit(chain); err != nil {
		return err
	}
	fmt.Fprintln(output, addr)
	return nil
}

func cmdCreateToken(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a token escrow using a factory and print its address. The resolver
deposit is sent as native value. The factory moves the amount of tokens into
the escrow, so it must be approved as a spender first.
`)
		fl.PrintDefaults()
	}
	var (
		fromFl        = flAddress(fl, "from", "", "Address of the initiator.")
		factoryFl     = flAddress(fl, "factory", "", "Address of the factory.")
		tokenFl       = flAddress(fl, "token", "", "Address of the token.")
		amountFl      = fl.Uint64("amount", 0, "Amount of tokens to lock.")
		beneficiaryFl = flAddress(fl, "beneficiary", "", "Address of the beneficiary.")
		hashFl        = flHex(fl, "hash", "", "Hex encoded hash of the secret.")
		expiryFl      = fl.Uint64("expiry", 0, "Number of blocks after which the escrow can be refunded.")
		depositFl     = fl.Uint64("deposit", 0, "Resolver deposit paid to whoever finalizes the escrow.")
		saltFl        = flHex(fl, "salt", "", "Optional hex encoded 32 byte salt.")
		chainFl       = flChain(fl)
	)
	fl.Parse(args)

	chain, closeChain, err := chainFl.open()
	if err != nil {
		return err
	}
	defer closeChain()

	req := factory.TokenRequest{
		Token:           *tokenFl,
		Amount:          *amountFl,
		Beneficiary:     *beneficiaryFl,
		HashedSecret:    *hashFl,
		ExpiryOffset:    *expiryFl,
		ResolverDeposit: *depositFl,
		Salt:            *saltFl,
	}
	addr, err := chain.CreateTokenEscrow(*fromFl, *factoryFl, req, *depositFl)
	if err != nil {
		return err
	}
	if err := commit(chain); err != nil {
		return err
	}
	fmt.Fprintln(output, addr)
	return nil
}
