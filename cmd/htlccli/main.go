package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/htlc"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// When a cmd function is called it is given stdin, stdout and command line
// arguments except the program name and this command name. It is the
// responsibility of the command function to parse the arguments. Use
// os.Stderr to write error messages.
//
// Secret commands work without any state. All other commands operate on a
// local chain kept in the home directory. Each state changing command
// commits its result, so that commands can be chained in a shell script:
//
//   $ htlccli init -genesis genesis.json
//   $ FACTORY=$(htlccli deploy-factory -from $ALICE)
//   $ htlccli create-native -from $ALICE -factory $FACTORY \
//       -beneficiary $BOB -hash $HASH -expiry 100 -deposit 10 -value 110
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"approve":        cmdApprove,
	"balance":        cmdBalance,
	"claim":          cmdClaim,
	"create-native":  cmdCreateNative,
	"create-token":   cmdCreateToken,
	"deploy-factory": cmdDeployFactory,
	"deploy-token":   cmdDeployToken,
	"gen-secret":     cmdGenSecret,
	"hash":           cmdHash,
	"info":           cmdInfo,
	"init":           cmdInit,
	"refund":         cmdRefund,
	"tick":           cmdTick,
	"verify":         cmdVerify,
	"version":        cmdVersion,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for hashed timelock escrows.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	fmt.Fprintln(out, htlc.Version())
	return nil
}
