// Command mixerctl is a thin command-line driver over the mixer client
// stack (wallet, vault, and driver façade). Each invocation wires up a
// fresh in-memory mixer state and wallet, then runs one deposit/withdraw
// cycle end to end, printing the resolved account and the outcome of each
// step. It exists to exercise driver.Driver the way a GUI shell would,
// not as a production wallet: nothing here is persisted to disk between
// runs.
//
// Usage:
//
//	mixerctl [flags]
//
// Flags:
//
//	--password        vault password for the account's notes (default: "")
//	--amount          number of denominations to deposit and withdraw (default: 1)
//	--slot            starting vault slot for newly drawn notes (default: 0)
//	--import-envelope account envelope to import instead of creating a new account
//	--skip-withdraw   deposit only, leave the notes mixing (default: false)
package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/dan-sobolev-varathon/zk-stark-mixer/core/types"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/driver"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/mixer"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/wallet"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/zkvm"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

type cliConfig struct {
	password       string
	amount         uint64
	slot           uint64
	importEnvelope string
	skipWithdraw   bool
}

func defaultConfig() cliConfig {
	return cliConfig{amount: 1}
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	cfg, exit, code := parseFlags(args)
	if exit {
		return code
	}

	imageID := zkvm.ImageID{}
	executor := zkvm.NewMockExecutor(imageID)
	state := mixer.New(imageID, executor)
	vault := wallet.NewVault()
	w := wallet.New(vault, state, executor, imageID)
	d := driver.New(w, vault)

	var account types.Account
	if cfg.importEnvelope != "" {
		acct, errMsg := d.ImportAccountJSON(cfg.importEnvelope, cfg.password)
		if errMsg != "" {
			fmt.Fprintf(os.Stderr, "Error: import-account: %s\n", errMsg)
			return 1
		}
		account = acct
		fmt.Printf("imported account: %s\n", account.Hex())
	} else {
		acct, errMsg := d.CreateNewAccount()
		if errMsg != "" {
			fmt.Fprintf(os.Stderr, "Error: new-account: %s\n", errMsg)
			return 1
		}
		account = acct
		fmt.Printf("created account: %s\n", account.Hex())
	}

	amount := new(big.Int).Mul(mixer.Denomination, new(big.Int).SetUint64(cfg.amount))

	slots, errMsg := d.Deposit(account, amount, cfg.slot, cfg.password)
	if errMsg != "" {
		fmt.Fprintf(os.Stderr, "Error: deposit: %s\n", errMsg)
		return 1
	}
	fmt.Printf("deposited %d note(s) into slots %v\n", cfg.amount, slots)

	if cfg.skipWithdraw {
		fmt.Println("skip-withdraw set: notes left mixing")
		return 0
	}

	if errMsg := d.Withdraw(account, amount); errMsg != "" {
		fmt.Fprintf(os.Stderr, "Error: withdraw: %s\n", errMsg)
		return 1
	}
	fmt.Println("withdraw succeeded")
	return 0
}

// parseFlags parses CLI arguments into a cliConfig. Returns the config,
// whether the caller should exit immediately, and the exit code.
func parseFlags(args []string) (cliConfig, bool, int) {
	cfg := defaultConfig()
	fs := newCustomFlagSet("mixerctl")

	fs.StringVar(&cfg.password, "password", cfg.password, "vault password for the account's notes")
	fs.Uint64Var(&cfg.amount, "amount", cfg.amount, "number of denominations to deposit and withdraw")
	fs.Uint64Var(&cfg.slot, "slot", cfg.slot, "starting vault slot for newly drawn notes")
	fs.StringVar(&cfg.importEnvelope, "import-envelope", cfg.importEnvelope, "account envelope to import instead of creating a new account")
	fs.BoolVar(&cfg.skipWithdraw, "skip-withdraw", cfg.skipWithdraw, "deposit only, leave the notes mixing")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cfg, true, 2
	}

	if cfg.amount == 0 {
		fmt.Fprintln(os.Stderr, "Error: --amount must be at least 1")
		return cfg, true, 2
	}

	return cfg, false, 0
}
