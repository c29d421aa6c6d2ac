package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	indy "github.com/marinocpqd/indy-sdk"
	"github.com/marinocpqd/indy-sdk/emulated"
)

func main() {
	var (
		dbPath      = flag.String("db", "indy.db", "Path to the pool config database")
		create      = flag.String("create", "", "Create a pool ledger config with this name")
		genesis     = flag.String("genesis", "", "Genesis transaction file for -create")
		open        = flag.String("open", "", "Open the named pool, refresh it, and close it")
		del         = flag.String("delete", "", "Delete the named pool ledger config")
		list        = flag.Bool("list", false, "List pool ledger configs")
		protocol    = flag.Int("protocol", 0, "Set the protocol version (1 or 2)")
		timeout     = flag.Duration("timeout", 0, "Deadline for each call (0 blocks indefinitely)")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *create == "" && *open == "" && *del == "" && !*list && *protocol == 0 && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: indy [-db file] -create name -genesis file.txn")
		fmt.Fprintln(os.Stderr, "       indy [-db file] -open name | -delete name | -list | -protocol n")
		fmt.Fprintln(os.Stderr, "       indy [-db file] -i  (interactive mode)")
		os.Exit(1)
	}

	log := zap.NewNop()
	if *verbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	lib, err := emulated.Open(*dbPath, emulated.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer lib.Close()

	client := indy.NewClient(lib)

	if *interactive {
		if err := runInteractive(client); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(client, *create, *genesis, *open, *del, *list, *protocol, *timeout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(client *indy.Client, create, genesis, open, del string, list bool, protocol int, timeout time.Duration) error {
	pool := client.Pool

	if protocol != 0 {
		if err := callEmpty(timeout,
			func() error { return pool.SetProtocolVersion(protocol) },
			func() error { return pool.SetProtocolVersionTimeout(protocol, timeout) },
		); err != nil {
			return err
		}
		fmt.Printf("Protocol version set to %d\n", protocol)
	}

	if create != "" {
		if genesis == "" {
			return fmt.Errorf("-create requires -genesis")
		}
		cfg, _ := json.Marshal(map[string]string{"genesis_txn": genesis})
		err := callEmpty(timeout,
			func() error { return pool.CreateLedgerConfig(create, string(cfg)) },
			func() error { return pool.CreateLedgerConfigTimeout(create, string(cfg), timeout) },
		)
		if err != nil {
			return err
		}
		fmt.Printf("Created pool config %q\n", create)
	}

	if open != "" {
		var handle int32
		var err error
		if timeout > 0 {
			handle, err = pool.OpenLedgerTimeout(open, "", timeout)
		} else {
			handle, err = pool.OpenLedger(open, "")
		}
		if err != nil {
			return err
		}
		fmt.Printf("Opened pool %q with handle %d\n", open, handle)

		if err := pool.Refresh(handle); err != nil {
			return err
		}
		fmt.Println("Refreshed")

		if err := pool.Close(handle); err != nil {
			return err
		}
		fmt.Println("Closed")
	}

	if del != "" {
		err := callEmpty(timeout,
			func() error { return pool.Delete(del) },
			func() error { return pool.DeleteTimeout(del, timeout) },
		)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted pool config %q\n", del)
	}

	if list {
		pools, err := pool.List()
		if err != nil {
			return err
		}
		fmt.Println(pools)
	}

	return nil
}

func callEmpty(timeout time.Duration, block, withTimeout func() error) error {
	if timeout > 0 {
		return withTimeout()
	}
	return block()
}
