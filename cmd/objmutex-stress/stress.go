// stress.go implements the 'stress' and 'rw' commands.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kolkov/objmutex/obj"
)

// stressCommand runs the exclusive-guard soak: every worker increments
// one shared counter through its own SharedClone, and the final value
// must equal workers*ops exactly.
func stressCommand(args []string) {
	fs := flag.NewFlagSet("stress", flag.ExitOnError)
	workers := fs.Int("workers", 8, "number of concurrent workers")
	ops := fs.Int("ops", 100000, "increments per worker")
	_ = fs.Parse(args)

	root := obj.New(0)
	start := time.Now()

	var g errgroup.Group
	for i := 0; i < *workers; i++ {
		w, err := root.SharedClone()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: SharedClone failed: %v\n", err)
			os.Exit(1)
		}
		g.Go(func() error {
			defer w.Drop()
			for j := 0; j < *ops; j++ {
				guard, err := w.LockGet()
				if err != nil {
					return fmt.Errorf("LockGet: %w", err)
				}
				p, err := guard.Ref()
				if err != nil {
					guard.Unlock()
					return fmt.Errorf("Ref: %w", err)
				}
				*p++
				guard.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	guard, err := root.LockGet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: final LockGet failed: %v\n", err)
		os.Exit(1)
	}
	final, _ := guard.Value()
	guard.Unlock()

	want := *workers * *ops
	report("stress", want, final, elapsed)
	if final != want {
		os.Exit(1)
	}
}

// rwCommand runs the reader/writer mix: writers increment through
// exclusive guards while readers repeatedly sanity-check the counter
// through shared guards.
func rwCommand(args []string) {
	fs := flag.NewFlagSet("rw", flag.ExitOnError)
	readers := fs.Int("readers", 8, "number of concurrent readers")
	writers := fs.Int("writers", 2, "number of concurrent writers")
	ops := fs.Int("ops", 50000, "operations per worker")
	_ = fs.Parse(args)

	root := obj.NewRW(0)
	maxTotal := *writers * *ops
	start := time.Now()

	var g errgroup.Group
	for i := 0; i < *writers; i++ {
		w, err := root.SharedClone()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: SharedClone failed: %v\n", err)
			os.Exit(1)
		}
		g.Go(func() error {
			defer w.Drop()
			for j := 0; j < *ops; j++ {
				guard, err := w.LockGet()
				if err != nil {
					return fmt.Errorf("LockGet: %w", err)
				}
				p, _ := guard.Ref()
				*p++
				guard.Unlock()
			}
			return nil
		})
	}
	for i := 0; i < *readers; i++ {
		r, err := root.SharedClone()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: SharedClone failed: %v\n", err)
			os.Exit(1)
		}
		g.Go(func() error {
			defer r.Drop()
			for j := 0; j < *ops; j++ {
				guard, err := obj.RLockGet(r)
				if err != nil {
					return fmt.Errorf("RLockGet: %w", err)
				}
				v, _ := guard.Value()
				guard.Unlock()
				if v < 0 || v > maxTotal {
					return fmt.Errorf("reader observed impossible value %d", v)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	guard, err := root.LockGet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: final LockGet failed: %v\n", err)
		os.Exit(1)
	}
	final, _ := guard.Value()
	guard.Unlock()

	report("rw", maxTotal, final, elapsed)
	if final != maxTotal {
		os.Exit(1)
	}
}

// report prints the outcome of a run in a stable, scriptable format.
func report(name string, want, got int, elapsed time.Duration) {
	status := "OK"
	if got != want {
		status = "FAILED (lost updates)"
	}
	total := float64(got)
	fmt.Printf("=== %s ===\n", name)
	fmt.Printf("expected:   %d\n", want)
	fmt.Printf("final:      %d\n", got)
	fmt.Printf("elapsed:    %v\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("throughput: %.0f ops/sec\n", total/elapsed.Seconds())
	}
	fmt.Printf("result:     %s\n", status)
}
