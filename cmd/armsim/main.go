// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tebeka/atexit"
	"github.com/xyproto/env/v2"

	"github.com/ezrec/armsim/emulator"
)

// options are the command line settings.
type options struct {
	compile string
	memory  string
	output  string
	steps   int
	verbose bool
}

// parseFlags parses the command line. Defaults come from the environment.
func parseFlags(args []string) (opts options, err error) {
	flags := flag.NewFlagSet("armsim", flag.ContinueOnError)

	flags.StringVar(&opts.compile, "c", "-", ".s file to run")
	flags.StringVar(&opts.memory, "m", "", ".star memory initializer to use")
	flags.StringVar(&opts.output, "o", "-", "State dump output")
	flags.IntVar(&opts.steps, "n", env.Int("ARMSIM_MAX_STEPS", 0), "Step limit, 0 for none")
	flags.BoolVar(&opts.verbose, "v", env.Bool("ARMSIM_VERBOSE"), "Verbose mode")

	err = flags.Parse(args)
	if err != nil {
		return
	}

	if flags.NArg() != 0 {
		err = fmt.Errorf("unknown arguments: %v", flags.Args())
		return
	}

	return
}

// run loads, executes and dumps a program.
// On a runtime error the registers are still dumped for post-mortem.
func run(opts options, stdin io.Reader, stdout io.Writer) (err error) {
	emu := emulator.NewEmulator()
	emu.Verbose = opts.verbose
	emu.MaxSteps = opts.steps

	// Seed memory before loading the program.
	if len(opts.memory) != 0 {
		inf, err := os.Open(opts.memory)
		if err != nil {
			return err
		}
		err = emu.LoadMemory(opts.memory, inf)
		inf.Close()
		if err != nil {
			return err
		}
	}

	prog := stdin
	if opts.compile != "-" {
		inf, err := os.Open(opts.compile)
		if err != nil {
			return err
		}
		defer inf.Close()
		prog = inf
	}

	err = emu.Load(prog)
	if err != nil {
		return fmt.Errorf("%v: %w", opts.compile, err)
	}

	out := stdout
	if opts.output != "-" {
		ouf, ferr := os.Create(opts.output)
		if ferr != nil {
			return ferr
		}
		defer func() {
			cerr := ouf.Close()
			if err == nil {
				err = cerr
			}
		}()
		out = ouf
	}

	err = emu.Run()
	if err != nil {
		err = fmt.Errorf("%v: %w", opts.compile, err)
		werr := emu.WriteRegisters(out)
		if werr != nil {
			err = errors.Join(err, fmt.Errorf("%v: %w", opts.output, werr))
		}
		return
	}

	err = emu.WriteRegisters(out)
	if err == nil {
		err = emu.WriteMemory(out)
	}
	if err != nil {
		err = fmt.Errorf("%v: %w", opts.output, err)
	}

	return
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		atexit.Exit(0)
	}
	if err != nil {
		atexit.Fatalf("%v: %v", os.Args[0], err)
	}

	err = run(opts, os.Stdin, os.Stdout)
	if err != nil {
		atexit.Fatal(err)
	}

	atexit.Exit(0)
}
