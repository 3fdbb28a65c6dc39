// Command baby is the Manchester-Baby-style assembler and simulator
// driver: assemble a source program, load it into a fresh machine, and
// either step it to completion in batch mode or hand control to the
// terminal stepper.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sgysy/babysim/asm"
	"github.com/sgysy/babysim/config"
	"github.com/sgysy/babysim/diag"
	"github.com/sgysy/babysim/machine"
	"github.com/sgysy/babysim/tui"
	"github.com/sgysy/babysim/word"
)

// Version, Commit and Date are set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("baby", flag.ContinueOnError)

	var (
		sourcePath = fs.String("source", "", "assembly source file (defaults to the config file's source_file)")
		outputPath = fs.String("output", "", "path to write the assembled binary (defaults to the config file's output_file)")
		logPath    = fs.String("log", "", "path to write the diagnostic log (defaults to the config file's log_file)")
		configPath = fs.String("config", "", "path to a TOML config file (defaults to the platform config path)")
		useTUI     = fs.Bool("tui", false, "launch the interactive terminal stepper instead of running to completion")
		maxRounds  = fs.Uint64("max-rounds", 0, "override the configured round limit (0 keeps the config value)")
		verbose    = fs.Bool("verbose", false, "print each round's registers to stdout in batch mode")
		showVer    = fs.Bool("version", false, "print version information and exit")
		binaryPath = fs.String("binary", "", "load a previously assembled binary directly, skipping the assembler")
	)

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVer {
		fmt.Printf("baby %s (commit %s, built %s)\n", Version, Commit, Date)
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "baby: %v\n", err)
		return 2
	}

	if *sourcePath != "" {
		cfg.Assembler.SourceFile = *sourcePath
	}
	if *outputPath != "" {
		cfg.Assembler.OutputFile = *outputPath
	}
	if *logPath != "" {
		cfg.Assembler.LogFile = *logPath
	}
	if *maxRounds != 0 {
		cfg.Machine.MaxRounds = *maxRounds
	}

	var words []word.Word

	if *binaryPath != "" {
		bin, err := os.Open(*binaryPath) // #nosec G304 -- operator-supplied binary path
		if err != nil {
			fmt.Fprintf(os.Stderr, "baby: %v\n", err)
			return 2
		}
		words, err = machine.ParseProgram(bin)
		bin.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "baby: %v\n", err)
			return 2
		}
	} else {
		src, err := os.Open(cfg.Assembler.SourceFile) // #nosec G304 -- operator-supplied source path
		if err != nil {
			fmt.Fprintf(os.Stderr, "baby: %v\n", err)
			return 2
		}
		defer src.Close()

		logFile, err := os.Create(cfg.Assembler.LogFile) // #nosec G304 -- operator-supplied log path
		if err != nil {
			fmt.Fprintf(os.Stderr, "baby: %v\n", err)
			return 2
		}
		defer logFile.Close()
		logger := diag.New(logFile, nil)

		result, err := asm.Assemble(src, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "baby: assembly failed: %v\n", err)
			return 1
		}

		if err := writeOutput(cfg.Assembler.OutputFile, result.Words); err != nil {
			fmt.Fprintf(os.Stderr, "baby: %v\n", err)
			return 2
		}
		words = result.Words
	}

	state := machine.New()
	if err := state.Load(words); err != nil {
		fmt.Fprintf(os.Stderr, "baby: %v\n", err)
		return 2
	}

	if *useTUI {
		app := tui.New(state, cfg.Machine.MaxRounds)
		if err := app.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "baby: %v\n", err)
			return 2
		}
		return 0
	}

	return runBatch(state, cfg.Machine.MaxRounds, *verbose)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func writeOutput(path string, words []word.Word) error {
	f, err := os.Create(path) // #nosec G304 -- operator-supplied output path
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	defer f.Close()
	for _, w := range words {
		if _, err := fmt.Fprintln(f, word.FormatLine(w)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func runBatch(state *machine.State, maxRounds uint64, verbose bool) int {
	var rounds uint64
	for !state.Halted {
		if maxRounds > 0 && rounds >= maxRounds {
			fmt.Fprintf(os.Stderr, "baby: stopped after %d rounds (limit reached)\n", maxRounds)
			break
		}
		if err := state.Step(); err != nil {
			fmt.Fprintf(os.Stderr, "baby: %v\n", err)
			return 1
		}
		rounds++
		if verbose {
			fmt.Printf("round %d: CI=%d Acc=%d\n", state.CurRound, state.PrevCI, state.Accumulator)
		}
	}

	fmt.Printf("halted: %v\nrounds: %d\naccumulator: %d\n", state.Halted, rounds, state.Accumulator)
	return 0
}
