package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"cupl/config"
	"cupl/diag"
	"cupl/eval"
	"cupl/progfile"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("cupl: ")

	configPath := flag.String("config", "", "YAML config file")
	lineWidth := flag.Int("width", -1, "Output line width (0 = terminal width)")
	fieldWidth := flag.Int("field", -1, "Output field width")
	verbose := flag.Int("v", -1, "Verbosity: 1 parse dump, 2 check dump, 3 execute trace, 4 allocation trace")
	maxDepth := flag.Int("depth", -1, "Maximum PERFORM nesting")
	seed := flag.Int64("seed", 0, "RAND seed (0 keeps the configured seed)")
	checkOnly := flag.Bool("check", false, "Check and resolve the program without running it")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: cupl [flags] program.yaml\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *lineWidth >= 0 {
		cfg.LineWidth = *lineWidth
	}
	if *fieldWidth >= 0 {
		cfg.FieldWidth = *fieldWidth
	}
	if *verbose >= 0 {
		cfg.Verbose = *verbose
	}
	if *maxDepth >= 0 {
		cfg.MaxDepth = *maxDepth
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	cfg.ResolveLineWidth(int(os.Stdout.Fd()))
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	prog, syms, err := progfile.LoadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to load program: %v", err)
	}

	if *checkOnly {
		if err := eval.Prepare(prog, syms, cfg, os.Stderr); err != nil {
			fatal(err)
		}
		return
	}

	if err := eval.Run(prog, syms, cfg, os.Stdout, os.Stderr); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	if diag.IsFatal(err) {
		log.Fatalf("fatal: %v", err)
	}
	log.Fatal(err)
}
