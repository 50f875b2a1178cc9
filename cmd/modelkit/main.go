package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/modelkit-io/go-modelkit/info"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "create":
		if err := create(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "summary":
		if err := summary(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "pragma":
		if err := pragma(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Printf("%s version %s\n", info.Name, info.Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// newLogger builds the CLI logger. Debug logging is switched on with
// MODELKIT_DEBUG=1.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if os.Getenv("MODELKIT_DEBUG") == "1" {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func printUsage() {
	fmt.Println(`modelkit - programmatic model construction tool

Usage:
  modelkit <command> [options]

Commands:
  create     Build a model from a YAML seed and save it
  summary    Display quick summary of a saved workspace
  pragma     Set or query pragmas on seeded model elements
  help       Show this help message
  version    Show version information

Examples:
  # Build a model into a directory of JSON units
  modelkit create model.yaml --output build/

  # Build a model into a SQLite workspace
  modelkit create model.yaml --db workspace.db

  # Inspect a workspace
  modelkit summary workspace.db

  # Annotate an element
  modelkit pragma model.yaml --target SIZE --id kcg --text "kcg C:name size"

For command-specific help, run:
  modelkit <command> --help`)
}
