package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/modelkit-io/go-modelkit/prop"
	"github.com/modelkit-io/go-modelkit/storage"
	"github.com/modelkit-io/go-modelkit/suite"
)

func pragma(args []string) error {
	fs := flag.NewFlagSet("pragma", flag.ExitOnError)
	target := fs.String("target", "", "name of the annotated declaration")
	id := fs.String("id", "", "pragma identifier")
	text := fs.String("text", "", "pragma text; empty prints the current value")
	remove := fs.Bool("remove", false, "remove the pragma")
	output := fs.String("output", "build", "directory for JSON units")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: modelkit pragma <model.yaml> --target <name> --id <id> [options]

Set or query a pragma on a seeded model element, rebuilding the model
from its seed and saving the touched units.

Options:
  --target <name>  name of the annotated declaration
  --id <id>        pragma identifier
  --text <text>    pragma text; omitted prints the current value
  --remove         remove the pragma
  --output <dir>   directory for JSON units (default "build")

Examples:
  modelkit pragma model.yaml --target SIZE --id kcg --text "kcg C:name size"
  modelkit pragma model.yaml --target SIZE --id kcg
  modelkit pragma model.yaml --target SIZE --id kcg --remove
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("seed file required")
	}
	if *target == "" || *id == "" {
		fs.Usage()
		return fmt.Errorf("--target and --id required")
	}

	store, err := storage.NewFileStore(*output, newLogger())
	if err != nil {
		return err
	}
	session, model, err := buildSeed(fs.Arg(0), store)
	if err != nil {
		return err
	}

	obj := findDeclaration(model, *target)
	if obj == nil {
		return fmt.Errorf("declaration %s not found", *target)
	}

	switch {
	case *remove:
		if !prop.RemovePragma(obj, *id) {
			fmt.Printf("no pragma %s on %s\n", *id, *target)
			return nil
		}
		session.MarkModified(obj)
	case *text != "":
		if prop.SetPragmaText(obj, *id, *text) {
			session.MarkModified(obj)
		}
	default:
		current := prop.GetPragmaText(obj, *id)
		if current == "" {
			fmt.Printf("no pragma %s on %s\n", *id, *target)
		} else {
			fmt.Println(current)
		}
		return nil
	}

	if err := session.SaveAll(); err != nil {
		return err
	}
	printPragmas(obj, *target)
	return nil
}

func printPragmas(obj suite.Object, name string) {
	pragmas := obj.Pragmas()
	fmt.Printf("%s: %d pragma(s)\n", name, len(pragmas))
	for _, p := range pragmas {
		fmt.Printf("  %s: %s\n", p.ID, p.Text)
	}
}
