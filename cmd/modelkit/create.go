package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	mk "github.com/modelkit-io/go-modelkit/create"
	"github.com/modelkit-io/go-modelkit/expr"
	"github.com/modelkit-io/go-modelkit/prop"
	"github.com/modelkit-io/go-modelkit/storage"
	"github.com/modelkit-io/go-modelkit/suite"
)

// seed is the YAML description of a model to build.
type seed struct {
	Name      string         `yaml:"name"`
	File      string         `yaml:"file"`
	Constants []seedConstant `yaml:"constants"`
	Sensors   []seedSensor   `yaml:"sensors"`
	Operators []seedOperator `yaml:"operators"`
	Pragmas   []seedPragma   `yaml:"pragmas"`
}

type seedConstant struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

type seedSensor struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type seedVar struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type seedEquation struct {
	Lefts []string `yaml:"lefts"`
	Op    string   `yaml:"op"`
	Args  []string `yaml:"args"`
}

type seedOperator struct {
	Name      string         `yaml:"name"`
	Function  bool           `yaml:"function"`
	Inputs    []seedVar      `yaml:"inputs"`
	Outputs   []seedVar      `yaml:"outputs"`
	Equations []seedEquation `yaml:"equations"`
}

type seedPragma struct {
	Target string `yaml:"target"`
	ID     string `yaml:"id"`
	Text   string `yaml:"text"`
}

func create(args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	output := fs.String("output", "build", "directory for JSON units")
	db := fs.String("db", "", "SQLite workspace instead of JSON files")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: modelkit create <model.yaml> [options]

Build a model from a YAML seed and save its storage units.

Options:
  --output <dir>   directory for JSON units (default "build")
  --db <file>      SQLite workspace instead of JSON files

Examples:
  modelkit create model.yaml --output build/
  modelkit create model.yaml --db workspace.db
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("seed file required")
	}

	log := newLogger()

	var store suite.UnitStore
	if *db != "" {
		sqlStore, err := storage.NewSQLiteStore(*db, log)
		if err != nil {
			return err
		}
		defer sqlStore.Close()
		store = sqlStore
	} else {
		fileStore, err := storage.NewFileStore(*output, log)
		if err != nil {
			return err
		}
		store = fileStore
	}

	session, model, err := buildSeed(fs.Arg(0), store)
	if err != nil {
		return err
	}
	if err := session.SaveAll(); err != nil {
		return err
	}

	fmt.Printf("Model: %s\n", model.Name)
	fmt.Printf("Units: %d\n", len(model.StorageUnits))
	fmt.Printf("Constants: %d, Sensors: %d, Operators: %d\n",
		len(model.Constants), len(model.Sensors), len(model.Operators))
	return nil
}

// buildSeed reads a YAML seed and constructs the model, leaving the
// modified units saved through the given store.
func buildSeed(path string, store suite.UnitStore) (*mk.Session, *suite.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read seed: %w", err)
	}
	var sd seed
	if err := yaml.Unmarshal(data, &sd); err != nil {
		return nil, nil, fmt.Errorf("parse seed: %w", err)
	}
	if sd.Name == "" || sd.File == "" {
		return nil, nil, fmt.Errorf("seed needs a name and a file")
	}

	session := mk.NewSession()
	session.Store = store
	model := suite.NewSession().NewModel(sd.Name, sd.File)

	for _, c := range sd.Constants {
		if _, err := session.CreateConstant(model, c.Name, c.Type, c.Value, ""); err != nil {
			return nil, nil, fmt.Errorf("constant %s: %w", c.Name, err)
		}
	}
	for _, sn := range sd.Sensors {
		if _, err := session.CreateSensor(model, sn.Name, sn.Type, ""); err != nil {
			return nil, nil, fmt.Errorf("sensor %s: %w", sn.Name, err)
		}
	}
	for _, od := range sd.Operators {
		if err := buildOperator(session, model, od); err != nil {
			return nil, nil, fmt.Errorf("operator %s: %w", od.Name, err)
		}
	}
	if err := session.Commit(); err != nil {
		return nil, nil, err
	}

	for _, pg := range sd.Pragmas {
		target := findDeclaration(model, pg.Target)
		if target == nil {
			return nil, nil, fmt.Errorf("pragma target %s not found", pg.Target)
		}
		if prop.SetPragmaText(target, pg.ID, pg.Text) {
			session.MarkModified(target)
		}
	}
	return session, model, nil
}

func buildOperator(session *mk.Session, model *suite.Model, od seedOperator) error {
	op, err := session.CreateTextualOperator(model, od.Name, od.Function, "")
	if err != nil {
		return err
	}
	inputs := make([]mk.Var, len(od.Inputs))
	for i, v := range od.Inputs {
		inputs[i] = mk.Var{Name: v.Name, Type: v.Type}
	}
	if _, err := session.AddOperatorInputs(op, inputs...); err != nil {
		return err
	}
	outputs := make([]mk.Var, len(od.Outputs))
	for i, v := range od.Outputs {
		outputs[i] = mk.Var{Name: v.Name, Type: v.Type}
	}
	if _, err := session.AddOperatorOutputs(op, outputs...); err != nil {
		return err
	}

	vars := make(map[string]*suite.LocalVariable)
	for _, v := range append(append([]*suite.LocalVariable{}, op.Inputs...), op.Outputs...) {
		vars[v.Name] = v
	}

	for _, eq := range od.Equations {
		tree, err := seedTree(eq, vars)
		if err != nil {
			return err
		}
		lefts := make([]any, len(eq.Lefts))
		for i, l := range eq.Lefts {
			if v, ok := vars[l]; ok {
				lefts[i] = v
			} else {
				lefts[i] = l
			}
		}
		if _, err := session.AddDataDefEquation(op.DataDef, lefts, tree); err != nil {
			return err
		}
	}
	return nil
}

// seedTree builds the expression of one seeded equation: the operands
// resolve to operator variables when they name one, and stay literals
// otherwise.
func seedTree(eq seedEquation, vars map[string]*suite.LocalVariable) (any, error) {
	operands := make([]any, len(eq.Args))
	for i, a := range eq.Args {
		if v, ok := vars[a]; ok {
			operands[i] = v
		} else {
			operands[i] = a
		}
	}
	if eq.Op == "" {
		if len(operands) != 1 {
			return nil, fmt.Errorf("equation without operator needs one operand")
		}
		return operands[0], nil
	}
	code, err := expr.EckFromName(eq.Op)
	if err != nil {
		return nil, err
	}
	switch len(operands) {
	case 0:
		return nil, fmt.Errorf("operator %s needs operands", eq.Op)
	case 1:
		return mk.Unary(code, operands[0])
	case 2:
		if t, err := mk.Nary(code, operands...); err == nil {
			return t, nil
		}
		return mk.Binary(code, operands[0], operands[1])
	default:
		return mk.Nary(code, operands...)
	}
}

func findDeclaration(model *suite.Model, name string) suite.Object {
	for _, c := range model.Constants {
		if c.Name == name {
			return c
		}
	}
	for _, sn := range model.Sensors {
		if sn.Name == name {
			return sn
		}
	}
	for _, op := range model.Operators {
		if op.Name == name {
			return op
		}
	}
	for _, t := range model.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}
