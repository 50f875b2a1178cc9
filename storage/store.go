// Package storage persists storage units and projects. FileStore
// writes one JSON document per unit; SQLiteStore keeps all units of a
// workspace in a single database.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/modelkit-io/go-modelkit/suite"
)

// unitDocument is the persisted form of a storage unit.
type unitDocument struct {
	Model    string            `json:"model"`
	File     string            `json:"file"`
	Elements []elementDocument `json:"elements"`
}

// elementDocument is the persisted form of one declaration.
type elementDocument struct {
	OID     string            `json:"oid"`
	Kind    string            `json:"kind"`
	Name    string            `json:"name,omitempty"`
	Text    string            `json:"text,omitempty"`
	Pragmas map[string]string `json:"pragmas,omitempty"`
}

// projectDocument is the persisted form of a project.
type projectDocument struct {
	Path           string         `json:"path"`
	Roots          []string       `json:"roots"`
	Configurations []string       `json:"configurations"`
	Props          []propDocument `json:"props,omitempty"`
}

type propDocument struct {
	Tool          string   `json:"tool"`
	Name          string   `json:"name"`
	Values        []string `json:"values"`
	Configuration string   `json:"configuration,omitempty"`
}

func encodeUnit(unit *suite.StorageUnit) unitDocument {
	doc := unitDocument{
		File: unit.FileName,
	}
	if unit.Model != nil {
		doc.Model = unit.Model.Name
	}
	for _, e := range unit.Elements {
		doc.Elements = append(doc.Elements, encodeElement(e))
	}
	return doc
}

func encodeElement(obj suite.Object) elementDocument {
	doc := elementDocument{OID: obj.OID().String()}
	switch x := obj.(type) {
	case *suite.Package:
		doc.Kind = "package"
		doc.Name = x.Name
	case *suite.NamedType:
		doc.Kind = "type"
		doc.Name = x.Name
	case *suite.Constant:
		doc.Kind = "constant"
		doc.Name = x.Name
		if x.Value != nil {
			doc.Text = x.Value.String()
		}
	case *suite.Sensor:
		doc.Kind = "sensor"
		doc.Name = x.Name
	case *suite.Operator:
		doc.Kind = "operator"
		doc.Name = x.Name
	default:
		doc.Kind = fmt.Sprintf("%T", obj)
	}
	if pragmas := obj.Pragmas(); len(pragmas) > 0 {
		doc.Pragmas = make(map[string]string, len(pragmas))
		for _, p := range pragmas {
			doc.Pragmas[p.ID] = p.Text
		}
	}
	return doc
}

func encodeProject(p *suite.Project) projectDocument {
	doc := projectDocument{Path: p.PathName}
	for _, r := range p.Roots {
		doc.Roots = append(doc.Roots, r.ElementName())
	}
	for _, c := range p.Configurations {
		doc.Configurations = append(doc.Configurations, c.Name)
	}
	for _, prop := range p.Props {
		pd := propDocument{Tool: prop.Tool, Name: prop.Name, Values: prop.Values}
		if prop.Configuration != nil {
			pd.Configuration = prop.Configuration.Name
		}
		doc.Props = append(doc.Props, pd)
	}
	return doc
}

// FileStore persists units and projects as JSON files under a root
// directory. File names follow the unit's own file name.
type FileStore struct {
	dir string
	log zerolog.Logger
}

// NewFileStore creates a store rooted at dir, creating the directory
// when needed.
func NewFileStore(dir string, log zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return &FileStore{dir: dir, log: log}, nil
}

// SaveUnit writes the unit as one JSON document.
func (s *FileStore) SaveUnit(unit *suite.StorageUnit) error {
	path := filepath.Join(s.dir, filepath.Base(unit.FileName))
	data, err := json.MarshalIndent(encodeUnit(unit), "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", unit.FileName, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", path, err)
	}
	s.log.Debug().
		Str("unit", unit.FileName).
		Int("elements", len(unit.Elements)).
		Msg("unit saved")
	return nil
}

// SaveProject writes the project descriptor as one JSON document.
func (s *FileStore) SaveProject(p *suite.Project) error {
	path := filepath.Join(s.dir, filepath.Base(p.PathName))
	data, err := json.MarshalIndent(encodeProject(p), "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", p.PathName, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", path, err)
	}
	s.log.Debug().Str("project", p.PathName).Msg("project saved")
	return nil
}
