package create

import (
	"github.com/modelkit-io/go-modelkit/suite"
)

// Sfk is the kind of a simulation source file registered in a project.
type Sfk string

// Simulation file kinds.
const (
	SfkC      Sfk = "C"
	SfkObject Sfk = "OBJ"
	SfkMacro  Sfk = "MACRO"
	SfkType   Sfk = "TYPE"
	SfkAda    Sfk = "ADA"
)

// simulatorTool is the tool key of simulator properties.
const simulatorTool = "SIMULATOR"

// EmptyProject creates a project with a default configuration.
func EmptyProject(pathName string) *suite.Project {
	p := suite.NewProject(pathName)
	suite.NewConfiguration(p, "DefaultConf")
	return p
}

// CreateFolder creates a folder in a project or in another folder.
func CreateFolder(owner suite.Object, name string) (*suite.Folder, error) {
	if name == "" {
		return nil, identifierError("folder name", name)
	}
	f := suite.NewFolder(owner, name)
	switch o := owner.(type) {
	case *suite.Project:
		o.AddRoot(f)
	case *suite.Folder:
		o.AddElement(f)
	default:
		return nil, &KindError{Context: "folder", Param: "owner", Expected: "Project or Folder", Actual: owner}
	}
	return f, nil
}

// CreateFileRef references a file from a project or a folder.
func CreateFileRef(owner suite.Object, pathName, persistAs string) (*suite.FileRef, error) {
	if pathName == "" {
		return nil, syntaxError("file reference", pathName)
	}
	f := suite.NewFileRef(owner, pathName)
	f.PersistAs = persistAs
	switch o := owner.(type) {
	case *suite.Project:
		o.AddRoot(f)
	case *suite.Folder:
		o.AddElement(f)
	default:
		return nil, &KindError{Context: "file reference", Param: "owner", Expected: "Project or Folder", Actual: owner}
	}
	return f, nil
}

// CreateConfiguration adds a configuration to a project.
func CreateConfiguration(p *suite.Project, name string) (*suite.Configuration, error) {
	if name == "" {
		return nil, identifierError("configuration name", name)
	}
	return suite.NewConfiguration(p, name), nil
}

// CreateProp sets a tool property on a project. Setting the default
// values removes the property.
func CreateProp(p *suite.Project, tool, name string, values, defaultValues []string, conf *suite.Configuration, entity suite.Object) error {
	if tool == "" || name == "" {
		return syntaxError("tool property", tool+"/"+name)
	}
	p.SetToolProp(tool, name, values, defaultValues, conf, entity)
	return nil
}

// AddModelToProject references every storage unit of a model from the
// project root.
func AddModelToProject(p *suite.Project, m *suite.Model) ([]*suite.FileRef, error) {
	refs := make([]*suite.FileRef, 0, len(m.StorageUnits))
	for _, u := range m.StorageUnits {
		ref, err := CreateFileRef(p, u.FileName, u.PersistAs)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// AddSimulationFileToProject references a simulation source file,
// recording its kind as a simulator property.
func AddSimulationFileToProject(p *suite.Project, pathName string, kind Sfk) (*suite.FileRef, error) {
	folder := findFolder(p, "Simulation Files")
	if folder == nil {
		var err error
		folder, err = CreateFolder(p, "Simulation Files")
		if err != nil {
			return nil, err
		}
	}
	ref, err := CreateFileRef(folder, pathName, "")
	if err != nil {
		return nil, err
	}
	p.SetToolProp(simulatorTool, "FILE_KIND", []string{string(kind)}, nil, nil, ref)
	return ref, nil
}

func findFolder(p *suite.Project, name string) *suite.Folder {
	for _, e := range p.Roots {
		if f, ok := e.(*suite.Folder); ok && f.Name == name {
			return f
		}
	}
	return nil
}

// SaveProject persists a project through its store.
func SaveProject(p *suite.Project) error {
	return p.Save()
}
