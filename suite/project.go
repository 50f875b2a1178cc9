package suite

// Project is the workspace descriptor grouping model files, folders,
// and tool properties per configuration.
type Project struct {
	object
	PathName       string
	Roots          []ProjectElement
	Configurations []*Configuration
	Props          []*Prop

	Store ProjectStore
}

// ProjectStore persists projects.
type ProjectStore interface {
	SaveProject(p *Project) error
}

// ProjectElement is a folder or a file reference.
type ProjectElement interface {
	Object
	ElementName() string
}

// Folder groups project elements.
type Folder struct {
	object
	Name     string
	Elements []ProjectElement
}

func (f *Folder) ElementName() string { return f.Name }

// FileRef references a file from the project.
type FileRef struct {
	object
	PathName  string
	PersistAs string
}

func (f *FileRef) ElementName() string { return f.PathName }

// Configuration is a named set of tool property values.
type Configuration struct {
	object
	Name string
}

// Prop is a tool property: a list of values scoped by tool and name,
// optionally per configuration and per project entity.
type Prop struct {
	object
	Tool          string
	Name          string
	Values        []string
	Configuration *Configuration
	Entity        Object
}

// NewProject creates an empty project.
func NewProject(pathName string) *Project {
	return &Project{object: newObject(nil), PathName: pathName}
}

// Save persists the project through its store.
func (p *Project) Save() error {
	if p.Store == nil {
		return ErrNoStore
	}
	return p.Store.SaveProject(p)
}

// AddRoot appends a root element to a project.
func (p *Project) AddRoot(e ProjectElement) {
	p.Roots = append(p.Roots, e)
}

// AddElement appends an element to a folder.
func (f *Folder) AddElement(e ProjectElement) {
	f.Elements = append(f.Elements, e)
}

// GetToolProp returns the values of a tool property, or the default.
func (p *Project) GetToolProp(tool, name string, defaultValues []string, conf *Configuration, entity Object) []string {
	if prop := p.findProp(tool, name, conf, entity); prop != nil {
		return prop.Values
	}
	return defaultValues
}

// SetToolProp sets the values of a tool property, creating it when
// needed. Setting the default values removes the property.
func (p *Project) SetToolProp(tool, name string, values, defaultValues []string, conf *Configuration, entity Object) {
	prop := p.findProp(tool, name, conf, entity)
	if sameValues(values, defaultValues) {
		if prop != nil {
			p.removeProp(prop)
		}
		return
	}
	if prop == nil {
		prop = &Prop{
			object:        newObject(p),
			Tool:          tool,
			Name:          name,
			Configuration: conf,
			Entity:        entity,
		}
		p.Props = append(p.Props, prop)
	}
	prop.Values = values
}

func (p *Project) findProp(tool, name string, conf *Configuration, entity Object) *Prop {
	for _, prop := range p.Props {
		if prop.Tool == tool && prop.Name == name &&
			prop.Configuration == conf && prop.Entity == entity {
			return prop
		}
	}
	return nil
}

func (p *Project) removeProp(prop *Prop) {
	for i, q := range p.Props {
		if q == prop {
			p.Props = append(p.Props[:i], p.Props[i+1:]...)
			return
		}
	}
}

func sameValues(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
