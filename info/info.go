// Package info exposes the library identity: name, version, and the
// feature set a host can probe before using it.
package info

// Library identity.
const (
	Name    = "go-modelkit"
	Version = "0.3.0"
)

// Properties returns the capabilities of this build, keyed by feature
// name.
func Properties() map[string]string {
	return map[string]string{
		"name":        Name,
		"version":     Version,
		"expressions": "predefined operators, user calls, modifiers, iterators",
		"types":       "predefined, sized, tables, structures, enumerations",
		"pragmas":     "text, tool, json",
		"storage":     "json files, sqlite",
	}
}
