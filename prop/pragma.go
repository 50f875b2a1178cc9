// Package prop reads and writes pragmas, the free-form tool
// annotations attached to model elements. Three layers are provided:
// raw text, tool-prefixed text, and JSON payloads.
package prop

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/modelkit-io/go-modelkit/suite"
)

// FindPragma returns the pragma with the given ID, or nil.
func FindPragma(obj suite.Object, id string) *suite.Pragma {
	return suite.FindPragma(obj, id)
}

// RemovePragma detaches the pragma with the given ID and reports
// whether one was attached.
func RemovePragma(obj suite.Object, id string) bool {
	p := suite.FindPragma(obj, id)
	if p == nil {
		return false
	}
	suite.AttachPragma(p, nil)
	return true
}

// GetPragmaText returns the text of a pragma, or the empty string when
// the pragma is absent.
func GetPragmaText(obj suite.Object, id string) string {
	if p := suite.FindPragma(obj, id); p != nil {
		return p.Text
	}
	return ""
}

// SetPragmaText creates or updates a pragma. Setting the empty string
// removes the pragma. Reports whether the object changed.
func SetPragmaText(obj suite.Object, id, text string) bool {
	if text == "" {
		return RemovePragma(obj, id)
	}
	if p := suite.FindPragma(obj, id); p != nil {
		if p.Text == text {
			return false
		}
		p.Text = text
		return true
	}
	suite.SetPragmaText(obj, id, text)
	return true
}

// Tool pragmas store their text behind a leading tool token:
// "kcg C:name foo". The tool name doubles as the pragma ID.

// FindPragmaTool returns the pragma of a tool, or nil. A pragma whose
// text does not start with the tool token is not a tool pragma.
func FindPragmaTool(obj suite.Object, tool string) *suite.Pragma {
	p := suite.FindPragma(obj, tool)
	if p == nil {
		return nil
	}
	if first, _, _ := strings.Cut(p.Text, " "); first != tool {
		return nil
	}
	return p
}

// RemovePragmaTool detaches the pragma of a tool and reports whether
// one was attached.
func RemovePragmaTool(obj suite.Object, tool string) bool {
	p := FindPragmaTool(obj, tool)
	if p == nil {
		return false
	}
	suite.AttachPragma(p, nil)
	return true
}

// GetPragmaToolText returns the text of a tool pragma without the
// leading tool token, or the empty string when the pragma is absent.
func GetPragmaToolText(obj suite.Object, tool string) string {
	p := FindPragmaTool(obj, tool)
	if p == nil {
		return ""
	}
	_, rest, _ := strings.Cut(p.Text, " ")
	return rest
}

// SetPragmaToolText creates or updates a tool pragma. Setting the
// empty string removes the pragma. Reports whether the object changed.
func SetPragmaToolText(obj suite.Object, tool, text string) bool {
	if text == "" {
		return RemovePragmaTool(obj, tool)
	}
	return SetPragmaText(obj, tool, tool+" "+text)
}

// GetPragmaJSON returns the payload of a JSON pragma. An absent pragma
// yields an empty map, not an error.
func GetPragmaJSON(obj suite.Object, id string) (map[string]any, error) {
	text := GetPragmaText(obj, id)
	if text == "" {
		return map[string]any{}, nil
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("prop: pragma %s: %w", id, err)
	}
	return payload, nil
}

// SetPragmaJSON creates or updates a JSON pragma. A nil or empty
// payload removes the pragma. Reports whether the object changed.
func SetPragmaJSON(obj suite.Object, id string, payload map[string]any) (bool, error) {
	if len(payload) == 0 {
		return RemovePragma(obj, id), nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("prop: pragma %s: %w", id, err)
	}
	return SetPragmaText(obj, id, string(data)), nil
}

// DecodePragmaJSON decodes the payload of a JSON pragma into a typed
// struct.
func DecodePragmaJSON(obj suite.Object, id string, out any) error {
	if out == nil {
		return fmt.Errorf("prop: pragma %s: nil output", id)
	}
	payload, err := GetPragmaJSON(obj, id)
	if err != nil {
		return err
	}
	if err := mapstructure.Decode(payload, out); err != nil {
		return fmt.Errorf("prop: pragma %s: %w", id, err)
	}
	return nil
}
