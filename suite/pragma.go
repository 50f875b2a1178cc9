package suite

// Pragma is a free-form tool annotation attached to a model element.
// Pragmas are unique per ID on a given object.
type Pragma struct {
	object
	ID   string
	Text string
}

// FindPragma returns the pragma with the given ID, or nil.
func FindPragma(obj Object, id string) *Pragma {
	for _, p := range obj.base().pragmas {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AttachPragma adds a pragma to an object, detaching it from any
// previous owner. Attaching to nil removes the pragma.
func AttachPragma(p *Pragma, obj Object) {
	if p.owner != nil {
		p.owner.base().removePragma(p)
	}
	if obj == nil {
		p.owner = nil
		return
	}
	p.owner = obj
	obj.base().pragmas = append(obj.base().pragmas, p)
}

// SetPragmaText creates or updates the textual pragma with the given ID.
func SetPragmaText(obj Object, id, text string) {
	p := FindPragma(obj, id)
	if p == nil {
		p = &Pragma{object: newObject(nil), ID: id}
		AttachPragma(p, obj)
	}
	p.Text = text
}

func (o *object) removePragma(p *Pragma) {
	for i, q := range o.pragmas {
		if q == p {
			o.pragmas = append(o.pragmas[:i], o.pragmas[i+1:]...)
			return
		}
	}
}
