package decode

import "strconv"

// Path is an immutable, structurally-shared location within the JSON input
// being decoded, printed like "create.items[0].price" (§9 "Key paths").
// Segments are either a field name or an array index; a nil *Path is the
// root.
type Path struct {
	parent *Path
	field  string
	index  int
	isIdx  bool
}

// Root is the empty key path.
var Root = (*Path)(nil)

// Field extends the path with a field-name segment.
func (p *Path) Field(name string) *Path {
	return &Path{parent: p, field: name}
}

// Index extends the path with an array-index segment.
func (p *Path) Index(i int) *Path {
	return &Path{parent: p, index: i, isIdx: true}
}

// String renders the path in dotted/bracketed form.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	parent := p.parent.String()
	if p.isIdx {
		return parent + "[" + strconv.Itoa(p.index) + "]"
	}
	if parent == "" {
		return p.field
	}
	return parent + "." + p.field
}
