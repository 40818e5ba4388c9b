package dom

// EntityReference represents an unexpanded "&name;" reference in element
// or attribute content (spec §3). Its children are the parser's best
// expansion of the entity at parse time -- a snapshot, not a live link to
// the Entity declaration, and not marked readonly -- kept so normalizeDocument's
// entities=false pass (normalize.go) has something to splice in when the
// reference node itself is removed.
type EntityReference struct {
	nodeBase
	name string
}

func newEntityReference(doc *Document, name string) *EntityReference {
	e := &EntityReference{name: name}
	e.initBase(e, EntityReferenceNodeKind)
	e.ownerDocument = doc
	return e
}

func (e *EntityReference) NodeName() string { return e.name }

func (e *EntityReference) shallowClone(doc *Document) Node {
	c := newEntityReference(doc, e.name)
	c.loc = e.loc
	return c
}
