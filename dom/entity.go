package dom

// Entity is a parsed- or unparsed-entity declaration from the internal or
// external DTD subset (spec §3, §4). Entity nodes are always readonly.
// dom/parser records an internal entity's literal value as its
// ReplacementText and does not build child nodes for the Entity itself.
type Entity struct {
	nodeBase
	name            string
	publicID        string
	systemID        string
	notationName    string
	actualEncoding  string
	xmlEncoding     string
	xmlVersion      string
	replacementText string
}

func newEntity(doc *Document, name, publicID, systemID, notationName string) *Entity {
	e := &Entity{name: name, publicID: publicID, systemID: systemID, notationName: notationName}
	e.initBase(e, EntityNodeKind)
	e.ownerDocument = doc
	e.readonly = true
	return e
}

func (e *Entity) NodeName() string       { return e.name }
func (e *Entity) PublicID() string        { return e.publicID }
func (e *Entity) SystemID() string        { return e.systemID }
func (e *Entity) NotationName() string    { return e.notationName }
func (e *Entity) ActualEncoding() string  { return e.actualEncoding }
func (e *Entity) XMLEncoding() string     { return e.xmlEncoding }
func (e *Entity) XMLVersion() string      { return e.xmlVersion }

// ReplacementText is the internal-entity declaration's literal value (spec
// §4.4): the text an internal parsed entity expands to wherever the parser
// meets "&name;". Empty for external/unparsed entities, which this
// implementation does not fetch (Non-goals).
func (e *Entity) ReplacementText() string { return e.replacementText }

// SetReplacementText is used by dom/parser while building an Entity
// declaration from an internal DTD subset.
func (e *Entity) SetReplacementText(s string) { e.replacementText = s }

// SetActualEncoding/SetXMLEncoding/SetXMLVersion record an entity's
// encoding metadata. dom/parser does not fetch external entities and never
// calls them, so parsed documents leave these fields empty.
func (e *Entity) SetActualEncoding(v string) { e.actualEncoding = v }
func (e *Entity) SetXMLEncoding(v string)    { e.xmlEncoding = v }
func (e *Entity) SetXMLVersion(v string)     { e.xmlVersion = v }

func (e *Entity) shallowClone(doc *Document) Node {
	c := newEntity(doc, e.name, e.publicID, e.systemID, e.notationName)
	c.actualEncoding = e.actualEncoding
	c.xmlEncoding = e.xmlEncoding
	c.xmlVersion = e.xmlVersion
	c.replacementText = e.replacementText
	c.loc = e.loc
	return c
}
