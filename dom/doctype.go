package dom

// DocumentType holds the DTD-derived declarations a parsed document
// carries along: its public/system identifiers, the literal internal
// subset text, and four named maps of declarations (spec §3, §4). A
// DocumentType node (and everything inside it) is always readonly.
type DocumentType struct {
	nodeBase
	name           string
	publicID       string
	systemID       string
	internalSubset string

	entities  *NamedNodeMap
	notations *NamedNodeMap
	elements  *NamedNodeMap
	attlists  *NamedNodeMap
}

func newDocumentType(name, publicID, systemID string) *DocumentType {
	dt := &DocumentType{name: name, publicID: publicID, systemID: systemID}
	dt.initBase(dt, DocumentTypeNodeKind)
	dt.entities = newNamedNodeMap(nil)
	dt.notations = newNamedNodeMap(nil)
	dt.elements = newNamedNodeMap(nil)
	dt.attlists = newNamedNodeMap(nil)
	dt.readonly = true
	return dt
}

func (dt *DocumentType) NodeName() string        { return dt.name }
func (dt *DocumentType) Name() string             { return dt.name }
func (dt *DocumentType) PublicID() string         { return dt.publicID }
func (dt *DocumentType) SystemID() string         { return dt.systemID }
func (dt *DocumentType) InternalSubset() string    { return dt.internalSubset }
func (dt *DocumentType) Entities() *NamedNodeMap   { return dt.entities }
func (dt *DocumentType) Notations() *NamedNodeMap  { return dt.notations }
func (dt *DocumentType) ElementDeclarations() *NamedNodeMap { return dt.elements }
func (dt *DocumentType) AttlistDeclarations() *NamedNodeMap { return dt.attlists }

// SetInternalSubset is used by the parser (dom/parser) to record the raw
// internal-subset text verbatim alongside the structured declarations it
// extracted from it.
func (dt *DocumentType) SetInternalSubset(s string) { dt.internalSubset = s }

func (dt *DocumentType) shallowClone(doc *Document) Node {
	c := newDocumentType(dt.name, dt.publicID, dt.systemID)
	c.ownerDocument = doc
	c.internalSubset = dt.internalSubset
	c.loc = dt.loc
	return c
}
