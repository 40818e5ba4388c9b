package dom

// decl.go models the structured half of a DTD's internal subset: ELEMENT
// content models and ATTLIST attribute declarations, kept as named-map
// entries on DocumentType alongside its entities and notations (spec §4).

// AttributeType enumerates the ATTLIST attribute-type vocabulary.
type AttributeType int

const (
	AttrTypeCDATA AttributeType = iota
	AttrTypeID
	AttrTypeIDREF
	AttrTypeIDREFS
	AttrTypeENTITY
	AttrTypeENTITIES
	AttrTypeNMTOKEN
	AttrTypeNMTOKENS
	AttrTypeNOTATION
	AttrTypeEnumeration
)

func (t AttributeType) String() string {
	switch t {
	case AttrTypeCDATA:
		return "CDATA"
	case AttrTypeID:
		return "ID"
	case AttrTypeIDREF:
		return "IDREF"
	case AttrTypeIDREFS:
		return "IDREFS"
	case AttrTypeENTITY:
		return "ENTITY"
	case AttrTypeENTITIES:
		return "ENTITIES"
	case AttrTypeNMTOKEN:
		return "NMTOKEN"
	case AttrTypeNMTOKENS:
		return "NMTOKENS"
	case AttrTypeNOTATION:
		return "NOTATION"
	case AttrTypeEnumeration:
		return "ENUMERATION"
	default:
		return "UNKNOWN"
	}
}

// AttributeDefaultKind enumerates an ATTLIST declaration's default clause:
// #IMPLIED, #REQUIRED, #FIXED "value", or a bare default "value".
type AttributeDefaultKind int

const (
	AttrDefaultImplied AttributeDefaultKind = iota
	AttrDefaultRequired
	AttrDefaultFixed
	AttrDefaultValue
)

// AttributeDefault carries both the default clause's kind and, when it has
// one, its literal value.
type AttributeDefault struct {
	Kind     AttributeDefaultKind
	HasValue bool
	Value    string
}

// ContentDeclaration models an ELEMENT declaration's content model. A nil
// *ContentDeclaration child list with Mixed == false and isSequence == nil
// denotes EMPTY or ANY (distinguished by the Any field); isSequence
// is a tri-state: nil for a single-particle or leaf model, true for a
// comma-separated sequence, false for a pipe-separated choice.
type ContentDeclaration struct {
	Any        bool
	Mixed      bool
	isSequence *bool
	Children   []string
}

func (c *ContentDeclaration) Sequence() (isSeq bool, known bool) {
	if c.isSequence == nil {
		return false, false
	}
	return *c.isSequence, true
}

func (c *ContentDeclaration) SetSequence(isSeq bool) {
	v := isSeq
	c.isSequence = &v
}

// ElementDeclaration is an ELEMENT declaration entry in a DocumentType's
// elements map, keyed by element name.
type ElementDeclaration struct {
	nodeBase
	name    string
	Content *ContentDeclaration
}

func newElementDeclaration(doc *Document, name string, content *ContentDeclaration) *ElementDeclaration {
	d := &ElementDeclaration{name: name, Content: content}
	d.initBase(d, ElementDeclarationNodeKind)
	d.ownerDocument = doc
	d.readonly = true
	return d
}

func (d *ElementDeclaration) NodeName() string { return d.name }

func (d *ElementDeclaration) shallowClone(doc *Document) Node {
	var content *ContentDeclaration
	if d.Content != nil {
		cc := *d.Content
		cc.Children = append([]string(nil), d.Content.Children...)
		if d.Content.isSequence != nil {
			v := *d.Content.isSequence
			cc.isSequence = &v
		}
		content = &cc
	}
	c := newElementDeclaration(doc, d.name, content)
	c.loc = d.loc
	return c
}

// AttlistDeclaration groups every ATTLIST-declared attribute for one
// element name (spec §4); it is keyed in DocumentType.attlists by that
// element name, and its own attributes map is keyed by attribute name.
type AttlistDeclaration struct {
	nodeBase
	elementName string
	attributes  *NamedNodeMap
}

func newAttlistDeclaration(doc *Document, elementName string) *AttlistDeclaration {
	d := &AttlistDeclaration{elementName: elementName}
	d.initBase(d, AttlistDeclarationNodeKind)
	d.ownerDocument = doc
	d.attributes = newNamedNodeMap(d)
	d.readonly = true
	return d
}

func (d *AttlistDeclaration) NodeName() string           { return d.elementName }
func (d *AttlistDeclaration) Attributes() *NamedNodeMap { return d.attributes }

func (d *AttlistDeclaration) shallowClone(doc *Document) Node {
	c := newAttlistDeclaration(doc, d.elementName)
	c.loc = d.loc
	return c
}

// AttributeDeclaration is one ATTLIST-declared attribute: its type, and
// (for NOTATION and enumeration types) the admissible value list, and its
// default clause. cloneTo (called from shallowClone) copies the
// EnumerationValues slice and Default pointer by value so clones never
// alias the original's storage.
type AttributeDeclaration struct {
	nodeBase
	attrName          string
	Type              AttributeType
	EnumerationValues []string
	Default           *AttributeDefault
}

func newAttributeDeclaration(doc *Document, attrName string, typ AttributeType) *AttributeDeclaration {
	d := &AttributeDeclaration{attrName: attrName, Type: typ}
	d.initBase(d, AttributeDeclarationNodeKind)
	d.ownerDocument = doc
	d.readonly = true
	return d
}

func (d *AttributeDeclaration) NodeName() string { return d.attrName }

func (d *AttributeDeclaration) cloneTo(c *AttributeDeclaration) {
	c.EnumerationValues = append([]string(nil), d.EnumerationValues...)
	if d.Default != nil {
		def := *d.Default
		c.Default = &def
	}
}

func (d *AttributeDeclaration) shallowClone(doc *Document) Node {
	c := newAttributeDeclaration(doc, d.attrName, d.Type)
	d.cloneTo(c)
	c.loc = d.loc
	return c
}
