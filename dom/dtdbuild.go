package dom

// dtdbuild.go is the exported construction surface dom/parser uses to
// populate a DocumentType's declaration maps while reading an internal DTD
// subset. The node kinds themselves (Entity, Notation, ElementDeclaration,
// AttlistDeclaration, AttributeDeclaration) keep unexported constructors
// since every other package reaches them only through these methods, which
// also own insertion into the owning NamedNodeMap.

// DeclareEntity records an internal parsed general entity.
func (dt *DocumentType) DeclareEntity(doc *Document, name, replacementText string) *Entity {
	e := newEntity(doc, name, "", "", "")
	e.replacementText = replacementText
	dt.entities.setNamedItem(e)
	return e
}

// DeclareExternalEntity records a general entity with an external
// identifier (and, for an unparsed entity, an NDATA notation name). Its
// replacement text is left empty: fetching external entities is excluded by
// the Non-goals.
func (dt *DocumentType) DeclareExternalEntity(doc *Document, name, publicID, systemID, notationName string) *Entity {
	e := newEntity(doc, name, publicID, systemID, notationName)
	dt.entities.setNamedItem(e)
	return e
}

// DeclareNotation records a NOTATION declaration.
func (dt *DocumentType) DeclareNotation(doc *Document, name, publicID, systemID string) *Notation {
	n := newNotation(doc, name, publicID, systemID)
	dt.notations.setNamedItem(n)
	return n
}

// DeclareElement records an ELEMENT declaration's content model.
func (dt *DocumentType) DeclareElement(doc *Document, name string, content *ContentDeclaration) *ElementDeclaration {
	d := newElementDeclaration(doc, name, content)
	dt.elements.setNamedItem(d)
	return d
}

// AttlistFor returns the existing AttlistDeclaration grouping elementName's
// ATTLIST-declared attributes, creating and recording an empty one if this
// is the first ATTLIST declaration seen for that element name.
func (dt *DocumentType) AttlistFor(doc *Document, elementName string) *AttlistDeclaration {
	if existing, ok := dt.attlists.GetNamedItem(elementName).(*AttlistDeclaration); ok {
		return existing
	}
	d := newAttlistDeclaration(doc, elementName)
	dt.attlists.setNamedItem(d)
	return d
}

// DeclareAttribute adds one attribute's declaration to an AttlistDeclaration
// built by AttlistFor. A second ATTLIST declaration for the same (element,
// attribute) pair is ignored (XML's "first declaration wins" rule for
// duplicate ATTLIST attribute declarations).
func (al *AttlistDeclaration) DeclareAttribute(doc *Document, name string, typ AttributeType, enumerationValues []string, def *AttributeDefault) *AttributeDeclaration {
	if existing, ok := al.attributes.GetNamedItem(name).(*AttributeDeclaration); ok {
		return existing
	}
	d := newAttributeDeclaration(doc, name, typ)
	d.EnumerationValues = enumerationValues
	d.Default = def
	al.attributes.setNamedItem(d)
	return d
}
