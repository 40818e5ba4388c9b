package dom

// Element is the workhorse node kind: a tag name, an attribute map, and a
// child sequence (spec §3).
type Element struct {
	nodeBase
	attributes *NamedNodeMap
}

func newElement(doc *Document, namespaceURI, local, prefix string) *Element {
	e := &Element{}
	e.initBase(e, ElementNodeKind)
	e.ownerDocument = doc
	if namespaceURI == "" {
		e.namespaceURI = NoNamespace
	} else {
		e.namespaceURI = namespaceURI
	}
	e.localName = local
	e.prefix = prefix
	e.attributes = newNamedNodeMap(e)
	return e
}

func (e *Element) TagName() string           { return e.NodeName() }
func (e *Element) Attributes() *NamedNodeMap { return e.attributes }
func (e *Element) HasAttributes() bool       { return e.attributes.Length() > 0 }

func (e *Element) GetAttribute(name string) string {
	if a, ok := e.attributes.GetNamedItem(name).(*Attr); ok {
		return a.Value()
	}
	return ""
}

func (e *Element) GetAttributeNS(namespaceURI, localName string) string {
	if a, ok := e.attributes.GetNamedItemNS(namespaceURI, localName).(*Attr); ok {
		return a.Value()
	}
	return ""
}

func (e *Element) HasAttribute(name string) bool {
	return e.attributes.GetNamedItem(name) != nil
}

func (e *Element) HasAttributeNS(namespaceURI, localName string) bool {
	return e.attributes.GetNamedItemNS(namespaceURI, localName) != nil
}

func (e *Element) SetAttribute(name, value string) error {
	if e.readonly {
		return newDOMException(NoModificationAllowedErr, "node is readonly")
	}
	if !isValidName(name) {
		return newDOMException(InvalidCharacterErr, "invalid attribute name: "+name)
	}
	if existing, ok := e.attributes.GetNamedItem(name).(*Attr); ok {
		return existing.SetValue(value)
	}
	a := newAttr(e.ownerDocument, NoNamespace, name, "")
	if err := a.SetValue(value); err != nil {
		return err
	}
	a.container = e
	e.attributes.setNamedItem(a)
	e.bumpSequence()
	return nil
}

func (e *Element) SetAttributeNS(namespaceURI, qualifiedName, value string) error {
	if e.readonly {
		return newDOMException(NoModificationAllowedErr, "node is readonly")
	}
	if !isValidName(qualifiedName) {
		return newDOMException(InvalidCharacterErr, "invalid qualified name: "+qualifiedName)
	}
	prefix, local := splitQName(qualifiedName)
	if prefix != "" && namespaceURI == "" {
		return newDOMException(NamespaceErr, "prefixed name requires a namespace URI")
	}
	if prefix == "xml" && namespaceURI != XMLNamespace {
		return newDOMException(NamespaceErr, "prefix xml requires the XML namespace")
	}
	if (prefix == "xmlns" || qualifiedName == "xmlns") && namespaceURI != XMLNSNamespace {
		return newDOMException(NamespaceErr, "xmlns prefix/name requires the XMLNS namespace")
	}
	if existing, ok := e.attributes.GetNamedItemNS(namespaceURI, local).(*Attr); ok {
		existing.prefix = prefix
		return existing.SetValue(value)
	}
	a := newAttr(e.ownerDocument, namespaceURI, local, prefix)
	if err := a.SetValue(value); err != nil {
		return err
	}
	a.container = e
	e.attributes.setNamedItem(a)
	e.bumpSequence()
	return nil
}

func (e *Element) RemoveAttribute(name string) error {
	if e.readonly {
		return newDOMException(NoModificationAllowedErr, "node is readonly")
	}
	a, ok := e.attributes.GetNamedItem(name).(*Attr)
	if !ok {
		return nil
	}
	e.attributes.removeNamedItem(name)
	a.container = nil
	e.maintainDefaultAttribute(a.NamespaceURI(), a.LocalName(), name)
	e.bumpSequence()
	return nil
}

func (e *Element) RemoveAttributeNS(namespaceURI, localName string) error {
	if e.readonly {
		return newDOMException(NoModificationAllowedErr, "node is readonly")
	}
	a, ok := e.attributes.GetNamedItemNS(namespaceURI, localName).(*Attr)
	if !ok {
		return nil
	}
	e.attributes.removeNamedItemNS(namespaceURI, localName)
	a.container = nil
	e.maintainDefaultAttribute(namespaceURI, localName, a.NodeName())
	e.bumpSequence()
	return nil
}

func (e *Element) GetAttributeNode(name string) *Attr {
	if a, ok := e.attributes.GetNamedItem(name).(*Attr); ok {
		return a
	}
	return nil
}

func (e *Element) GetAttributeNodeNS(namespaceURI, localName string) *Attr {
	if a, ok := e.attributes.GetNamedItemNS(namespaceURI, localName).(*Attr); ok {
		return a
	}
	return nil
}

func (e *Element) SetAttributeNode(a *Attr) (*Attr, error) {
	if e.readonly {
		return nil, newDOMException(NoModificationAllowedErr, "node is readonly")
	}
	if a == nil {
		return nil, newDOMException(NotFoundErr, "attribute is nil")
	}
	if a.ownerDocument != e.ownerDocument {
		return nil, newDOMException(WrongDocumentErr, "attribute belongs to a different document")
	}
	if owner := a.OwnerElement(); owner != nil && owner != e {
		return nil, newDOMException(InuseAttributeErr, "attribute already in use by another element")
	}
	old := e.attributes.setNamedItem(a)
	a.container = e
	e.bumpSequence()
	if oldAttr, ok := old.(*Attr); ok {
		oldAttr.container = nil
		return oldAttr, nil
	}
	return nil, nil
}

// SetAttributeNodeNS is identical to SetAttributeNode: the underlying map
// is already keyed by (namespaceURI, localName), so there is nothing
// namespace-specific left for this entry point to do beyond what
// SetAttributeNode already handles (spec §4.1).
func (e *Element) SetAttributeNodeNS(a *Attr) (*Attr, error) {
	return e.SetAttributeNode(a)
}

func (e *Element) RemoveAttributeNode(a *Attr) error {
	if e.readonly {
		return newDOMException(NoModificationAllowedErr, "node is readonly")
	}
	if a == nil || a.OwnerElement() != e {
		return newDOMException(NotFoundErr, "attribute not found on this element")
	}
	e.attributes.removeNamedItemNS(a.NamespaceURI(), a.LocalName())
	a.container = nil
	e.maintainDefaultAttribute(a.NamespaceURI(), a.LocalName(), a.NodeName())
	e.bumpSequence()
	return nil
}

// SetIdAttribute, SetIdAttributeNS and SetIdAttributeNode implement DOM3
// Core's user-determined ID mechanism (spec §3's isId): a caller (typically
// dom/parser, applying ATTLIST ID-typed declarations once a document is
// fully read) marks an existing attribute as an ID-typed attribute so
// Document.GetElementById can find its owning element.
func (e *Element) SetIdAttribute(name string, isID bool) error {
	a, ok := e.attributes.GetNamedItem(name).(*Attr)
	if !ok {
		return newDOMException(NotFoundErr, "attribute not found: "+name)
	}
	a.isID = isID
	return nil
}

func (e *Element) SetIdAttributeNS(namespaceURI, localName string, isID bool) error {
	a, ok := e.attributes.GetNamedItemNS(namespaceURI, localName).(*Attr)
	if !ok {
		return newDOMException(NotFoundErr, "attribute not found")
	}
	a.isID = isID
	return nil
}

func (e *Element) SetIdAttributeNode(a *Attr, isID bool) error {
	if a == nil || a.OwnerElement() != e {
		return newDOMException(NotFoundErr, "attribute not owned by this element")
	}
	a.isID = isID
	return nil
}

// ApplyDefaultAttribute inserts an attribute carrying an ATTLIST-declared
// default value as unspecified (spec §4.1: "specified" is false for a
// value supplied by the DTD rather than given explicitly in the document).
// A no-op if qualifiedName is already present, since an explicit value
// always wins over a default. Exported for dom/parser's post-parse
// attribute-defaulting step; mirrors the construction maintainDefaultAttribute
// uses when a removed explicit attribute falls back to its default.
func (e *Element) ApplyDefaultAttribute(namespaceURI, qualifiedName, value string) {
	if e.attributes.GetNamedItem(qualifiedName) != nil {
		return
	}
	prefix, local := splitQName(qualifiedName)
	a := newAttr(e.ownerDocument, namespaceURI, local, prefix)
	_ = a.SetValue(value)
	a.specified = false
	a.container = e
	e.attributes.setNamedItem(a)
}

// maintainDefaultAttribute re-inserts the DTD-declared default value for
// (namespaceURI, localName) immediately after an explicit attribute with
// that name is removed (spec §4.1). A no-op when there is no doctype, no
// matching ATTLIST declaration, or no default value to reintroduce.
func (e *Element) maintainDefaultAttribute(namespaceURI, localName, qualifiedName string) {
	doc := e.ownerDocument
	if doc == nil {
		return
	}
	dt := doc.Doctype()
	if dt == nil {
		return
	}
	decl, ok := dt.attlists.GetNamedItem(e.NodeName()).(*AttlistDeclaration)
	if !ok {
		return
	}
	adecl, ok := decl.attributes.GetNamedItem(qualifiedName).(*AttributeDeclaration)
	if !ok || adecl.Default == nil || !adecl.Default.HasValue {
		return
	}
	prefix, local := splitQName(qualifiedName)
	a := newAttr(doc, namespaceURI, local, prefix)
	_ = a.SetValue(adecl.Default.Value)
	a.specified = false
	a.container = e
	e.attributes.setNamedItem(a)
}

// GetElementsByTagName returns a live list of descendant elements whose
// node name (the qualified tag name) matches name, or every descendant element if
// name is "*" (spec §4.1).
func (e *Element) GetElementsByTagName(name string) *NodeList {
	return &NodeList{root: e, localName: name}
}

// GetElementsByTagNameNS is the namespace-aware counterpart: either
// namespaceURI or localName (or both) may be "*" as a wildcard.
func (e *Element) GetElementsByTagNameNS(namespaceURI, localName string) *NodeList {
	return &NodeList{
		root: e, nsQualified: true,
		namespaceURI: namespaceURI, localName: localName,
		wildcardNS: namespaceURI == "*", wildcardLocal: localName == "*",
	}
}

func (e *Element) shallowClone(doc *Document) Node {
	c := newElement(doc, e.NamespaceURI(), e.localName, e.prefix)
	c.namespaceURI = e.namespaceURI
	c.loc = e.loc
	return c
}
