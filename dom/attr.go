package dom

// Attr is a name/value pair attached to an Element (spec §3). Its value is
// modeled, like an Element's textContent, as a child sequence of Text (and
// possibly EntityReference) nodes -- Value/SetValue are a convenience over
// that sequence, mirroring how the rest of the tree treats character data.
type Attr struct {
	nodeBase
	specified bool
	isID      bool
}

func newAttr(doc *Document, namespaceURI, local, prefix string) *Attr {
	a := &Attr{}
	a.initBase(a, AttributeNodeKind)
	a.ownerDocument = doc
	if namespaceURI == "" {
		a.namespaceURI = NoNamespace
	} else {
		a.namespaceURI = namespaceURI
	}
	a.localName = local
	a.prefix = prefix
	return a
}

// ParentNode is always nil for an Attr (spec §3; DOM3 deprecates treating
// attributes as having a structural parent even though they are attached
// to an owning Element).
func (a *Attr) ParentNode() Node { return nil }

func (a *Attr) Specified() bool { return a.specified }
func (a *Attr) IsID() bool      { return a.isID }

// OwnerElement returns the Element this attribute is currently attached
// to, or nil if it is free-standing (just created, or removed).
func (a *Attr) OwnerElement() *Element {
	if el, ok := a.container.(*Element); ok {
		return el
	}
	return nil
}

func (a *Attr) Value() string { return textContent(a) }

func (a *Attr) SetValue(s string) error {
	if a.readonly {
		return newDOMException(NoModificationAllowedErr, "node is readonly")
	}
	for _, c := range a.ChildNodes() {
		if err := a.RemoveChild(c); err != nil {
			return err
		}
	}
	if s != "" {
		if doc := a.ownerDocument; doc != nil {
			if err := a.AppendChild(doc.CreateTextNode(s)); err != nil {
				return err
			}
		}
	}
	a.specified = true
	a.bumpSequence()
	return nil
}

func (a *Attr) shallowClone(doc *Document) Node {
	c := newAttr(doc, a.NamespaceURI(), a.localName, a.prefix)
	c.namespaceURI = a.namespaceURI
	c.specified = true // a cloned Attr is always specified (spec §4.3.1)
	c.isID = a.isID
	c.loc = a.loc
	return c
}
