package dom

import "strings"

// Document is the tree root and the factory for every other node kind
// (spec §3, §4). It carries the document-level metadata (declared XML
// version/encoding/standalone-ness, the configuration parameter set, the
// base URI) that the parser and serializer consult.
type Document struct {
	nodeBase

	config *DOMConfiguration

	xmlVersion    string
	xmlEncoding   string
	xmlStandalone bool

	documentURI         string
	strictErrorChecking bool
}

// NewDocument creates an empty Document with default configuration: XML
// 1.0, strict error checking on, every DOMConfiguration parameter at its
// documented default (config.go).
func NewDocument() *Document {
	d := &Document{}
	d.initBase(d, DocumentNodeKind)
	d.config = newDOMConfiguration()
	d.xmlVersion = "1.0"
	d.strictErrorChecking = true
	return d
}

func (d *Document) NodeName() string { return "#document" }

func (d *Document) Config() *DOMConfiguration { return d.config }

func (d *Document) XMLVersion() string { return d.xmlVersion }

// SetXMLVersion validates against the two XML versions this implementation
// recognizes (spec §6's xmlversion feature).
func (d *Document) SetXMLVersion(v string) error {
	if v != "1.0" && v != "1.1" {
		return newDOMException(NotSupportedErr, "unsupported XML version: "+v)
	}
	d.xmlVersion = v
	return nil
}

func (d *Document) XMLEncoding() string          { return d.xmlEncoding }
func (d *Document) SetXMLEncoding(enc string)     { d.xmlEncoding = enc }
func (d *Document) XMLStandalone() bool           { return d.xmlStandalone }
func (d *Document) SetXMLStandalone(v bool)       { d.xmlStandalone = v }
func (d *Document) DocumentURI() string           { return d.documentURI }
func (d *Document) SetDocumentURI(uri string)      { d.documentURI = uri }
func (d *Document) StrictErrorChecking() bool      { return d.strictErrorChecking }
func (d *Document) SetStrictErrorChecking(v bool) { d.strictErrorChecking = v }

// DocumentElement returns the document's single Element child, if any.
func (d *Document) DocumentElement() *Element {
	for _, c := range d.children {
		if el, ok := c.(*Element); ok {
			return el
		}
	}
	return nil
}

// Doctype returns the document's DocumentType child, if any.
func (d *Document) Doctype() *DocumentType {
	for _, c := range d.children {
		if dt, ok := c.(*DocumentType); ok {
			return dt
		}
	}
	return nil
}

func (d *Document) CreateElement(tagName string) (*Element, error) {
	if !isValidName(tagName) {
		return nil, newDOMException(InvalidCharacterErr, "invalid tag name: "+tagName)
	}
	prefix, local := splitQName(tagName)
	return newElement(d, "", local, prefix), nil
}

func (d *Document) CreateElementNS(namespaceURI, qualifiedName string) (*Element, error) {
	if !isValidName(qualifiedName) {
		return nil, newDOMException(InvalidCharacterErr, "invalid qualified name: "+qualifiedName)
	}
	prefix, local := splitQName(qualifiedName)
	if prefix != "" && namespaceURI == "" {
		return nil, newDOMException(NamespaceErr, "prefixed name requires a namespace URI")
	}
	if prefix == "xml" && namespaceURI != XMLNamespace {
		return nil, newDOMException(NamespaceErr, "prefix xml requires the XML namespace")
	}
	return newElement(d, namespaceURI, local, prefix), nil
}

func (d *Document) CreateDocumentFragment() *DocumentFragment {
	return newDocumentFragment(d)
}

func (d *Document) CreateTextNode(data string) *Text { return newText(d, data) }
func (d *Document) CreateComment(data string) *Comment { return newComment(d, data) }

func (d *Document) CreateCDATASection(data string) (*CDATASection, error) {
	return newCDATASection(d, data), nil
}

func (d *Document) CreateProcessingInstruction(target, data string) (*ProcessingInstruction, error) {
	if !isValidName(target) {
		return nil, newDOMException(InvalidCharacterErr, "invalid processing instruction target: "+target)
	}
	if strings.EqualFold(target, "xml") {
		return nil, newDOMException(NotSupportedErr, "reserved processing instruction target: xml")
	}
	if strings.Contains(data, "?>") {
		return nil, newDOMException(InvalidCharacterErr, "processing instruction data may not contain '?>'")
	}
	return newProcessingInstruction(d, target, data), nil
}

func (d *Document) CreateAttribute(name string) (*Attr, error) {
	if !isValidName(name) {
		return nil, newDOMException(InvalidCharacterErr, "invalid attribute name: "+name)
	}
	prefix, local := splitQName(name)
	return newAttr(d, "", local, prefix), nil
}

func (d *Document) CreateAttributeNS(namespaceURI, qualifiedName string) (*Attr, error) {
	if !isValidName(qualifiedName) {
		return nil, newDOMException(InvalidCharacterErr, "invalid qualified name: "+qualifiedName)
	}
	prefix, local := splitQName(qualifiedName)
	if prefix != "" && namespaceURI == "" {
		return nil, newDOMException(NamespaceErr, "prefixed name requires a namespace URI")
	}
	if (prefix == "xmlns" || qualifiedName == "xmlns") && namespaceURI != XMLNSNamespace {
		return nil, newDOMException(NamespaceErr, "xmlns prefix/name requires the XMLNS namespace")
	}
	return newAttr(d, namespaceURI, local, prefix), nil
}

// CreateEntityReference creates a detached EntityReference node. The node
// is not readonly: dom/parser appends the parser's expansion of the named
// entity to it with AppendChild, and neither this method nor the parser
// marks the node or those children readonly afterward.
func (d *Document) CreateEntityReference(name string) (*EntityReference, error) {
	if !isValidName(name) {
		return nil, newDOMException(InvalidCharacterErr, "invalid entity reference name: "+name)
	}
	return newEntityReference(d, name), nil
}

func (d *Document) GetElementsByTagName(name string) *NodeList {
	return &NodeList{root: d, localName: name}
}

func (d *Document) GetElementsByTagNameNS(namespaceURI, localName string) *NodeList {
	return &NodeList{
		root: d, nsQualified: true,
		namespaceURI: namespaceURI, localName: localName,
		wildcardNS: namespaceURI == "*", wildcardLocal: localName == "*",
	}
}

// GetElementById returns the element somewhere in the tree whose ID-typed
// attribute (spec §3's isId) has value elementID, or nil. There is no
// index: this is a linear tree walk, as befits a non-validating processor
// with no schema to pre-declare which attributes are ID-typed.
func (d *Document) GetElementById(elementID string) *Element {
	var found *Element
	var walk func(Node)
	walk = func(n Node) {
		if found != nil {
			return
		}
		if el, ok := n.(*Element); ok {
			for _, a := range el.attributes.items() {
				at := a.(*Attr)
				if at.isID && at.Value() == elementID {
					found = el
					return
				}
			}
		}
		for _, c := range n.ChildNodes() {
			walk(c)
			if found != nil {
				return
			}
		}
	}
	walk(d)
	return found
}

// RenameNode implements the DOMImplementation-level rename supplement
// (SPEC_FULL §13): it requires ownership by this document and otherwise
// delegates to the shared renameNode primitive (clone.go).
func (d *Document) RenameNode(n Node, namespaceURI, qualifiedName string) (Node, error) {
	if n.OwnerDocument() != d {
		return nil, newDOMException(WrongDocumentErr, "node belongs to a different document")
	}
	if err := renameNode(n, namespaceURI, qualifiedName); err != nil {
		return nil, err
	}
	return n, nil
}

// NormalizeDocument implements spec §4.3.5.
func (d *Document) NormalizeDocument() []NormalizePass {
	return normalizeDocument(d)
}

func (d *Document) shallowClone(_ *Document) Node {
	c := NewDocument()
	c.xmlVersion = d.xmlVersion
	c.xmlEncoding = d.xmlEncoding
	c.xmlStandalone = d.xmlStandalone
	c.documentURI = d.documentURI
	c.strictErrorChecking = d.strictErrorChecking
	c.loc = d.loc
	return c
}
