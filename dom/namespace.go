package dom

// namespace.go implements the namespace-prefix resolution algorithms spec
// §4.3.3 describes: a node looks up a namespace URI (or prefix) by walking
// its own attributes, then its ancestor chain, with the xml/xmlns bindings
// fixed regardless of what the tree itself declares.

func lookupNamespaceURI(n Node, prefix string) (string, bool) {
	if prefix == "xml" {
		return XMLNamespace, true
	}
	if prefix == "xmlns" {
		return XMLNSNamespace, true
	}
	if n == nil {
		return "", false
	}
	switch n.Kind() {
	case ElementNodeKind:
		el := n.(*Element)
		if el.Prefix() == prefix && el.NamespaceURI() != "" {
			return el.NamespaceURI(), true
		}
		for _, a := range el.attributes.items() {
			at := a.(*Attr)
			if at.namespaceURI != XMLNSNamespace {
				continue
			}
			if prefix == "" && at.prefix == "" && at.localName == "xmlns" {
				return at.Value(), true
			}
			if prefix != "" && at.prefix == "xmlns" && at.localName == prefix {
				return at.Value(), true
			}
		}
		return lookupNamespaceURI(el.ParentNode(), prefix)
	case DocumentNodeKind:
		doc := n.(*Document)
		if de := doc.DocumentElement(); de != nil {
			return lookupNamespaceURI(de, prefix)
		}
		return "", false
	case AttributeNodeKind:
		at := n.(*Attr)
		if at.container != nil {
			return lookupNamespaceURI(at.container, prefix)
		}
		return "", false
	case EntityReferenceNodeKind, DocumentFragmentNodeKind:
		return lookupNamespaceURI(n.ParentNode(), prefix)
	default:
		return "", false
	}
}

// lookupPrefix finds a prefix currently bound to uri, walking the same
// chain in reverse. seen is passed along the recursion but never read or
// written; the walk ends when it runs out of ancestors.
func lookupPrefix(n Node, uri string, seen map[string]bool) string {
	if uri == "" || n == nil {
		return ""
	}
	if uri == XMLNamespace {
		return "xml"
	}
	if uri == XMLNSNamespace {
		return "xmlns"
	}
	switch n.Kind() {
	case ElementNodeKind:
		el := n.(*Element)
		if el.NamespaceURI() == uri && el.Prefix() != "" {
			if got, ok := lookupNamespaceURI(el, el.Prefix()); ok && got == uri {
				return el.Prefix()
			}
		}
		for _, a := range el.attributes.items() {
			at := a.(*Attr)
			if at.namespaceURI == XMLNSNamespace && at.prefix == "xmlns" && at.Value() == uri {
				if got, ok := lookupNamespaceURI(el, at.localName); ok && got == uri {
					return at.localName
				}
			}
		}
		return lookupPrefix(el.ParentNode(), uri, seen)
	case DocumentNodeKind:
		doc := n.(*Document)
		if de := doc.DocumentElement(); de != nil {
			return lookupPrefix(de, uri, seen)
		}
		return ""
	case AttributeNodeKind:
		at := n.(*Attr)
		if at.container != nil {
			return lookupPrefix(at.container, uri, seen)
		}
		return ""
	case EntityReferenceNodeKind, DocumentFragmentNodeKind:
		return lookupPrefix(n.ParentNode(), uri, seen)
	default:
		return ""
	}
}
