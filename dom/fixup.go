package dom

import (
	"fmt"
	"sort"
)

// fixup.go implements namespace normalization (spec §4.3.6): walking the
// tree in document order, ensuring every element and attribute that
// carries a namespace URI has a matching, in-scope xmlns declaration,
// minting a generated prefix for attributes that need one of their own.
// It also implements the attribute-ordering half of canonical form, used
// by both normalizeDocument (when "canonical-form" is set) and the
// serializer's pre-serialization pass.

type nsScope struct {
	parent  *nsScope
	binding map[string]string // prefix -> uri; "" key is the default namespace
}

func (s *nsScope) lookup(prefix string) (string, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if uri, ok := cur.binding[prefix]; ok {
			return uri, true
		}
	}
	return "", false
}

// FixupNamespaces runs the namespace-fixup pass on doc in place. Exported
// for dom/serializer's pre-serialization fixup (spec §4.5): the serializer
// clones the tree first and calls this on the clone, so the caller's
// original tree is never touched by it.
func FixupNamespaces(doc *Document) {
	fixupNamespaces(doc)
}

func fixupNamespaces(doc *Document) {
	de := doc.DocumentElement()
	if de == nil {
		return
	}
	root := &nsScope{binding: map[string]string{"xml": XMLNamespace, "xmlns": XMLNSNamespace}}
	counter := 0
	fixupElement(de, root, &counter, doc.config.CanonicalForm)
}

func fixupElement(el *Element, parent *nsScope, counter *int, canonical bool) {
	scope := &nsScope{parent: parent, binding: map[string]string{}}
	for _, a := range el.attributes.items() {
		at := a.(*Attr)
		if at.namespaceURI != XMLNSNamespace {
			continue
		}
		if at.prefix == "" && at.localName == "xmlns" {
			scope.binding[""] = at.Value()
		} else if at.prefix == "xmlns" {
			scope.binding[at.localName] = at.Value()
		}
	}

	if ns := el.NamespaceURI(); ns != "" {
		prefix := el.Prefix()
		if bound, ok := scope.lookup(prefix); !ok || bound != ns {
			declareNamespace(el, scope, prefix, ns)
		}
	} else if el.namespaceURI != NoNamespace {
		if bound, ok := scope.lookup(""); ok && bound != "" {
			declareNamespace(el, scope, "", "")
		}
	}

	for _, a := range el.attributes.items() {
		at := a.(*Attr)
		if at.namespaceURI == XMLNSNamespace || at.namespaceURI == "" || at.namespaceURI == NoNamespace {
			continue
		}
		prefix := at.Prefix()
		if prefix == "" {
			prefix = generatePrefix(scope, counter)
			at.base().prefix = prefix
		}
		if bound, ok := scope.lookup(prefix); !ok || bound != at.NamespaceURI() {
			declareNamespace(el, scope, prefix, at.NamespaceURI())
		}
	}

	if canonical {
		canonicalizeAttributeOrder(el)
	}

	for _, c := range el.ChildNodes() {
		if ce, ok := c.(*Element); ok {
			fixupElement(ce, scope, counter, canonical)
		}
	}
}

func declareNamespace(el *Element, scope *nsScope, prefix, uri string) {
	scope.binding[prefix] = uri
	qname := "xmlns"
	if prefix != "" {
		qname = "xmlns:" + prefix
	}
	doc := el.OwnerDocument()
	a, err := doc.CreateAttributeNS(XMLNSNamespace, qname)
	if err != nil {
		return
	}
	_ = a.SetValue(uri)
	a.base().container = el
	el.attributes.setNamedItem(a)
}

func generatePrefix(scope *nsScope, counter *int) string {
	for {
		*counter++
		candidate := fmt.Sprintf("ns%d", *counter)
		if _, ok := scope.lookup(candidate); !ok {
			return candidate
		}
	}
}

// canonicalizeAttributeOrder sorts an element's attributes the way
// canonical form requires: namespace declarations first (by prefix, the
// default namespace sorting before any named one), then the remaining
// attributes by (namespaceURI, localName).
func canonicalizeAttributeOrder(el *Element) {
	items := el.attributes.items()
	sort.SliceStable(items, func(i, j int) bool {
		ai, aj := items[i].(*Attr), items[j].(*Attr)
		iNS := ai.namespaceURI == XMLNSNamespace
		jNS := aj.namespaceURI == XMLNSNamespace
		if iNS != jNS {
			return iNS
		}
		if iNS && jNS {
			iDefault := ai.localName == "xmlns"
			jDefault := aj.localName == "xmlns"
			if iDefault != jDefault {
				return iDefault
			}
			return ai.localName < aj.localName
		}
		if ai.NamespaceURI() != aj.NamespaceURI() {
			return ai.NamespaceURI() < aj.NamespaceURI()
		}
		return ai.LocalName() < aj.LocalName()
	})
	el.attributes.order = items
}
