package parser

import "github.com/arturoeanton/xmldom/dom"

// defaults.go applies ATTLIST-declared attribute defaulting once an entire
// document (and its DOCTYPE) has been read (spec §4.4: "attribute
// defaulting happens after the document's declarations are fully known,
// since an ATTLIST may follow the elements it governs in document order").
// It also marks ID-typed attributes via Element.SetIdAttribute so
// Document.GetElementById works without a schema-validating pass.

func applyAttributeDefaulting(doc *dom.Document, dt *dom.DocumentType) {
	de := doc.DocumentElement()
	if de == nil {
		return
	}
	walkElements(de, func(el *dom.Element) {
		decl, ok := dt.AttlistDeclarations().GetNamedItem(el.NodeName()).(*dom.AttlistDeclaration)
		if !ok {
			return
		}
		attrs := decl.Attributes()
		for i := 0; i < attrs.Length(); i++ {
			ad := attrs.Item(i).(*dom.AttributeDeclaration)
			name := ad.NodeName()
			if !el.HasAttribute(name) {
				if ad.Default != nil && ad.Default.HasValue {
					el.ApplyDefaultAttribute("", name, ad.Default.Value)
				}
			}
			if ad.Type == dom.AttrTypeID && el.HasAttribute(name) {
				_ = el.SetIdAttribute(name, true)
			}
		}
	})
}

func walkElements(el *dom.Element, fn func(*dom.Element)) {
	fn(el)
	for _, c := range el.ChildNodes() {
		if child, ok := c.(*dom.Element); ok {
			walkElements(child, fn)
		}
	}
}
