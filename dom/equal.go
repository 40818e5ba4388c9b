package dom

// equal.go implements the structural equality test spec §4.3.7 describes:
// two nodes are equal when their kind, name, and kind-specific value agree,
// and (recursively) their attributes and children agree, irrespective of
// node identity, container, or readonly state.

func isEqualNode(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if a.NodeName() != b.NodeName() || a.LocalName() != b.LocalName() ||
		a.NamespaceURI() != b.NamespaceURI() || a.Prefix() != b.Prefix() {
		return false
	}

	switch ak := a.(type) {
	case *Text:
		if ak.Data() != b.(*Text).Data() {
			return false
		}
	case *CDATASection:
		if ak.Data() != b.(*CDATASection).Data() {
			return false
		}
	case *Comment:
		if ak.Data() != b.(*Comment).Data() {
			return false
		}
	case *ProcessingInstruction:
		bk := b.(*ProcessingInstruction)
		if ak.Target() != bk.Target() || ak.Data() != bk.Data() {
			return false
		}
	case *Attr:
		if ak.Value() != b.(*Attr).Value() {
			return false
		}
	case *DocumentType:
		bk := b.(*DocumentType)
		if ak.PublicID() != bk.PublicID() || ak.SystemID() != bk.SystemID() ||
			ak.InternalSubset() != bk.InternalSubset() {
			return false
		}
		if !equalNamedMapsUnordered(ak.entities, bk.entities) {
			return false
		}
		if !equalNamedMapsUnordered(ak.notations, bk.notations) {
			return false
		}
	case *Entity:
		bk := b.(*Entity)
		if ak.PublicID() != bk.PublicID() || ak.SystemID() != bk.SystemID() || ak.NotationName() != bk.NotationName() {
			return false
		}
	case *Notation:
		bk := b.(*Notation)
		if ak.PublicID() != bk.PublicID() || ak.SystemID() != bk.SystemID() {
			return false
		}
	}

	if a.Kind() == ElementNodeKind {
		ae := a.(*Element)
		be := b.(*Element)
		if !equalNamedMapsUnordered(ae.attributes, be.attributes) {
			return false
		}
	}

	achildren := a.ChildNodes()
	bchildren := b.ChildNodes()
	if len(achildren) != len(bchildren) {
		return false
	}
	for i := range achildren {
		if !isEqualNode(achildren[i], bchildren[i]) {
			return false
		}
	}
	return true
}

func equalNamedMapsUnordered(a, b *NamedNodeMap) bool {
	if a.Length() != b.Length() {
		return false
	}
	for _, n := range a.items() {
		other := b.GetNamedItemNS(n.NamespaceURI(), n.LocalName())
		if other == nil || !isEqualNode(n, other) {
			return false
		}
	}
	return true
}
