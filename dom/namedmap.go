package dom

// NamedNodeMap is an ordered collection keyed by (namespaceURI, localName),
// with an alternate non-namespace key (nodeName) (spec §3 "Sequences and
// maps"). It is the namespace-aware generalization of the teacher's
// OrderedMap (map.go): that type kept insertion order with O(1) lookup over
// a dynamic map[string]any; this keeps insertion order with O(1) lookup over
// (namespace, local) keys whose values are always Node.
type NamedNodeMap struct {
	owner Node // the Element (for attribute maps) or nil for DocumentType maps
	order []Node
	byNS  map[nsKey]Node
	byRaw map[string]Node // qualified-name key, for getNamedItem (no NS)
}

type nsKey struct {
	ns    string
	local string
}

func newNamedNodeMap(owner Node) *NamedNodeMap {
	return &NamedNodeMap{
		owner: owner,
		byNS:  make(map[nsKey]Node),
		byRaw: make(map[string]Node),
	}
}

// Length returns the number of entries.
func (m *NamedNodeMap) Length() int { return len(m.order) }

// Item returns the entry at index i in insertion order, or nil if out of
// range.
func (m *NamedNodeMap) Item(i int) Node {
	if i < 0 || i >= len(m.order) {
		return nil
	}
	return m.order[i]
}

// GetNamedItem looks up by qualified node name (the non-namespace key).
func (m *NamedNodeMap) GetNamedItem(name string) Node {
	return m.byRaw[name]
}

// GetNamedItemNS looks up by (namespaceURI, localName).
func (m *NamedNodeMap) GetNamedItemNS(namespaceURI, localName string) Node {
	return m.byNS[nsKey{namespaceURI, localName}]
}

// nameOf returns the map key this map indexes nodes by: attribute maps key
// by nodeName (qualified name), generic named-node maps (entities,
// notations, element/attlist declarations) also key by their NodeName.
func nameOf(n Node) string { return n.NodeName() }

// setNamedItem inserts or replaces an entry, keyed by both forms. It
// returns the node it replaced, if any (nil otherwise). It does not
// enforce ownership or readonly; callers (Element.SetAttributeNode et al.)
// do that.
func (m *NamedNodeMap) setNamedItem(n Node) Node {
	key := nsKey{n.NamespaceURI(), n.LocalName()}
	old := m.byNS[key]
	if old != nil {
		m.removeFromOrder(old)
	} else if existing := m.byRaw[nameOf(n)]; existing != nil && existing != old {
		// Same raw name, different (ns, local) pair: still a logical
		// replacement of the map's unprefixed identity.
		m.removeFromOrder(existing)
		delete(m.byNS, nsKey{existing.NamespaceURI(), existing.LocalName()})
		old = existing
	}
	m.byNS[key] = n
	m.byRaw[nameOf(n)] = n
	m.order = append(m.order, n)
	return old
}

// removeNamedItem removes the entry matching name, returning it (or nil).
func (m *NamedNodeMap) removeNamedItem(name string) Node {
	n := m.byRaw[name]
	if n == nil {
		return nil
	}
	m.removeFromOrder(n)
	delete(m.byNS, nsKey{n.NamespaceURI(), n.LocalName()})
	delete(m.byRaw, name)
	return n
}

// removeNamedItemNS removes the entry matching (namespaceURI, localName).
func (m *NamedNodeMap) removeNamedItemNS(namespaceURI, localName string) Node {
	key := nsKey{namespaceURI, localName}
	n := m.byNS[key]
	if n == nil {
		return nil
	}
	m.removeFromOrder(n)
	delete(m.byNS, key)
	delete(m.byRaw, nameOf(n))
	return n
}

func (m *NamedNodeMap) removeFromOrder(n Node) {
	for i, c := range m.order {
		if c == n {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

// items returns a snapshot slice in insertion order.
func (m *NamedNodeMap) items() []Node {
	out := make([]Node, len(m.order))
	copy(out, m.order)
	return out
}
