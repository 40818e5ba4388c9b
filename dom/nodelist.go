package dom

// NodeList is the live, depth-first view GetElementsByTagName(NS) returns
// (spec §3 "live node lists"): it walks the subtree freshly the first time
// it is read after any mutation, keyed off the root's sequence counter
// (invariant 9), and returns the cached slice otherwise -- the same
// cache-until-invalidated shape the teacher's OrderedMap used for plain
// key lookups, generalized here to a recursive tag-name filter.
type NodeList struct {
	root Node

	nsQualified   bool
	namespaceURI  string
	localName     string
	wildcardNS    bool
	wildcardLocal bool

	cachedSeq uint64
	cached    []Node
	primed    bool
}

func (l *NodeList) refresh() []Node {
	seq := l.root.base().seqN
	if l.primed && seq == l.cachedSeq {
		return l.cached
	}
	var out []Node
	var walk func(Node)
	walk = func(n Node) {
		for _, c := range n.ChildNodes() {
			if c.Kind() != ElementNodeKind {
				continue
			}
			el := c.(*Element)
			if l.matches(el) {
				out = append(out, el)
			}
			walk(el)
		}
	}
	walk(l.root)
	l.cached = out
	l.cachedSeq = seq
	l.primed = true
	return out
}

func (l *NodeList) matches(el *Element) bool {
	if l.nsQualified {
		if !l.wildcardNS && el.NamespaceURI() != l.namespaceURI {
			return false
		}
		if !l.wildcardLocal && el.LocalName() != l.localName {
			return false
		}
		return true
	}
	if l.localName == "*" {
		return true
	}
	return el.NodeName() == l.localName
}

// Length returns the current number of matching elements.
func (l *NodeList) Length() int { return len(l.refresh()) }

// Item returns the element at index i in document order, or nil if out of
// range.
func (l *NodeList) Item(i int) Node {
	items := l.refresh()
	if i < 0 || i >= len(items) {
		return nil
	}
	return items[i]
}
