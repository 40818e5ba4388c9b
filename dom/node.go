package dom

// Node is the common surface implemented by every node kind in the tree.
// Kind-specific behavior is reached either through a type assertion to the
// concrete kind (Element, Attr, ...) or, inside this package, through a type
// switch in the tree algorithms (clone.go, normalize.go, equal.go).
type Node interface {
	Kind() NodeKind
	NodeName() string
	NamespaceURI() string
	LocalName() string
	Prefix() string
	SetPrefix(prefix string) error
	OwnerDocument() *Document
	ParentNode() Node
	ChildNodes() []Node
	FirstChild() Node
	LastChild() Node
	NextSibling() Node
	PreviousSibling() Node
	HasChildNodes() bool
	AppendChild(newChild Node) error
	InsertBefore(newChild, refChild Node) error
	ReplaceChild(newChild, oldChild Node) error
	RemoveChild(oldChild Node) error
	TextContent() string
	SetTextContent(s string) error
	IsReadonly() bool
	GetUserData(key string) any
	SetUserData(key string, value any, handler UserDataHandler) any
	IsEqualNode(other Node) bool
	LookupNamespaceURI(prefix string) (string, bool)
	LookupPrefix(uri string) string
	IsDefaultNamespace(uri string) bool
	CloneNode(deep bool) Node
	CompareDocumentPosition(other Node) DocumentPosition
	Location() Location

	// base exposes the shared embedded state to in-package tree
	// algorithms. Exported Node methods are all implemented in terms of
	// it, so external packages never need it.
	base() *nodeBase
}

// UserDataHandler receives CLONED/IMPORTED/ADOPTED/RENAMED notifications
// (spec §4.3.1 step 6, §5 "User-data handlers are invoked synchronously").
type UserDataHandler func(operation UserDataOperation, key string, value any, src, dst Node)

type UserDataOperation int

const (
	UserDataCloned UserDataOperation = iota
	UserDataImported
	UserDataAdopted
	UserDataRenamed
)

type userDataEntry struct {
	value   any
	handler UserDataHandler
}

// nodeBase is embedded by every concrete node type. It carries every field
// spec §3 says "every node has" plus the container/child bookkeeping that
// the unified mutation operation (mutate.go) needs. Kind-specific fields
// (CharacterData's data string, Element's attribute map, ...) live on the
// concrete types.
type nodeBase struct {
	self Node // back-reference to the wrapping concrete node, set by initBase

	kind NodeKind

	// namespaceURI stores NoNamespace when the node was produced by a
	// non-namespace-aware factory method (spec §3); NamespaceURI()
	// translates that sentinel to "" for callers, while internal code
	// (setPrefix validation, namespace fixup) can still tell the two
	// apart via the unexported field.
	namespaceURI string
	localName    string
	prefix       string

	ownerDocument *Document

	// container is the structural parent for child-sequence node kinds,
	// or the owning map/element for Attr, Entity, Notation, and the
	// declaration kinds (spec §3 "Node identity and ownership").
	container Node

	children []Node

	userData map[string]userDataEntry

	loc      Location
	seqN     uint64
	readonly bool
}

// initBase wires the back-reference and kind tag. Every concrete
// constructor must call this before the node is usable.
func (n *nodeBase) initBase(self Node, kind NodeKind) {
	n.self = self
	n.kind = kind
}

func (n *nodeBase) base() *nodeBase { return n }

func (n *nodeBase) Kind() NodeKind { return n.kind }

func (n *nodeBase) NamespaceURI() string {
	if n.namespaceURI == NoNamespace {
		return ""
	}
	return n.namespaceURI
}

func (n *nodeBase) LocalName() string { return n.localName }
func (n *nodeBase) Prefix() string    { return n.prefix }

// SetPrefix enforces invariant 4 (spec §3): the namespace URI must be
// non-null and non-sentinel, and the xml/xmlns bindings are fixed.
func (n *nodeBase) SetPrefix(prefix string) error {
	if n.readonly {
		return newDOMException(NoModificationAllowedErr, "node is readonly")
	}
	if prefix != "" && !isValidNCName(prefix) {
		return newDOMException(InvalidCharacterErr, "invalid prefix: "+prefix)
	}
	if prefix != "" {
		if n.namespaceURI == "" || n.namespaceURI == NoNamespace {
			return newDOMException(NamespaceErr, "cannot set prefix without a namespace URI")
		}
		if prefix == "xml" && n.namespaceURI != XMLNamespace {
			return newDOMException(NamespaceErr, "prefix xml requires the XML namespace")
		}
		if prefix == "xmlns" && n.namespaceURI != XMLNSNamespace {
			return newDOMException(NamespaceErr, "prefix xmlns requires the XMLNS namespace")
		}
	}
	n.prefix = prefix
	n.bumpSequence()
	return nil
}

func (n *nodeBase) OwnerDocument() *Document { return n.ownerDocument }

// ParentNode exposes the container only for node kinds placed in
// child-sequences: Entity, Notation and the declaration kinds report nil
// here and Attr overrides it to do the same, while container is still
// tracked for internal use.
func (n *nodeBase) ParentNode() Node {
	switch n.kind {
	case EntityNodeKind, NotationNodeKind, ElementDeclarationNodeKind,
		AttlistDeclarationNodeKind, AttributeDeclarationNodeKind:
		return nil
	}
	return n.container
}

func (n *nodeBase) ChildNodes() []Node {
	out := make([]Node, len(n.children))
	copy(out, n.children)
	return out
}

func (n *nodeBase) FirstChild() Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

func (n *nodeBase) LastChild() Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

func (n *nodeBase) HasChildNodes() bool { return len(n.children) > 0 }

func (n *nodeBase) NextSibling() Node     { return siblingOffset(n.self, 1) }
func (n *nodeBase) PreviousSibling() Node { return siblingOffset(n.self, -1) }

func siblingOffset(n Node, delta int) Node {
	parent := n.base().container
	if parent == nil {
		return nil
	}
	siblings := parent.base().children
	for i, c := range siblings {
		if c == n {
			j := i + delta
			if j < 0 || j >= len(siblings) {
				return nil
			}
			return siblings[j]
		}
	}
	return nil
}

func (n *nodeBase) AppendChild(newChild Node) error {
	return mutate(n.self, newChild, nil, mutateAppend)
}

func (n *nodeBase) InsertBefore(newChild, refChild Node) error {
	return mutate(n.self, newChild, refChild, mutateInsertBefore)
}

func (n *nodeBase) ReplaceChild(newChild, oldChild Node) error {
	return mutate(n.self, newChild, oldChild, mutateReplace)
}

func (n *nodeBase) RemoveChild(oldChild Node) error {
	return mutate(n.self, nil, oldChild, mutateRemove)
}

func (n *nodeBase) IsReadonly() bool { return n.readonly }

func (n *nodeBase) GetUserData(key string) any {
	if n.userData == nil {
		return nil
	}
	return n.userData[key].value
}

func (n *nodeBase) SetUserData(key string, value any, handler UserDataHandler) any {
	if n.userData == nil {
		n.userData = make(map[string]userDataEntry)
	}
	old := n.userData[key].value
	if value == nil && handler == nil {
		delete(n.userData, key)
		return old
	}
	n.userData[key] = userDataEntry{value: value, handler: handler}
	return old
}

func (n *nodeBase) fireUserData(op UserDataOperation, dst Node) {
	for key, entry := range n.userData {
		if entry.handler != nil {
			entry.handler(op, key, entry.value, n.self, dst)
		}
	}
}

func (n *nodeBase) Location() Location { return n.loc }

// bumpSequence implements invariant 9: every mutation increments the
// containing subtree's sequence counter up to the root, invalidating
// cached tag-name lists (nodelist.go compares against this per-node count).
func (n *nodeBase) bumpSequence() {
	cur := n.self
	for cur != nil {
		b := cur.base()
		b.seqN++
		cur = b.container
	}
}

func (n *nodeBase) CloneNode(deep bool) Node {
	return cloneSubtree(n.self, nil, deep, false)
}

func (n *nodeBase) IsEqualNode(other Node) bool {
	return isEqualNode(n.self, other)
}

func (n *nodeBase) CompareDocumentPosition(other Node) DocumentPosition {
	return compareDocumentPosition(n.self, other)
}

func (n *nodeBase) LookupNamespaceURI(prefix string) (string, bool) {
	return lookupNamespaceURI(n.self, prefix)
}

func (n *nodeBase) LookupPrefix(uri string) string {
	return lookupPrefix(n.self, uri, map[string]bool{})
}

func (n *nodeBase) IsDefaultNamespace(uri string) bool {
	found, ok := lookupNamespaceURI(n.self, "")
	return ok && found == uri
}

// NodeName default: overridden by kinds whose name isn't simply the
// qualified local/prefix pair (Document, DocumentFragment, Text, Comment).
func (n *nodeBase) NodeName() string {
	if n.prefix != "" {
		return n.prefix + ":" + n.localName
	}
	return n.localName
}

// default TextContent/SetTextContent; overridden where the spec's rules
// differ per kind (textcontent.go holds the dispatch).
func (n *nodeBase) TextContent() string {
	return textContent(n.self)
}

func (n *nodeBase) SetTextContent(s string) error {
	return setTextContent(n.self, s)
}
