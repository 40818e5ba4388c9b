package dom

// clone.go implements the single recursive traversal frame spec §4.3.1
// describes, parameterized by (targetDoc, deep, makeReadonly): plain
// CloneNode calls it with targetDoc == nil (stay in the same document) and
// makeReadonly == false; ImportNode (adopt.go) calls it with targetDoc set,
// while AdoptNode moves the original node rather than copying it;
// normalizeDocument's entity-reference-expansion pass (normalize.go) copies
// the replacement children with makeReadonly == false. No caller currently
// passes makeReadonly == true.

// cloneable is implemented by every concrete node type: it produces a new,
// parentless, childless node of the same concrete type with its
// kind-specific scalar fields copied and its ownerDocument set to doc.
type cloneable interface {
	shallowClone(doc *Document) Node
}

func cloneSubtree(src Node, targetDoc *Document, deep bool, makeReadonly bool) Node {
	doc := targetDoc
	if doc == nil {
		doc = src.OwnerDocument()
	}
	dst := src.(cloneable).shallowClone(doc)
	if src.Kind() == DocumentNodeKind {
		doc = dst.(*Document)
	}

	if el, ok := src.(*Element); ok {
		dstEl := dst.(*Element)
		for _, a := range el.attributes.items() {
			ac := cloneSubtree(a, doc, true, makeReadonly).(*Attr)
			ac.container = dstEl
			dstEl.attributes.setNamedItem(ac)
		}
	}

	switch src.Kind() {
	case AttributeNodeKind:
		// An Attr's children represent its value: always cloned, deep or
		// not (spec §4.3.1, matching DOM3's cloneNode note for Attr).
		cloneChildren(src, dst, doc, makeReadonly)
	case DocumentNodeKind, DocumentFragmentNodeKind, ElementNodeKind, EntityReferenceNodeKind:
		if deep {
			cloneChildren(src, dst, doc, makeReadonly)
		}
	case DocumentTypeNodeKind:
		sdt := src.(*DocumentType)
		ddt := dst.(*DocumentType)
		cloneNamedMap(sdt.entities, ddt.entities, ddt, doc, makeReadonly)
		cloneNamedMap(sdt.notations, ddt.notations, ddt, doc, makeReadonly)
		cloneNamedMap(sdt.elements, ddt.elements, ddt, doc, makeReadonly)
		cloneNamedMap(sdt.attlists, ddt.attlists, ddt, doc, makeReadonly)
	case AttlistDeclarationNodeKind:
		sal := src.(*AttlistDeclaration)
		dal := dst.(*AttlistDeclaration)
		cloneNamedMap(sal.attributes, dal.attributes, dal, doc, makeReadonly)
	}

	if makeReadonly {
		dst.base().readonly = true
	}
	src.base().fireUserData(UserDataCloned, dst)
	return dst
}

func cloneChildren(src, dst Node, doc *Document, makeReadonly bool) {
	db := dst.base()
	for _, child := range src.ChildNodes() {
		c := cloneSubtree(child, doc, true, makeReadonly)
		c.base().container = dst
		db.children = append(db.children, c)
	}
}

func cloneNamedMap(src, dst *NamedNodeMap, container Node, doc *Document, makeReadonly bool) {
	for _, n := range src.items() {
		c := cloneSubtree(n, doc, true, makeReadonly)
		c.base().container = container
		dst.setNamedItem(c)
	}
}

// setReadonlyDeep implements invariant 8 (spec §3): setting a node readonly
// propagates to its entire subtree, including attribute and DocumentType
// maps. It is the shared primitive behind DocumentType nodes (always
// readonly, spec §4.3.5) and the normalize/freeze passes.
func setReadonlyDeep(n Node, readonly bool) {
	n.base().readonly = readonly
	if el, ok := n.(*Element); ok {
		for _, a := range el.attributes.items() {
			setReadonlyDeep(a, readonly)
		}
	}
	if dt, ok := n.(*DocumentType); ok {
		for _, e := range dt.entities.items() {
			setReadonlyDeep(e, readonly)
		}
		for _, nt := range dt.notations.items() {
			setReadonlyDeep(nt, readonly)
		}
		for _, e := range dt.elements.items() {
			setReadonlyDeep(e, readonly)
		}
		for _, a := range dt.attlists.items() {
			setReadonlyDeep(a, readonly)
		}
	}
	for _, c := range n.base().children {
		setReadonlyDeep(c, readonly)
	}
}

// renameNode implements the DOMImplementation-level rename primitive the
// rest of the spec (SPEC_FULL §13, renameNode supplement) exposes on
// Document: change the name/namespace/prefix of an existing node in place,
// firing RENAMED user data notifications, rather than replacing it with a
// freshly cloned node.
func renameNode(n Node, namespaceURI, qualifiedName string) error {
	b := n.base()
	if b.readonly {
		return newDOMException(NoModificationAllowedErr, "node is readonly")
	}
	if n.Kind() != ElementNodeKind && n.Kind() != AttributeNodeKind {
		return newDOMException(NotSupportedErr, "renameNode only supports Element and Attr")
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
	b.namespaceURI = namespaceURI
	if namespaceURI == "" {
		b.namespaceURI = NoNamespace
	}
	b.localName = local
	b.prefix = prefix
	b.fireUserData(UserDataRenamed, n)
	b.bumpSequence()
	return nil
}
