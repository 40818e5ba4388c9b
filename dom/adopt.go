package dom

// adopt.go implements the two public entry points spec §4.3.2 builds out of
// the shared clone/rehome primitives: ImportNode copies a foreign subtree
// into this document, AdoptNode moves one in place.

// ImportNode copies source (and, if deep, its descendants) into d,
// returning the copy. The source subtree is left untouched in its original
// document.
func (d *Document) ImportNode(source Node, deep bool) (Node, error) {
	if source == nil {
		return nil, newDOMException(NotSupportedErr, "node is nil")
	}
	if source.Kind() == DocumentNodeKind {
		return nil, newDOMException(NotSupportedErr, "cannot import a Document node")
	}
	clone := cloneSubtree(source, d, deep, false)
	source.base().fireUserData(UserDataImported, clone)
	return clone, nil
}

// AdoptNode moves source (and its descendants) into d: it is detached from
// its current container, if any, every ownerDocument in the subtree is
// reassigned to d, and -- since the node keeps its identity rather than
// being copied -- an adopted Attr is always marked specified (spec §4.3.2).
func (d *Document) AdoptNode(source Node) (Node, error) {
	if source == nil {
		return nil, newDOMException(NotSupportedErr, "node is nil")
	}
	switch source.Kind() {
	case DocumentNodeKind, DocumentTypeNodeKind:
		return nil, newDOMException(NotSupportedErr, "cannot adopt a Document or DocumentType node")
	}
	if source.base().readonly {
		return nil, newDOMException(NoModificationAllowedErr, "node is readonly")
	}
	detachFromContainer(source)
	rehomeOwner(source, d)
	if at, ok := source.(*Attr); ok {
		at.specified = true
	}
	source.base().fireUserData(UserDataAdopted, source)
	return source, nil
}
