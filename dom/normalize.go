package dom

// normalize.go implements normalizeDocument (spec §4.3.5): a fixed sequence
// of independent passes over the tree, each gated by the matching
// DOMConfiguration parameter, recorded as it runs so callers can see what
// actually happened (NormalizePass, spec §9's "processing components
// report which of their optional passes ran").
type NormalizePass struct {
	Name    string
	Applied bool
}

func normalizeDocument(doc *Document) []NormalizePass {
	cfg := doc.config
	var passes []NormalizePass
	record := func(name string, applied bool) {
		passes = append(passes, NormalizePass{Name: name, Applied: applied})
	}

	if !cfg.CDATASections {
		demoteCDATASections(doc)
	}
	record("cdata-sections", !cfg.CDATASections)

	if !cfg.Comments {
		stripComments(doc)
	}
	record("comments", !cfg.Comments)

	if !cfg.Entities {
		expandEntityReferences(doc)
	}
	record("entities", !cfg.Entities)

	mergeAdjacentText(doc)
	record("text-merge", true)

	if cfg.Namespaces {
		fixupNamespaces(doc)
	}
	record("namespaces", cfg.Namespaces)

	if cfg.CheckCharacterNormalization || cfg.NormalizeCharacters {
		normalizeCharacterData(doc, cfg)
	}
	record("normalize-characters", cfg.CheckCharacterNormalization || cfg.NormalizeCharacters)

	if !cfg.ElementContentWhitespace {
		stripElementContentWhitespace(doc)
	}
	record("element-content-whitespace", !cfg.ElementContentWhitespace)

	if dt := doc.Doctype(); dt != nil {
		setReadonlyDeep(dt, true)
	}

	return passes
}

func mergeAdjacentText(n Node) {
	var last *Text
	for _, c := range n.ChildNodes() {
		if t, ok := c.(*Text); ok {
			if last != nil {
				last.data = last.data + t.Data()
				last.base().bumpSequence()
				_ = n.RemoveChild(t)
				continue
			}
			if t.Data() == "" {
				_ = n.RemoveChild(t)
				continue
			}
			last = t
			continue
		}
		last = nil
	}
	for _, c := range n.ChildNodes() {
		mergeAdjacentText(c)
	}
}

func demoteCDATASections(n Node) {
	doc := documentOf(n)
	for _, c := range n.ChildNodes() {
		if cd, ok := c.(*CDATASection); ok {
			t := doc.CreateTextNode(cd.Data())
			_ = n.ReplaceChild(t, cd)
			continue
		}
		demoteCDATASections(c)
	}
}

func stripComments(n Node) {
	for _, c := range n.ChildNodes() {
		if c.Kind() == CommentNodeKind {
			_ = n.RemoveChild(c)
			continue
		}
		stripComments(c)
	}
}

func expandEntityReferences(n Node) {
	for _, c := range n.ChildNodes() {
		if er, ok := c.(*EntityReference); ok {
			ref := Node(er)
			for _, child := range er.ChildNodes() {
				clone := cloneSubtree(child, nil, true, false)
				_ = n.InsertBefore(clone, ref)
			}
			_ = n.RemoveChild(ref)
			continue
		}
		expandEntityReferences(c)
	}
}

func normalizeCharacterData(n Node, cfg *DOMConfiguration) {
	if t, ok := n.(*Text); ok {
		normalized := cfg.Normalizer.Normalize(t.Data())
		if normalized != t.Data() {
			if cfg.CheckCharacterNormalization {
				reportError(cfg.ErrorHandler, &DOMError{
					Severity: SeverityWarning,
					Type:     "check-character-normalization-failure",
					Message:  "character data is not in Unicode Normalization Form C",
					Related:  n,
					Location: n.Location(),
				})
			}
			if cfg.NormalizeCharacters {
				t.data = normalized
				t.base().bumpSequence()
			}
		}
	}
	for _, c := range n.ChildNodes() {
		normalizeCharacterData(c, cfg)
	}
}

// stripElementContentWhitespace removes whitespace-only Text children of
// elements whose declared content model (if any) is element-only, not
// mixed -- the "ignorable whitespace" spec §4.3.5 describes. An element
// with no known ElementDeclaration is left alone: its whitespace cannot be
// classified without a DTD.
func stripElementContentWhitespace(n Node) {
	el, isElement := n.(*Element)
	if isElement {
		doc := el.OwnerDocument()
		if doc != nil {
			if dt := doc.Doctype(); dt != nil {
				if decl, ok := dt.elements.GetNamedItem(el.NodeName()).(*ElementDeclaration); ok &&
					decl.Content != nil && !decl.Content.Mixed && !decl.Content.Any {
					for _, c := range el.ChildNodes() {
						if t, ok := c.(*Text); ok && isAllWhitespace(t.Data()) {
							_ = el.RemoveChild(t)
						}
					}
				}
			}
		}
	}
	for _, c := range n.ChildNodes() {
		stripElementContentWhitespace(c)
	}
}

func isAllWhitespace(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
