// Package dom implements a standalone, non-validating XML document model and
// processor conforming to the W3C DOM Level 3 Core and Load/Save
// recommendations: an in-memory node tree, the recursive algorithms that
// enforce its invariants under mutation (clone, import, adopt, normalize,
// namespace lookup), and a name->value processing-parameter configuration
// shared by the parser and serializer subpackages.
//
// xmldom/dom v1.0 - "The Conforming In-Memory XML Tree"
// ========================================================
// A single-threaded, synchronous DOM Core + Load/Save implementation.
// Unlike the wrapping-and-mapping style of a dynamic XML-to-map reader, every
// node here is a typed, mutable tree participant with full namespace,
// readonly, and attribute-defaulting semantics.
package dom

// NodeKind tags the discriminated family of node kinds. Kind-specific
// behavior (cloning, normalizing, equality) dispatches on this tag rather
// than through open-class extension.
type NodeKind int

const (
	DocumentNodeKind NodeKind = iota
	DocumentFragmentNodeKind
	ElementNodeKind
	AttributeNodeKind
	TextNodeKind
	CDATASectionNodeKind
	CommentNodeKind
	ProcessingInstructionNodeKind
	EntityReferenceNodeKind
	DocumentTypeNodeKind
	EntityNodeKind
	NotationNodeKind
	ElementDeclarationNodeKind
	AttlistDeclarationNodeKind
	AttributeDeclarationNodeKind
)

func (k NodeKind) String() string {
	switch k {
	case DocumentNodeKind:
		return "#document"
	case DocumentFragmentNodeKind:
		return "#document-fragment"
	case ElementNodeKind:
		return "element"
	case AttributeNodeKind:
		return "attribute"
	case TextNodeKind:
		return "#text"
	case CDATASectionNodeKind:
		return "#cdata-section"
	case CommentNodeKind:
		return "#comment"
	case ProcessingInstructionNodeKind:
		return "processing-instruction"
	case EntityReferenceNodeKind:
		return "entity-reference"
	case DocumentTypeNodeKind:
		return "document-type"
	case EntityNodeKind:
		return "entity"
	case NotationNodeKind:
		return "notation"
	case ElementDeclarationNodeKind:
		return "element-declaration"
	case AttlistDeclarationNodeKind:
		return "attlist-declaration"
	case AttributeDeclarationNodeKind:
		return "attribute-declaration"
	default:
		return "unknown"
	}
}

// Special namespace URIs (§6).
const (
	XMLNamespace   = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
	DTDTypeURI     = "http://www.w3.org/TR/REC-xml"
)

// NoNamespace is the sentinel namespace URI meaning "created by a
// non-namespace API" (createElement as opposed to createElementNS).
const NoNamespace = "\x00pxdom-no-namespace\x00"

// Feature strings advertised by the implementation (§6).
var supportedFeatures = map[string][]string{
	"xml":        {"1.0", "2.0", "3.0"},
	"core":       {"2.0", "3.0"},
	"ls":         {"3.0"},
	"xmlversion": {"1.0", "1.1"},
}

// Implementation is the process-wide DOM implementation singleton (§9: "Lift
// these to process-wide constants initialized at startup").
var Implementation implementation

type implementation struct{}

// HasFeature reports whether the implementation and version string (matched
// loosely: an empty version matches any) is supported.
func (implementation) HasFeature(feature, version string) bool {
	versions, ok := supportedFeatures[lowerASCII(feature)]
	if !ok {
		return false
	}
	if version == "" {
		return true
	}
	for _, v := range versions {
		if v == version {
			return true
		}
	}
	return false
}

// CreateDocument builds a new Document with an optional document-element
// namespace/qualified-name and an optional doctype, mirroring
// DOMImplementation.createDocument from the original.
func (implementation) CreateDocument(namespaceURI, qualifiedName string, doctype *DocumentType) (*Document, error) {
	doc := NewDocument()
	if doctype != nil {
		if doctype.ownerDocument != nil {
			return nil, newDOMException(WrongDocumentErr, "doctype already owned by another document")
		}
		if err := doc.AppendChild(doctype); err != nil {
			return nil, err
		}
	}
	if qualifiedName != "" {
		el, err := doc.CreateElementNS(namespaceURI, qualifiedName)
		if err != nil {
			return nil, err
		}
		if err := doc.AppendChild(el); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// CreateDocumentType builds a detached DocumentType node, owned by no
// document until inserted (spec §3: "null only transiently during
// construction or for detached DocumentType produced by the factory").
func (implementation) CreateDocumentType(qualifiedName, publicID, systemID string) (*DocumentType, error) {
	if !isValidName(qualifiedName) {
		return nil, newDOMException(InvalidCharacterErr, "invalid qualified name: "+qualifiedName)
	}
	return newDocumentType(qualifiedName, publicID, systemID), nil
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
