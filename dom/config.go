package dom

// DOMConfiguration is the named parameter set normalizeDocument and the
// parser/serializer packages consult (spec §4.2, §6). Parameters are
// exposed both as typed fields, for the tree algorithms in this package,
// and through the string-keyed GetParameter/SetParameter/CanSetParameter
// trio, for parity with callers that want to configure it generically (for
// example, the canonical-form switch cmd/xmldom's canon command sets).
type DOMConfiguration struct {
	CanonicalForm               bool
	CDATASections                bool
	CheckCharacterNormalization bool
	Comments                     bool
	ElementContentWhitespace    bool
	Entities                     bool
	ErrorHandler                 ErrorHandler
	Namespaces                   bool
	NamespaceDeclarations       bool
	NormalizeCharacters         bool
	SplitCDATASections          bool
	Validate                     bool
	Normalizer                   CharacterNormalizer
}

func newDOMConfiguration() *DOMConfiguration {
	return &DOMConfiguration{
		CDATASections:            true,
		Comments:                  true,
		ElementContentWhitespace: true,
		Entities:                  true,
		Namespaces:                true,
		NamespaceDeclarations:    true,
		SplitCDATASections:       true,
		Normalizer:                nfcCharacterNormalizer{},
	}
}

var supportedParameters = []string{
	"canonical-form", "cdata-sections", "check-character-normalization",
	"comments", "datatype-normalization", "element-content-whitespace",
	"entities", "error-handler", "infoset", "namespaces",
	"namespace-declarations", "normalize-characters",
	"split-cdata-sections", "validate", "validate-if-schema", "well-formed",
}

// CanSetParameter reports whether value is an acceptable setting for name.
// A handful of parameters this implementation does not vary (schema
// validation is out of scope) are only settable to their fixed value.
func (c *DOMConfiguration) CanSetParameter(name string, value any) bool {
	switch name {
	case "well-formed":
		b, ok := value.(bool)
		return ok && b
	case "datatype-normalization", "validate-if-schema":
		b, ok := value.(bool)
		return ok && !b
	case "error-handler":
		if value == nil {
			return true
		}
		_, ok := value.(ErrorHandler)
		return ok
	case "canonical-form", "cdata-sections", "check-character-normalization",
		"comments", "element-content-whitespace", "entities", "infoset",
		"namespaces", "namespace-declarations", "normalize-characters",
		"split-cdata-sections", "validate":
		_, ok := value.(bool)
		return ok
	default:
		return false
	}
}

// SetParameter applies value to name, returning NOT_SUPPORTED_ERR if
// CanSetParameter would reject it.
func (c *DOMConfiguration) SetParameter(name string, value any) error {
	if !c.CanSetParameter(name, value) {
		return newDOMException(NotSupportedErr, "unsupported parameter: "+name)
	}
	if name == "error-handler" {
		if value == nil {
			c.ErrorHandler = nil
		} else {
			c.ErrorHandler = value.(ErrorHandler)
		}
		return nil
	}
	if name == "well-formed" || name == "datatype-normalization" || name == "validate-if-schema" {
		return nil // fixed, already validated above
	}
	b := value.(bool)
	switch name {
	case "infoset":
		if b {
			c.applyInfoset()
		}
	case "canonical-form":
		c.CanonicalForm = b
		if b {
			c.applyCanonicalForm()
		}
	case "cdata-sections":
		c.CDATASections = b
	case "check-character-normalization":
		c.CheckCharacterNormalization = b
	case "comments":
		c.Comments = b
	case "element-content-whitespace":
		c.ElementContentWhitespace = b
	case "entities":
		c.Entities = b
	case "namespaces":
		c.Namespaces = b
	case "namespace-declarations":
		c.NamespaceDeclarations = b
	case "normalize-characters":
		c.NormalizeCharacters = b
	case "split-cdata-sections":
		c.SplitCDATASections = b
	case "validate":
		c.Validate = b
	}
	return nil
}

// GetParameter returns the current value and whether name is recognized.
func (c *DOMConfiguration) GetParameter(name string) (any, bool) {
	switch name {
	case "canonical-form":
		return c.CanonicalForm, true
	case "cdata-sections":
		return c.CDATASections, true
	case "check-character-normalization":
		return c.CheckCharacterNormalization, true
	case "comments":
		return c.Comments, true
	case "datatype-normalization":
		return false, true
	case "element-content-whitespace":
		return c.ElementContentWhitespace, true
	case "entities":
		return c.Entities, true
	case "error-handler":
		return c.ErrorHandler, true
	case "namespaces":
		return c.Namespaces, true
	case "namespace-declarations":
		return c.NamespaceDeclarations, true
	case "normalize-characters":
		return c.NormalizeCharacters, true
	case "split-cdata-sections":
		return c.SplitCDATASections, true
	case "validate":
		return c.Validate, true
	case "validate-if-schema":
		return false, true
	case "well-formed":
		return true, true
	case "infoset":
		return c.isInfoset(), true
	default:
		return nil, false
	}
}

// ParameterNames lists every parameter name this configuration recognizes.
func (c *DOMConfiguration) ParameterNames() []string {
	out := make([]string, len(supportedParameters))
	copy(out, supportedParameters)
	return out
}

func (c *DOMConfiguration) applyInfoset() {
	c.Entities = false
	c.CDATASections = false
	c.Namespaces = true
	c.NamespaceDeclarations = true
	c.Comments = true
	c.ElementContentWhitespace = true
	c.CheckCharacterNormalization = false
	c.Validate = false
}

func (c *DOMConfiguration) isInfoset() bool {
	return !c.Entities && !c.CDATASections && c.Namespaces &&
		c.NamespaceDeclarations && c.Comments && c.ElementContentWhitespace &&
		!c.Validate && !c.CheckCharacterNormalization
}

func (c *DOMConfiguration) applyCanonicalForm() {
	c.Entities = false
	c.CDATASections = false
	c.Namespaces = true
	c.NamespaceDeclarations = true
	c.NormalizeCharacters = false
	c.ElementContentWhitespace = true
}
