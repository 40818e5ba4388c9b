package parser

import (
	"strings"

	"github.com/arturoeanton/xmldom/dom"
)

// dtd.go parses an internal DTD subset's ENTITY/NOTATION/ELEMENT/ATTLIST
// declarations into the structured maps dom.DocumentType carries (spec §4.4
// "DTD internal subset"). encoding/xml's Decoder surfaces the subset only as
// the raw bytes of a xml.Directive token, so this is a small hand-rolled
// scanner rather than a generalization of anything in the teacher (which
// never looks inside a DOCTYPE at all) -- grounded instead on the same
// read-until-balanced-delimiter shape the teacher's sanitizeSoup (util.go)
// uses for its tag-balancing regexes, expressed here without regexp because
// quoted literals inside a declaration can themselves contain '>' and '<'.

// declScanner walks a DOCTYPE internal subset's raw text, yielding one
// top-level markup declaration ("<!...>") at a time with comments and
// whitespace discarded, and with parameter-entity references ("%name;")
// spliced in from decls already seen by the time they're referenced --
// the common case for a self-contained internal subset.
type declScanner struct {
	text    string
	pos     int
	peRefs  map[string]string
}

func newDeclScanner(text string) *declScanner {
	return &declScanner{text: text, peRefs: map[string]string{}}
}

// next returns the next "<!...>" declaration's inner text (without the
// delimiters), with any known parameter-entity references expanded, or ""
// with ok=false at end of input.
func (s *declScanner) next() (decl string, ok bool) {
	for {
		s.skipWhitespace()
		if s.pos >= len(s.text) {
			return "", false
		}
		if strings.HasPrefix(s.text[s.pos:], "<!--") {
			end := strings.Index(s.text[s.pos+4:], "-->")
			if end < 0 {
				s.pos = len(s.text)
				return "", false
			}
			s.pos += 4 + end + 3
			continue
		}
		if !strings.HasPrefix(s.text[s.pos:], "<!") {
			// Stray text (e.g. a conditional-section marker this
			// implementation does not model); skip one byte and retry
			// rather than looping forever.
			s.pos++
			continue
		}
		start := s.pos + 2
		i := start
		depth := 0
		for i < len(s.text) {
			switch s.text[i] {
			case '\'', '"':
				q := s.text[i]
				i++
				for i < len(s.text) && s.text[i] != q {
					i++
				}
			case '[':
				depth++
			case ']':
				depth--
			case '>':
				if depth <= 0 {
					inner := s.text[start:i]
					s.pos = i + 1
					return s.expandPE(strings.TrimSpace(inner)), true
				}
			}
			i++
		}
		s.pos = len(s.text)
		return strings.TrimSpace(s.text[start:]), true
	}
}

func (s *declScanner) skipWhitespace() {
	for s.pos < len(s.text) {
		switch s.text[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

// expandPE splices in the replacement text of any "%name;" parameter
// entity reference already recorded in s.peRefs. Unrecognized references
// are left as-is; the caller's declaration-field parser will simply fail to
// match the surrounding grammar for that field, which is reported the same
// way a malformed declaration is.
func (s *declScanner) expandPE(decl string) string {
	if !strings.Contains(decl, "%") {
		return decl
	}
	var sb strings.Builder
	for i := 0; i < len(decl); i++ {
		if decl[i] == '%' {
			if j := strings.IndexByte(decl[i+1:], ';'); j >= 0 {
				name := decl[i+1 : i+1+j]
				if repl, ok := s.peRefs[name]; ok {
					sb.WriteString(repl)
					i += j + 1
					continue
				}
			}
		}
		sb.WriteByte(decl[i])
	}
	return sb.String()
}

// parseInternalSubset populates dt's entities/notations/elements/attlists
// maps from the raw subset text between a DOCTYPE's '[' and ']'.
func parseInternalSubset(doc *dom.Document, dt *dom.DocumentType, subset string) []*dom.DOMError {
	var errs []*dom.DOMError
	sc := newDeclScanner(subset)
	for {
		decl, ok := sc.next()
		if !ok {
			break
		}
		fields := splitDeclFields(decl)
		if len(fields) == 0 {
			continue
		}
		switch strings.ToUpper(fields[0]) {
		case "ENTITY":
			if err := parseEntityDecl(doc, dt, fields[1:], sc); err != nil {
				errs = append(errs, err)
			}
		case "NOTATION":
			if err := parseNotationDecl(doc, dt, fields[1:]); err != nil {
				errs = append(errs, err)
			}
		case "ELEMENT":
			if err := parseElementDecl(doc, dt, fields[1:]); err != nil {
				errs = append(errs, err)
			}
		case "ATTLIST":
			if err := parseAttlistDecl(doc, dt, fields[1:]); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}

// splitDeclFields tokenizes a declaration's inner text on whitespace,
// keeping single- or double-quoted literals (including embedded whitespace)
// as one field and content-model parenthesized groups as one field.
func splitDeclFields(decl string) []string {
	var fields []string
	i := 0
	for i < len(decl) {
		for i < len(decl) && isSpace(decl[i]) {
			i++
		}
		if i >= len(decl) {
			break
		}
		switch decl[i] {
		case '\'', '"':
			q := decl[i]
			j := i + 1
			for j < len(decl) && decl[j] != q {
				j++
			}
			fields = append(fields, decl[i:minInt(j+1, len(decl))])
			i = j + 1
		case '(':
			depth := 0
			j := i
			for j < len(decl) {
				if decl[j] == '(' {
					depth++
				} else if decl[j] == ')' {
					depth--
					if depth == 0 {
						j++
						break
					}
				}
				j++
			}
			fields = append(fields, decl[i:j])
			i = j
		default:
			j := i
			for j < len(decl) && !isSpace(decl[j]) && decl[j] != '(' {
				j++
			}
			fields = append(fields, decl[i:j])
			i = j
		}
	}
	return fields
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// parseEntityDecl handles both general and parameter entity declarations.
// A successfully parsed parameter entity's replacement text is recorded in
// sc.peRefs so later declarations in the same subset can reference it.
func parseEntityDecl(doc *dom.Document, dt *dom.DocumentType, fields []string, sc *declScanner) *dom.DOMError {
	if len(fields) == 0 {
		return &dom.DOMError{Severity: dom.SeverityError, Type: "malformed-entity-decl", Message: "ENTITY declaration has no name"}
	}
	isParam := false
	if fields[0] == "%" {
		isParam = true
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return &dom.DOMError{Severity: dom.SeverityError, Type: "malformed-entity-decl", Message: "ENTITY declaration has no name"}
	}
	name := fields[0]
	rest := fields[1:]
	if len(rest) == 0 {
		return &dom.DOMError{Severity: dom.SeverityError, Type: "malformed-entity-decl", Message: "entity " + name + " has no value"}
	}
	if isUpper(rest[0], "SYSTEM") || isUpper(rest[0], "PUBLIC") {
		publicID, systemID, notation := parseExternalID(rest)
		if isParam {
			// External parameter entities are not fetched (Non-goal: no
			// external-subset or external-entity retrieval).
			return nil
		}
		dt.DeclareExternalEntity(doc, name, publicID, systemID, notation)
		return nil
	}
	value := unquote(rest[0])
	if isParam {
		sc.peRefs[name] = value
		return nil
	}
	dt.DeclareEntity(doc, name, value)
	return nil
}

func isUpper(s, want string) bool { return strings.EqualFold(s, want) }

// parseExternalID reads a SYSTEM "sysid" or PUBLIC "pubid" "sysid" clause,
// with an optional trailing NDATA name for an unparsed-entity declaration.
func parseExternalID(fields []string) (publicID, systemID, notation string) {
	if len(fields) == 0 {
		return "", "", ""
	}
	i := 0
	if strings.EqualFold(fields[0], "PUBLIC") && len(fields) >= 3 {
		publicID = unquote(fields[1])
		systemID = unquote(fields[2])
		i = 3
	} else if strings.EqualFold(fields[0], "SYSTEM") && len(fields) >= 2 {
		systemID = unquote(fields[1])
		i = 2
	}
	if i+1 < len(fields) && strings.EqualFold(fields[i], "NDATA") {
		notation = fields[i+1]
	}
	return
}

func parseNotationDecl(doc *dom.Document, dt *dom.DocumentType, fields []string) *dom.DOMError {
	if len(fields) == 0 {
		return &dom.DOMError{Severity: dom.SeverityError, Type: "malformed-notation-decl", Message: "NOTATION declaration has no name"}
	}
	name := fields[0]
	publicID, systemID, _ := parseExternalID(fields[1:])
	dt.DeclareNotation(doc, name, publicID, systemID)
	return nil
}

func parseElementDecl(doc *dom.Document, dt *dom.DocumentType, fields []string) *dom.DOMError {
	if len(fields) < 2 {
		return &dom.DOMError{Severity: dom.SeverityError, Type: "malformed-element-decl", Message: "ELEMENT declaration is incomplete"}
	}
	name := fields[0]
	content := parseContentModel(fields[1])
	dt.DeclareElement(doc, name, content)
	return nil
}

// parseContentModel interprets the single token following an ELEMENT
// declaration's name: EMPTY, ANY, a mixed-content group "(#PCDATA|a|b)*", or
// a child-content group such as "(a,b?,(c|d)+)".
func parseContentModel(token string) *dom.ContentDeclaration {
	switch strings.ToUpper(token) {
	case "EMPTY":
		return &dom.ContentDeclaration{}
	case "ANY":
		return &dom.ContentDeclaration{Any: true}
	}
	inner := token
	if len(inner) >= 2 && inner[0] == '(' {
		close := strings.LastIndexByte(inner, ')')
		if close > 0 {
			inner = inner[1:close]
		}
	}
	if strings.Contains(inner, "#PCDATA") {
		cd := &dom.ContentDeclaration{Mixed: true}
		for _, part := range strings.Split(inner, "|") {
			part = strings.TrimSpace(part)
			if part != "" && part != "#PCDATA" {
				cd.Children = append(cd.Children, strings.TrimRight(part, "*+?"))
			}
		}
		return cd
	}
	cd := &dom.ContentDeclaration{}
	sep := strings.IndexAny(inner, ",|")
	if sep >= 0 {
		cd.SetSequence(inner[sep] == ',')
		splitCh := byte(',')
		if inner[sep] == '|' {
			splitCh = '|'
		}
		for _, part := range strings.Split(inner, string(splitCh)) {
			part = strings.TrimSpace(part)
			part = strings.TrimRight(part, "*+?")
			part = strings.TrimPrefix(part, "(")
			part = strings.TrimSuffix(part, ")")
			if part != "" {
				cd.Children = append(cd.Children, part)
			}
		}
	} else {
		name := strings.TrimRight(strings.TrimSpace(inner), "*+?")
		if name != "" {
			cd.Children = []string{name}
		}
	}
	return cd
}

func parseAttlistDecl(doc *dom.Document, dt *dom.DocumentType, fields []string) *dom.DOMError {
	if len(fields) == 0 {
		return &dom.DOMError{Severity: dom.SeverityError, Type: "malformed-attlist-decl", Message: "ATTLIST declaration has no element name"}
	}
	elemName := fields[0]
	rest := fields[1:]
	decl := dt.AttlistFor(doc, elemName)
	for len(rest) > 0 {
		if len(rest) < 2 {
			break
		}
		attrName := rest[0]
		typ, enumValues, consumed := parseAttrType(rest[1:])
		rest = rest[1+consumed:]
		if len(rest) == 0 {
			break
		}
		def, n := parseAttrDefault(rest)
		rest = rest[n:]
		decl.DeclareAttribute(doc, attrName, typ, enumValues, def)
	}
	return nil
}

// parseAttrType reads an ATTLIST attribute's type clause, returning how many
// fields it consumed.
func parseAttrType(fields []string) (dom.AttributeType, []string, int) {
	if len(fields) == 0 {
		return dom.AttrTypeCDATA, nil, 0
	}
	tok := fields[0]
	if strings.HasPrefix(tok, "(") {
		inner := strings.TrimSuffix(strings.TrimPrefix(tok, "("), ")")
		var values []string
		for _, v := range strings.Split(inner, "|") {
			values = append(values, strings.TrimSpace(v))
		}
		return dom.AttrTypeEnumeration, values, 1
	}
	switch strings.ToUpper(tok) {
	case "CDATA":
		return dom.AttrTypeCDATA, nil, 1
	case "ID":
		return dom.AttrTypeID, nil, 1
	case "IDREF":
		return dom.AttrTypeIDREF, nil, 1
	case "IDREFS":
		return dom.AttrTypeIDREFS, nil, 1
	case "ENTITY":
		return dom.AttrTypeENTITY, nil, 1
	case "ENTITIES":
		return dom.AttrTypeENTITIES, nil, 1
	case "NMTOKEN":
		return dom.AttrTypeNMTOKEN, nil, 1
	case "NMTOKENS":
		return dom.AttrTypeNMTOKENS, nil, 1
	case "NOTATION":
		if len(fields) >= 2 && strings.HasPrefix(fields[1], "(") {
			inner := strings.TrimSuffix(strings.TrimPrefix(fields[1], "("), ")")
			var values []string
			for _, v := range strings.Split(inner, "|") {
				values = append(values, strings.TrimSpace(v))
			}
			return dom.AttrTypeNOTATION, values, 2
		}
		return dom.AttrTypeNOTATION, nil, 1
	default:
		return dom.AttrTypeCDATA, nil, 1
	}
}

func parseAttrDefault(fields []string) (*dom.AttributeDefault, int) {
	if len(fields) == 0 {
		return &dom.AttributeDefault{Kind: dom.AttrDefaultImplied}, 0
	}
	switch strings.ToUpper(fields[0]) {
	case "#IMPLIED":
		return &dom.AttributeDefault{Kind: dom.AttrDefaultImplied}, 1
	case "#REQUIRED":
		return &dom.AttributeDefault{Kind: dom.AttrDefaultRequired}, 1
	case "#FIXED":
		if len(fields) >= 2 {
			return &dom.AttributeDefault{Kind: dom.AttrDefaultFixed, HasValue: true, Value: unquote(fields[1])}, 2
		}
		return &dom.AttributeDefault{Kind: dom.AttrDefaultFixed}, 1
	default:
		return &dom.AttributeDefault{Kind: dom.AttrDefaultValue, HasValue: true, Value: unquote(fields[0])}, 1
	}
}
