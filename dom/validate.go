package dom

import (
	"strings"

	"github.com/hashicorp/go-multierror"
)

// validate.go applies the DTD-derived ATTLIST declarations recorded on a
// Document's DocumentType against the live tree (SPEC_FULL §4.6): required
// attributes present, FIXED values unchanged, enumeration/NOTATION values
// admissible, ID uniqueness, IDREF(S) resolution, NMTOKEN(S) well-formedness.
// This mirrors the teacher's rule-list-walk-and-collect shape in
// xml/validate.go, generalized from ad hoc path rules to DTD declarations
// and reported through *multierror.Error rather than a plain []string so
// callers can range over individual *DOMError-wrapped causes.

// ValidationIssue is one rule violation found by Validate, wrapping the
// same *DOMError shape normalizeDocument and the parser/serializer use for
// processing-time diagnostics (spec §7).
type ValidationIssue struct {
	*DOMError
}

// Validate walks doc against its DocumentType's ATTLIST declarations
// (ELEMENT content models are not checked) and returns every violation found, or nil if doc is
// schema-valid (or carries no doctype, in which case there is nothing to
// check against and Validate always succeeds). A non-nil error is always
// a *multierror.Error whose WrappedErrors are *ValidationIssue.
func Validate(doc *Document) error {
	dt := doc.Doctype()
	if dt == nil {
		return nil
	}
	v := &validator{dt: dt}
	de := doc.DocumentElement()
	if de != nil {
		v.walkElement(de)
	}
	return v.result()
}

type validator struct {
	dt     *DocumentType
	errs   *multierror.Error
	seenID map[string]Node
	idrefs []idrefCheck
}

type idrefCheck struct {
	value string
	multi bool
	el    *Element
	attr  string
}

func (v *validator) fail(sev Severity, typ, msg string, related Node) {
	v.errs = multierror.Append(v.errs, &ValidationIssue{&DOMError{
		Severity: sev,
		Type:     typ,
		Message:  msg,
		Related:  related,
	}})
}

func (v *validator) result() error {
	if v.seenID == nil {
		v.seenID = map[string]Node{}
	}
	for _, chk := range v.idrefs {
		values := []string{chk.value}
		if chk.multi {
			values = strings.Fields(chk.value)
		}
		for _, ref := range values {
			if _, ok := v.seenID[ref]; !ok {
				v.fail(SeverityError, "idref-not-found",
					"attribute "+chk.attr+" references undeclared ID "+ref, chk.el)
			}
		}
	}
	if v.errs == nil {
		return nil
	}
	return v.errs
}

// walkElement validates e against its ATTLIST declaration (if any), then
// recurses into element children.
func (v *validator) walkElement(e *Element) {
	if v.seenID == nil {
		v.seenID = map[string]Node{}
	}
	decl, hasDecl := v.dt.attlists.GetNamedItem(e.NodeName()).(*AttlistDeclaration)
	if hasDecl {
		v.checkRequired(e, decl)
		v.checkValues(e, decl)
	}
	for _, c := range e.ChildNodes() {
		if child, ok := c.(*Element); ok {
			v.walkElement(child)
		}
	}
}

// checkRequired reports every #REQUIRED attribute declared for e's element
// type that e's attribute map lacks.
func (v *validator) checkRequired(e *Element, decl *AttlistDeclaration) {
	for _, item := range decl.attributes.items() {
		adecl := item.(*AttributeDeclaration)
		if adecl.Default == nil || adecl.Default.Kind != AttrDefaultRequired {
			continue
		}
		if !e.HasAttribute(adecl.attrName) {
			v.fail(SeverityError, "required-attribute-missing",
				"element "+e.NodeName()+" is missing required attribute "+adecl.attrName, e)
		}
	}
}

// checkValues validates every present attribute of e against its
// declaration's type and default clause: FIXED-value match, ID uniqueness,
// NMTOKEN(S) syntax, deferred IDREF(S) resolution, enumeration and
// NOTATION admissibility.
func (v *validator) checkValues(e *Element, decl *AttlistDeclaration) {
	for _, a := range e.attributes.items() {
		at := a.(*Attr)
		adecl, ok := decl.attributes.GetNamedItem(at.NodeName()).(*AttributeDeclaration)
		if !ok {
			continue
		}
		value := at.Value()
		if adecl.Default != nil && adecl.Default.Kind == AttrDefaultFixed && value != adecl.Default.Value {
			v.fail(SeverityError, "fixed-value-mismatch",
				"attribute "+at.NodeName()+" value "+value+" does not match FIXED value "+adecl.Default.Value, at)
		}
		switch adecl.Type {
		case AttrTypeID:
			if prior, seen := v.seenID[value]; seen && prior != e {
				v.fail(SeverityError, "duplicate-id", "ID value "+value+" is not unique", e)
			} else {
				v.seenID[value] = e
			}
		case AttrTypeIDREF:
			v.idrefs = append(v.idrefs, idrefCheck{value: value, el: e, attr: at.NodeName()})
		case AttrTypeIDREFS:
			v.idrefs = append(v.idrefs, idrefCheck{value: value, multi: true, el: e, attr: at.NodeName()})
		case AttrTypeNMTOKEN:
			if !isValidNmtoken(value) {
				v.fail(SeverityError, "invalid-nmtoken", "attribute "+at.NodeName()+" value is not a valid Nmtoken", at)
			}
		case AttrTypeNMTOKENS:
			for _, tok := range strings.Fields(value) {
				if !isValidNmtoken(tok) {
					v.fail(SeverityError, "invalid-nmtoken", "attribute "+at.NodeName()+" value contains an invalid Nmtoken", at)
					break
				}
			}
		case AttrTypeEnumeration:
			if !stringInSlice(value, adecl.EnumerationValues) {
				v.fail(SeverityError, "enumeration-violation",
					"attribute "+at.NodeName()+" value "+value+" is not one of its declared enumeration", at)
			}
		case AttrTypeNOTATION:
			if _, ok := v.dt.notations.GetNamedItem(value).(*Notation); !ok {
				v.fail(SeverityError, "notation-not-declared",
					"attribute "+at.NodeName()+" references undeclared notation "+value, at)
			}
		}
	}
}

func isValidNmtoken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isNameChar(r) {
			return false
		}
	}
	return true
}

func stringInSlice(s string, list []string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
