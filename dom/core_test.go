package dom_test

import (
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/xmldom/dom"
	"github.com/arturoeanton/xmldom/dom/parser"
)

func mustElement(t *testing.T, doc *dom.Document, name string) *dom.Element {
	t.Helper()
	el, err := doc.CreateElement(name)
	require.NoError(t, err)
	return el
}

func TestCloneNode_Deep(t *testing.T) {
	doc := dom.NewDocument()
	root := mustElement(t, doc, "root")
	require.NoError(t, doc.AppendChild(root))
	require.NoError(t, root.SetAttribute("x", "1"))
	child := mustElement(t, doc, "child")
	require.NoError(t, root.AppendChild(child))
	require.NoError(t, child.AppendChild(doc.CreateTextNode("leaf")))

	clone := root.CloneNode(true).(*dom.Element)
	assert.Nil(t, clone.ParentNode(), "a clone starts detached")
	assert.True(t, root.IsEqualNode(clone))

	// Mutating the clone must not affect the original.
	require.NoError(t, clone.SetAttribute("x", "2"))
	assert.Equal(t, "1", root.GetAttribute("x"))
	assert.Equal(t, "2", clone.GetAttribute("x"))
}

func TestIsEqualNode_DetectsDifference(t *testing.T) {
	doc := dom.NewDocument()
	a := mustElement(t, doc, "a")
	b := mustElement(t, doc, "a")
	assert.True(t, a.IsEqualNode(b))

	require.NoError(t, b.SetAttribute("k", "v"))
	assert.False(t, a.IsEqualNode(b))
}

func TestImportNode_LeavesSourceUntouched(t *testing.T) {
	src := dom.NewDocument()
	el := mustElement(t, src, "foreign")
	require.NoError(t, src.AppendChild(el))

	dst := dom.NewDocument()
	imported, err := dst.ImportNode(el, true)
	require.NoError(t, err)
	assert.Equal(t, dst, imported.OwnerDocument())
	assert.Equal(t, src, el.OwnerDocument(), "ImportNode must not mutate the source tree")
}

func TestFixupNamespaces_AddsMissingDeclaration(t *testing.T) {
	doc := dom.NewDocument()
	root, err := doc.CreateElementNS("urn:x", "root")
	require.NoError(t, err)
	require.NoError(t, doc.AppendChild(root))

	dom.FixupNamespaces(doc)

	assert.Equal(t, "urn:x", root.GetAttribute("xmlns"), "fixup should declare the element's own namespace")
}

func TestValidate_ReportsRequiredAttributeMissing(t *testing.T) {
	src := `<!DOCTYPE root [
		<!ELEMENT root (child)*>
		<!ATTLIST root id CDATA #REQUIRED>
	]>
	<root></root>`

	p := parser.New(parser.Options{})
	doc, err := p.Parse(strings.NewReader(src))
	require.NoError(t, err)

	err = dom.Validate(doc)
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	assert.Len(t, merr.Errors, 1)
}

func TestValidate_PassesWhenRequirementsMet(t *testing.T) {
	src := `<!DOCTYPE root [
		<!ELEMENT root (child)*>
		<!ATTLIST root id CDATA #REQUIRED>
	]>
	<root id="r1"></root>`

	p := parser.New(parser.Options{})
	doc, err := p.Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.NoError(t, dom.Validate(doc))
}

func TestNormalizeDocument_ReportsPasses(t *testing.T) {
	doc := dom.NewDocument()
	root := mustElement(t, doc, "root")
	require.NoError(t, doc.AppendChild(root))
	require.NoError(t, root.AppendChild(doc.CreateTextNode("a")))
	require.NoError(t, root.AppendChild(doc.CreateTextNode("b")))

	passes := doc.NormalizeDocument()
	assert.NotEmpty(t, passes)

	children := root.ChildNodes()
	require.Len(t, children, 1, "adjacent text nodes should merge during normalization")
	assert.Equal(t, "ab", children[0].(*dom.Text).Data())
}
