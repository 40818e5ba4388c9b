package serializer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/xmldom/dom"
	"github.com/arturoeanton/xmldom/dom/serializer"
)

func buildSimpleDoc(t *testing.T) *dom.Document {
	t.Helper()
	doc := dom.NewDocument()
	root, err := doc.CreateElement("root")
	require.NoError(t, err)
	require.NoError(t, doc.AppendChild(root))
	require.NoError(t, root.SetAttribute("a", "1"))
	text := doc.CreateTextNode("hello")
	require.NoError(t, root.AppendChild(text))
	return doc
}

func TestWriteToString_Basic(t *testing.T) {
	doc := buildSimpleDoc(t)
	s := serializer.New(serializer.DefaultOptions())
	out, err := s.WriteToString(doc)
	require.NoError(t, err)
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `<root a="1">hello</root>`)
}

func TestWriteToString_NoDeclaration(t *testing.T) {
	doc := buildSimpleDoc(t)
	opts := serializer.DefaultOptions()
	opts.XMLDeclaration = false
	s := serializer.New(opts)
	out, err := s.WriteToString(doc)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(out, "<?xml"))
}

func TestCDATASplitting(t *testing.T) {
	doc := dom.NewDocument()
	root, err := doc.CreateElement("root")
	require.NoError(t, err)
	require.NoError(t, doc.AppendChild(root))
	cd, err := doc.CreateCDATASection("a]]>b")
	require.NoError(t, err)
	require.NoError(t, root.AppendChild(cd))

	opts := serializer.DefaultOptions()
	opts.XMLDeclaration = false
	s := serializer.New(opts)
	out, err := s.WriteToString(doc)
	require.NoError(t, err)
	assert.Equal(t, "<root><![CDATA[a]]>]]&gt;<![CDATA[b]]></root>", out)
}

func TestCanonicalForm_SuppressesRedundantXmlns(t *testing.T) {
	doc := dom.NewDocument()
	root, err := doc.CreateElementNS("urn:x", "r:root")
	require.NoError(t, err)
	require.NoError(t, doc.AppendChild(root))
	require.NoError(t, root.SetAttributeNS(dom.XMLNSNamespace, "xmlns:r", "urn:x"))

	child, err := doc.CreateElementNS("urn:x", "r:child")
	require.NoError(t, err)
	require.NoError(t, root.AppendChild(child))
	require.NoError(t, child.SetAttributeNS(dom.XMLNSNamespace, "xmlns:r", "urn:x"))

	opts := serializer.DefaultOptions()
	opts.XMLDeclaration = false

	nonCanonical, err := serializer.New(opts).WriteToString(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(nonCanonical, "xmlns:r="), "no suppression outside canonical form: %s", nonCanonical)

	require.NoError(t, doc.Config().SetParameter("canonical-form", true))
	canonical, err := serializer.New(opts).WriteToString(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(canonical, "xmlns:r="), "redundant xmlns re-declaration must be suppressed under canonical form: %s", canonical)
}

func TestCanonicalForm_DefaultNamespaceSortsBeforePrefixed(t *testing.T) {
	doc := dom.NewDocument()
	root, err := doc.CreateElementNS("urn:default", "root")
	require.NoError(t, err)
	require.NoError(t, doc.AppendChild(root))
	require.NoError(t, root.SetAttributeNS(dom.XMLNSNamespace, "xmlns", "urn:default"))
	require.NoError(t, root.SetAttributeNS(dom.XMLNSNamespace, "xmlns:a", "urn:a"))

	opts := serializer.DefaultOptions()
	opts.XMLDeclaration = false
	require.NoError(t, doc.Config().SetParameter("canonical-form", true))
	out, err := serializer.New(opts).WriteToString(doc)
	require.NoError(t, err)

	defaultPos := strings.Index(out, `xmlns="urn:default"`)
	prefixedPos := strings.Index(out, `xmlns:a="urn:a"`)
	require.NotEqual(t, -1, defaultPos)
	require.NotEqual(t, -1, prefixedPos)
	assert.Less(t, defaultPos, prefixedPos, "default namespace declaration must sort before a prefixed one under canonical form: %s", out)
}

func TestPrettyPrint_IndentsElementOnlyContent(t *testing.T) {
	doc := dom.NewDocument()
	root, err := doc.CreateElement("root")
	require.NoError(t, err)
	require.NoError(t, doc.AppendChild(root))
	for _, name := range []string{"a", "b"} {
		child, err := doc.CreateElement(name)
		require.NoError(t, err)
		require.NoError(t, root.AppendChild(child))
	}

	opts := serializer.DefaultOptions()
	opts.XMLDeclaration = false
	opts.PrettyPrint = true
	s := serializer.New(opts)
	out, err := s.WriteToString(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "\n")
}

func TestFilterReject_DropsSubtree(t *testing.T) {
	doc := dom.NewDocument()
	root, err := doc.CreateElement("root")
	require.NoError(t, err)
	require.NoError(t, doc.AppendChild(root))
	keep, err := doc.CreateElement("keep")
	require.NoError(t, err)
	require.NoError(t, root.AppendChild(keep))
	drop, err := doc.CreateElement("drop")
	require.NoError(t, err)
	require.NoError(t, root.AppendChild(drop))
	require.NoError(t, drop.AppendChild(doc.CreateTextNode("gone")))

	opts := serializer.DefaultOptions()
	opts.XMLDeclaration = false
	opts.Filter = rejectFilter{target: "drop"}
	s := serializer.New(opts)
	out, err := s.WriteToString(doc)
	require.NoError(t, err)
	assert.NotContains(t, out, "drop")
	assert.NotContains(t, out, "gone")
	assert.Contains(t, out, "keep")
}

type rejectFilter struct{ target string }

func (rejectFilter) WhatToShow() serializer.WhatToShow { return serializer.ShowAll() }

func (f rejectFilter) AcceptNode(n dom.Node) serializer.FilterAction {
	if el, ok := n.(*dom.Element); ok && el.TagName() == f.target {
		return serializer.FilterReject
	}
	return serializer.FilterAccept
}

func TestASCIIEncodingEscapesNonASCII(t *testing.T) {
	doc := dom.NewDocument()
	root, err := doc.CreateElement("root")
	require.NoError(t, err)
	require.NoError(t, doc.AppendChild(root))
	require.NoError(t, root.AppendChild(doc.CreateTextNode("café")))

	opts := serializer.DefaultOptions()
	opts.XMLDeclaration = false
	opts.Encoding = "us-ascii"
	s := serializer.New(opts)
	out, err := s.WriteToString(doc)
	require.NoError(t, err)
	assert.Equal(t, "<root>caf&#233;</root>", out)
}
