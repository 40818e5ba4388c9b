package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/xmldom/dom"
	"github.com/arturoeanton/xmldom/dom/parser"
)

func TestParse_Basic(t *testing.T) {
	p := parser.New(parser.Options{})
	doc, err := p.Parse(strings.NewReader(`<root a="1"><child>hi</child></root>`))
	require.NoError(t, err)

	root := doc.DocumentElement()
	require.NotNil(t, root)
	assert.Equal(t, "root", root.TagName())
	assert.Equal(t, "1", root.GetAttribute("a"))

	children := root.ChildNodes()
	require.Len(t, children, 1)
	child, ok := children[0].(*dom.Element)
	require.True(t, ok)
	assert.Equal(t, "child", child.TagName())
	assert.Equal(t, "hi", child.TextContent())
}

func TestParse_DefaultAttributeInsertion(t *testing.T) {
	src := `<!DOCTYPE root [
		<!ELEMENT root (child)*>
		<!ATTLIST root id CDATA "root-1">
	]>
	<root><child/></root>`

	p := parser.New(parser.Options{})
	doc, err := p.Parse(strings.NewReader(src))
	require.NoError(t, err)

	root := doc.DocumentElement()
	require.NotNil(t, root)
	assert.Equal(t, "root-1", root.GetAttribute("id"), "missing attribute should be defaulted from the ATTLIST declaration")
}

func TestParse_EntityExpansion(t *testing.T) {
	src := `<!DOCTYPE root [<!ENTITY greeting "hello world">]><root>&greeting;</root>`
	p := parser.New(parser.Options{})
	doc, err := p.Parse(strings.NewReader(src))
	require.NoError(t, err)

	root := doc.DocumentElement()
	require.NotNil(t, root)
	assert.Equal(t, "hello world", root.TextContent())
}

func TestParse_NamespaceQualified(t *testing.T) {
	p := parser.New(parser.Options{})
	doc, err := p.Parse(strings.NewReader(`<r:root xmlns:r="urn:x"><r:child/></r:root>`))
	require.NoError(t, err)

	root := doc.DocumentElement()
	require.NotNil(t, root)
	assert.Equal(t, "urn:x", root.NamespaceURI())
	assert.Equal(t, "root", root.LocalName())
}

func TestParse_FatalHandlerAborts(t *testing.T) {
	var seen []*dom.DOMError
	p := parser.New(parser.Options{
		ErrorHandler: func(de *dom.DOMError) bool {
			seen = append(seen, de)
			return false
		},
	})
	_, err := p.Parse(strings.NewReader(`<root><unclosed></root>`))
	require.Error(t, err)
	assert.NotEmpty(t, seen)
}

func TestParse_CharsetOverride(t *testing.T) {
	p := parser.New(parser.Options{CharsetOverride: "utf-8"})
	doc, err := p.Parse(strings.NewReader(`<root>ok</root>`))
	require.NoError(t, err)
	assert.Equal(t, "ok", doc.DocumentElement().TextContent())
}

func TestParse_NormalizeOption(t *testing.T) {
	p := parser.New(parser.Options{Normalize: true})
	doc, err := p.Parse(strings.NewReader(`<root><a/><a/></root>`))
	require.NoError(t, err)
	assert.NotNil(t, doc.DocumentElement())
}

func TestParse_CDATASectionSurvives(t *testing.T) {
	p := parser.New(parser.Options{})
	doc, err := p.Parse(strings.NewReader(`<r><![CDATA[x]]></r>`))
	require.NoError(t, err)

	root := doc.DocumentElement()
	require.NotNil(t, root)
	children := root.ChildNodes()
	require.Len(t, children, 1)
	cd, ok := children[0].(*dom.CDATASection)
	require.True(t, ok, "child should be a CDATASection, got %T", children[0])
	assert.Equal(t, "x", cd.Data())
}

func TestParse_CDATASectionsDisabledCollapsesToText(t *testing.T) {
	cfg := &dom.DOMConfiguration{}
	*cfg = *dom.NewDocument().Config()
	cfg.CDATASections = false

	p := parser.New(parser.Options{Config: cfg})
	doc, err := p.Parse(strings.NewReader(`<r><![CDATA[x]]></r>`))
	require.NoError(t, err)

	root := doc.DocumentElement()
	children := root.ChildNodes()
	require.Len(t, children, 1)
	_, ok := children[0].(*dom.Text)
	assert.True(t, ok, "child should collapse to Text when cdata-sections=false, got %T", children[0])
	assert.Equal(t, "x", root.TextContent())
}

// TestParse_EntitiesFalseExpandsInline is spec.md §8 Scenario 2.
func TestParse_EntitiesFalseExpandsInline(t *testing.T) {
	src := `<!DOCTYPE r [<!ENTITY e "X&amp;Y">]><r>a&e;b</r>`

	trueCfg := &dom.DOMConfiguration{}
	*trueCfg = *dom.NewDocument().Config()
	p := parser.New(parser.Options{Config: trueCfg})
	doc, err := p.Parse(strings.NewReader(src))
	require.NoError(t, err)
	root := doc.DocumentElement()
	children := root.ChildNodes()
	require.Len(t, children, 3)
	text0, ok := children[0].(*dom.Text)
	require.True(t, ok)
	assert.Equal(t, "a", text0.Data())
	ref, ok := children[1].(*dom.EntityReference)
	require.True(t, ok, "middle child should be an EntityReference, got %T", children[1])
	assert.Equal(t, "e", ref.NodeName())
	refChildren := ref.ChildNodes()
	require.Len(t, refChildren, 1)
	assert.Equal(t, "X&Y", refChildren[0].(*dom.Text).Data())
	text2, ok := children[2].(*dom.Text)
	require.True(t, ok)
	assert.Equal(t, "b", text2.Data())

	falseCfg := &dom.DOMConfiguration{}
	*falseCfg = *dom.NewDocument().Config()
	falseCfg.Entities = false
	p2 := parser.New(parser.Options{Config: falseCfg})
	doc2, err := p2.Parse(strings.NewReader(src))
	require.NoError(t, err)
	root2 := doc2.DocumentElement()
	children2 := root2.ChildNodes()
	require.Len(t, children2, 1, "entities=false should fold the whole content into one Text child")
	assert.Equal(t, "aX&Yb", children2[0].(*dom.Text).Data())
}

func TestParse_SelfReferencingEntityDoesNotRecurseForever(t *testing.T) {
	src := `<!DOCTYPE r [<!ENTITY a "&a;">]><r>&a;</r>`
	p := parser.New(parser.Options{})
	doc, err := p.Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.NotNil(t, doc.DocumentElement())
}

func TestParse_DuplicateAttributeNameFails(t *testing.T) {
	p := parser.New(parser.Options{})
	_, err := p.Parse(strings.NewReader(`<root a="1" a="2"/>`))
	assert.Error(t, err)
}
