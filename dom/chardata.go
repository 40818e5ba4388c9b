package dom

// characterData is embedded by Text, CDATASection, and Comment: the three
// kinds whose whole value is a single run of character data (spec §3).
// ProcessingInstruction also carries a data string but is not considered a
// CharacterData kind (it additionally has an immutable target), so it is
// defined separately in pi.go.
type characterData struct {
	nodeBase
	data string
}

func (c *characterData) Data() string { return c.data }

func (c *characterData) SetData(s string) error {
	if c.readonly {
		return newDOMException(NoModificationAllowedErr, "node is readonly")
	}
	c.data = s
	c.bumpSequence()
	return nil
}

func (c *characterData) Length() int { return len([]rune(c.data)) }

func (c *characterData) SubstringData(offset, count int) (string, error) {
	r := []rune(c.data)
	if offset < 0 || offset > len(r) || count < 0 {
		return "", newDOMException(IndexSizeErr, "offset out of range")
	}
	end := offset + count
	if end > len(r) {
		end = len(r)
	}
	return string(r[offset:end]), nil
}

func (c *characterData) AppendData(arg string) error {
	return c.SetData(c.data + arg)
}

func (c *characterData) InsertData(offset int, arg string) error {
	r := []rune(c.data)
	if offset < 0 || offset > len(r) {
		return newDOMException(IndexSizeErr, "offset out of range")
	}
	return c.SetData(string(r[:offset]) + arg + string(r[offset:]))
}

func (c *characterData) DeleteData(offset, count int) error {
	r := []rune(c.data)
	if offset < 0 || offset > len(r) || count < 0 {
		return newDOMException(IndexSizeErr, "offset out of range")
	}
	end := offset + count
	if end > len(r) {
		end = len(r)
	}
	return c.SetData(string(r[:offset]) + string(r[end:]))
}

func (c *characterData) ReplaceData(offset, count int, arg string) error {
	if err := c.DeleteData(offset, count); err != nil {
		return err
	}
	return c.InsertData(offset, arg)
}
