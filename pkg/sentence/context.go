package sentence

import "fmt"

// Context is the append-only utterance log shared by a dialogue's
// participants. Offsets are absolute: they keep their meaning across a
// Flush, so knowledge derived before a flush stays valid.
type Context struct {
	base  int
	stmts []*Statement
}

func NewContext() *Context {
	return &Context{}
}

// Len returns the absolute length of the log, counting flushed
// statements.
func (c *Context) Len() int {
	return c.base + len(c.stmts)
}

// Add appends statements and returns the absolute offset of the first
// one.
func (c *Context) Add(stmts ...*Statement) int {
	offset := c.Len()
	c.stmts = append(c.stmts, stmts...)
	return offset
}

// At returns the statement at an absolute offset. Reading a flushed
// offset is a programming error.
func (c *Context) At(i int) *Statement {
	if i < c.base {
		panic(fmt.Sprintf("sentence: context offset %d flushed (base %d)", i, c.base))
	}
	return c.stmts[i-c.base]
}

// From returns the retained statements at or after the absolute
// offset. Flushed statements are silently omitted.
func (c *Context) From(offset int) []*Statement {
	if offset < c.base {
		offset = c.base
	}
	return c.stmts[offset-c.base:]
}

// Truncate drops statements at and after the absolute offset. Used
// when restoring a saved state.
func (c *Context) Truncate(offset int) {
	if offset < c.base {
		panic(fmt.Sprintf("sentence: truncate to flushed offset %d (base %d)", offset, c.base))
	}
	if offset >= c.Len() {
		return
	}
	c.stmts = c.stmts[:offset-c.base]
}

// Flush discards the retained statements to reclaim memory. Absolute
// offsets and previously derived knowledge keep their meaning.
func (c *Context) Flush() {
	c.base += len(c.stmts)
	c.stmts = c.stmts[:0]
}

// Transcript renders every retained statement, one per line.
func (c *Context) Transcript() []string {
	lines := make([]string, 0, len(c.stmts))
	for _, s := range c.stmts {
		lines = append(lines, s.String())
	}
	return lines
}
