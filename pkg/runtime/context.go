package runtime

import "io"

// Context provides the output stream Print writes to.
type Context struct {
	Output io.Writer
}

// NewContext returns a Context writing to w.
func NewContext(w io.Writer) *Context {
	return &Context{Output: w}
}
