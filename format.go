package jsoncache

import "github.com/tidwall/pretty"

// FormatOptions controls indented output.
type FormatOptions struct {
	// Indent is the nested indentation. Empty means compact output.
	Indent string
	// Prefix is written at the start of every line.
	Prefix string
	// Width is the line length under which arrays are kept on one line.
	Width int
	// SortKeys sorts object keys.
	SortKeys bool
}

// DefaultFormatOptions provides the settings used by Pretty.
var DefaultFormatOptions = FormatOptions{
	Indent: "  ",
	Width:  80,
}

// Pretty formats JSON with two-space indentation.
func Pretty(data []byte) []byte {
	return PrettyWithOptions(data, &DefaultFormatOptions)
}

// PrettyWithOptions formats JSON with custom options. Nil options use
// DefaultFormatOptions; an empty Indent removes all insignificant whitespace.
func PrettyWithOptions(data []byte, opts *FormatOptions) []byte {
	if len(data) == 0 {
		return data
	}
	if opts == nil {
		opts = &DefaultFormatOptions
	}
	if opts.Indent == "" {
		return pretty.Ugly(data)
	}
	return pretty.PrettyOptions(data, &pretty.Options{
		Indent:   opts.Indent,
		Prefix:   opts.Prefix,
		Width:    opts.Width,
		SortKeys: opts.SortKeys,
	})
}

// Pretty renders the whole document, not the flattened display form, with
// indentation.
func (c *DataCache) Pretty(opts *FormatOptions) string {
	c.mu.RLock()
	data := c.tree.Root().AppendJSON(nil)
	c.mu.RUnlock()
	return string(PrettyWithOptions(data, opts))
}
