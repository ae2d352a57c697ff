package jsoncache

import (
	"bytes"
	"strings"
	"testing"
)

var (
	uglyJSON = []byte(`{"name":"John","age":30,"address":{"street":"123 Main St","city":"New York"},"active":true,"scores":[95,87,92]}`)

	prettyJSON = `{
  "name": "John",
  "age": 30,
  "address": {
    "street": "123 Main St",
    "city": "New York"
  },
  "active": true,
  "scores": [95, 87, 92]
}
`
)

//------------------------------------------------------------------------------
// PRETTY FORMATTING TESTS
//------------------------------------------------------------------------------

func TestPretty_BasicFormatting(t *testing.T) {
	if got := string(Pretty(uglyJSON)); got != prettyJSON {
		t.Errorf("Pretty() =\n%s\nwant\n%s", got, prettyJSON)
	}
	if got := Pretty(nil); len(got) != 0 {
		t.Errorf("Pretty(nil) = %q", got)
	}
}

func TestPretty_Options(t *testing.T) {
	tests := []struct {
		name  string
		opts  *FormatOptions
		check func(string) bool
	}{
		{"nil uses defaults", nil, func(s string) bool { return s == prettyJSON }},
		{"compact", &FormatOptions{}, func(s string) bool { return s == string(uglyJSON) }},
		{"tabs", &FormatOptions{Indent: "\t", Width: 80}, func(s string) bool {
			return strings.Contains(s, "\n\t\"name\": \"John\"") && strings.Contains(s, "\n\t\t\"city\"")
		}},
		{"sorted", &FormatOptions{Indent: "  ", Width: 80, SortKeys: true}, func(s string) bool {
			return strings.Index(s, `"active"`) < strings.Index(s, `"address"`) &&
				strings.Index(s, `"address"`) < strings.Index(s, `"name"`)
		}},
		{"narrow", &FormatOptions{Indent: "  ", Width: 1}, func(s string) bool {
			return strings.Contains(s, "\"scores\": [\n    95,\n")
		}},
		{"prefix", &FormatOptions{Indent: "  ", Prefix: "> ", Width: 80}, func(s string) bool {
			for _, line := range strings.Split(strings.TrimSuffix(s, "\n"), "\n") {
				if !strings.HasPrefix(line, "> ") {
					return false
				}
			}
			return true
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(PrettyWithOptions(uglyJSON, tt.opts))
			if !tt.check(got) {
				t.Errorf("PrettyWithOptions() =\n%s", got)
			}
		})
	}
}

func TestPretty_KeepsEscapes(t *testing.T) {
	in := []byte(`{"message":"Hello \"world\"\nNew line\tTab","u":"é"}`)
	out := PrettyWithOptions(Pretty(in), &FormatOptions{})
	if !bytes.Equal(out, in) {
		t.Errorf("round trip = %s, want %s", out, in)
	}
}

func TestDataCache_Pretty(t *testing.T) {
	c := New(DefaultOptions)
	c.Merge(MustParse(string(uglyJSON)))
	if got := c.Pretty(nil); got != prettyJSON {
		t.Errorf("Pretty() =\n%s", got)
	}
	if got := c.Pretty(&FormatOptions{}); got != string(uglyJSON) {
		t.Errorf("compact Pretty() = %s", got)
	}
}

func BenchmarkPretty(b *testing.B) {
	c := New(DefaultOptions)
	for i := 0; i < 200; i++ {
		c.Insert(JoinPath("items", ""), MustParse(string(uglyJSON)))
	}
	data := c.Root().AppendJSON(nil)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Pretty(data)
	}
}
