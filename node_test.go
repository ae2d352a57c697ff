package jsoncache

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNodeObjectOrder(t *testing.T) {
	n := Object().
		Set("b", Int(1)).
		Set("a", Int(2)).
		Set("c", Int(3))
	n.Set("b", String("again"))

	if diff := cmp.Diff([]string{"b", "a", "c"}, n.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if got := n.String(); got != `{"b":"again","a":2,"c":3}` {
		t.Errorf("String() = %s", got)
	}

	if !n.Delete("a") {
		t.Fatal("Delete(a) = false")
	}
	if n.Delete("a") {
		t.Error("second Delete(a) = true")
	}
	if got := n.String(); got != `{"b":"again","c":3}` {
		t.Errorf("after delete String() = %s", got)
	}
	if n.Field("c").Text() != "3" {
		t.Errorf("Field(c) = %v", n.Field("c"))
	}
	n.Set("a", Null())
	if got := n.String(); got != `{"b":"again","c":3,"a":null}` {
		t.Errorf("re-added key String() = %s", got)
	}
}

func TestNodeKinds(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		kind Kind
		json string
	}{
		{"null", Null(), KindNull, `null`},
		{"nil", nil, KindNull, `null`},
		{"true", Bool(true), KindBool, `true`},
		{"false", Bool(false), KindBool, `false`},
		{"int", Int(-42), KindNumber, `-42`},
		{"float", Float(12.5), KindNumber, `12.5`},
		{"nan", Float(math.NaN()), KindNull, `null`},
		{"inf", Float(math.Inf(1)), KindNull, `null`},
		{"literal", Number("1e3"), KindNumber, `1e3`},
		{"string", String(`a"b\c`), KindString, `"a\"b\\c"`},
		{"html", String("<&>"), KindString, `"<&>"`},
		{"control", String("x\ny\t"), KindString, `"x\ny\t"`},
		{"array", Array(Int(1), nil, String("x")), KindArray, `[1,null,"x"]`},
		{"empty array", Array(), KindArray, `[]`},
		{"empty object", Object(), KindObject, `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
			if got := tt.node.String(); got != tt.json {
				t.Errorf("String() = %s, want %s", got, tt.json)
			}
		})
	}
}

func TestNodeContainerAccessorsOnScalars(t *testing.T) {
	s := String("x")
	s.Set("k", Int(1))
	s.Append(Int(1))
	if s.Len() != 0 || s.Field("k") != nil || s.Index(0) != nil || s.Keys() != nil {
		t.Errorf("scalar grew container content: %v", s)
	}
	a := Array(Int(1))
	if a.Index(-1) != nil || a.Index(1) != nil {
		t.Error("out of range Index returned a node")
	}
	if a.Delete("0") {
		t.Error("Delete on array reported success")
	}
}

func TestNodeCloneIsDeep(t *testing.T) {
	orig := MustParse(`{"a":{"b":[1,{"c":true}]}}`)
	c := orig.Clone()
	c.Field("a").Field("b").Index(1).Set("c", Bool(false))
	c.Field("a").Set("new", Null())

	if got := orig.String(); got != `{"a":{"b":[1,{"c":true}]}}` {
		t.Errorf("original changed: %s", got)
	}
	if orig.Equal(c) {
		t.Error("clone still equal after edits")
	}
}

func TestNodeEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{`{"a":1,"b":2}`, `{"b":2,"a":1}`, true},
		{`[1,2]`, `[2,1]`, false},
		{`{"a":1}`, `{"a":1,"b":2}`, false},
		{`1`, `1.0`, false},
		{`"x"`, `"x"`, true},
		{`null`, `false`, false},
		{`{"a":[{"b":null}]}`, `{"a":[{"b":null}]}`, true},
	}
	for _, tt := range tests {
		if got := MustParse(tt.a).Equal(MustParse(tt.b)); got != tt.want {
			t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	n, err := ParseString(` {"z": 1, "a": [true, null, 12.50, "sé\n"], "m": {"k": -0.5e-3}} `)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := `{"z":1,"a":[true,null,12.50,"s` + "é" + `\n"],"m":{"k":-0.5e-3}}`
	if got := n.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}

	dup := MustParse(`{"a":1,"b":2,"a":3}`)
	if got := dup.String(); got != `{"a":3,"b":2}` {
		t.Errorf("duplicate keys = %s", got)
	}

	for _, bad := range []string{``, `{`, `{"a":}`, `[1,]`, `nope`} {
		if _, err := ParseString(bad); !errors.Is(err, ErrInvalidJSON) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidJSON", bad, err)
		}
	}
}

func TestNodeJSONInterop(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Doc  *Node  `json:"doc"`
	}
	in := payload{Name: "x", Doc: MustParse(`{"k":[1,"two"]}`)}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"name":"x","doc":{"k":[1,"two"]}}` {
		t.Errorf("Marshal = %s", data)
	}

	var out payload
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !out.Doc.Equal(in.Doc) {
		t.Errorf("round trip = %v, want %v", out.Doc, in.Doc)
	}
}

func TestFromValue(t *testing.T) {
	type item struct {
		ID   int      `json:"id"`
		Tags []string `json:"tags"`
	}
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, `null`},
		{"string", "v", `"v"`},
		{"bool", true, `true`},
		{"int", 7, `7`},
		{"uint64", uint64(1) << 63, `9223372036854775808`},
		{"float", 0.25, `0.25`},
		{"number", json.Number("1.50"), `1.50`},
		{"raw", json.RawMessage(`{"a":1}`), `{"a":1}`},
		{"map", map[string]any{"b": 1, "a": []any{"x"}}, `{"a":["x"],"b":1}`},
		{"struct", item{ID: 1, Tags: []string{"t"}}, `{"id":1,"tags":["t"]}`},
		{"node", Array(Int(1)), `[1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := FromValue(tt.in)
			if err != nil {
				t.Fatalf("FromValue failed: %v", err)
			}
			if got := n.String(); got != tt.want {
				t.Errorf("FromValue = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := FromValue(make(chan int)); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("FromValue(chan) error = %v, want ErrInvalidJSON", err)
	}
}
