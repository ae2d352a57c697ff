package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhawalhost/jsoncache"
	"github.com/scott-cotton/cli"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad(t *testing.T) {
	cfg := &MainConfig{
		Data: writeFile(t, "data.yaml", "user:\n  name: ada\n  langs: [en, fr]\n"),
		Config: writeFile(t, "jdc.yaml", `reservedNames: [secret]
chunkSize: 7
matches:
- source: /orders/17
  pattern: ^/orders/(?P<order.id>\d+)$
`),
	}
	for _, a := range []string{"user.age=36", "user.langs.=de", `flags={beta: true}`} {
		if _, err := cfg.setOpt(nil, a); err != nil {
			t.Fatalf("setOpt(%q) failed: %v", a, err)
		}
	}
	if _, err := cfg.matchOpt(nil, "v2=^v(?P<api.version>\\d)$"); err != nil {
		t.Fatal(err)
	}

	c, err := cfg.load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := jsoncache.MustParse(`{
		"user": {"name": "ada", "langs": ["en", "fr", "de"], "age": 36},
		"flags": {"beta": true},
		"order": {"id": "17"},
		"api": {"version": "2"}
	}`)
	if !c.Root().Equal(want) {
		t.Errorf("root = %s, want %s", c.Root(), want)
	}

	cfg.Matches = append(cfg.Matches, matchArg{Source: "x", Pattern: "(?P<secret>x)"})
	if _, err := cfg.load(); !errors.Is(err, jsoncache.ErrReservedName) {
		t.Errorf("load with reserved capture: error = %v", err)
	}
}

func TestOptErrors(t *testing.T) {
	cfg := &MainConfig{}
	if _, err := cfg.setOpt(nil, "novalue"); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("setOpt error = %v, want ErrUsage", err)
	}
	if _, err := cfg.matchOpt(nil, "source="); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("matchOpt error = %v, want ErrUsage", err)
	}
}

func TestReadDocument(t *testing.T) {
	j, err := readDocument(writeFile(t, "d.json", `{"b":1,"a":[true]}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := j.String(); got != `{"b":1,"a":[true]}` {
		t.Errorf("json document = %s", got)
	}

	if _, err := readDocument(writeFile(t, "bad.yaml", "a: [1\n")); err == nil {
		t.Error("readDocument accepted a broken document")
	}
	if _, err := readDocument(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("readDocument accepted a missing file")
	}
}

func TestRenderFile(t *testing.T) {
	c := jsoncache.New(jsoncache.DefaultOptions)
	c.Insert("name", jsoncache.String("ada"))
	tmpl := writeFile(t, "t.txt", "hi {$name}, {$$missing}")

	var out bytes.Buffer
	if err := renderFile(&RenderConfig{MainConfig: &MainConfig{}}, c, &out, nil, tmpl); err != nil {
		t.Fatal(err)
	}
	if out.String() != "hi ada, {$$missing}" {
		t.Errorf("render = %q", out.String())
	}

	out.Reset()
	err := renderFile(&RenderConfig{MainConfig: &MainConfig{}, Strict: true}, c, &out, nil, tmpl)
	if err == nil || !strings.Contains(err.Error(), "{$$missing}") {
		t.Errorf("strict render error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("strict render wrote %q", out.String())
	}

	out.Reset()
	if err := renderFile(&RenderConfig{MainConfig: &MainConfig{}}, c, &out, strings.NewReader("{$name}"), "-"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "ada" {
		t.Errorf("stdin render = %q", out.String())
	}
}

func TestDumpPaths(t *testing.T) {
	var out bytes.Buffer
	m := map[string]string{"b": "2", "a": "[1]", "a.0": "1"}
	if err := dumpPaths(&out, m, false); err != nil {
		t.Fatal(err)
	}
	want := "{$a} = [1]\n{$a.0} = 1\n{$b} = 2\n"
	if out.String() != want {
		t.Errorf("dump =\n%s\nwant\n%s", out.String(), want)
	}

	out.Reset()
	if err := dumpPaths(&out, m, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\x1b[") {
		t.Errorf("colored dump has no escape codes: %q", out.String())
	}
}
