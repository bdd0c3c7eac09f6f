package notes

import (
	"bytes"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatJSON},
		{in: "JSON", want: FormatJSON},
		{in: "yml", want: FormatYAML},
		{in: "toml", want: FormatTOML},
		{in: "md", want: FormatMarkdown},
		{in: "html", want: FormatHTML},
		{in: "csv", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestExportYAMLKeepsOrder(t *testing.T) {
	s := storeOf("zebra", "apple")

	var buf bytes.Buffer
	if err := Export(&buf, s, "work", FormatYAML); err != nil {
		t.Fatalf("export: %v", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "space: work") {
		t.Fatalf("expected space name in output:\n%s", out)
	}
	if strings.Index(out, "zebra") > strings.Index(out, "apple") {
		t.Fatalf("expected store order preserved:\n%s", out)
	}
}

func TestExportTOML(t *testing.T) {
	s := storeOf("first", "second")

	var buf bytes.Buffer
	if err := Export(&buf, s, "default", FormatTOML); err != nil {
		t.Fatalf("export: %v", err)
	}

	var decoded tomlExport
	if _, err := toml.Decode(buf.String(), &decoded); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if decoded.Space != "default" {
		t.Fatalf("expected space=default, got %q", decoded.Space)
	}
	if len(decoded.Notes) != 2 || decoded.Notes[1].Key != "2" || decoded.Notes[1].Text != "second" {
		t.Fatalf("unexpected notes: %+v", decoded.Notes)
	}
}

func TestExportMarkdownAndHTML(t *testing.T) {
	s := storeOf("buy *milk*")

	md := Markdown(s, "errands")
	if !strings.Contains(md, "# errands") || !strings.Contains(md, "## 1") {
		t.Fatalf("unexpected markdown:\n%s", md)
	}

	var buf bytes.Buffer
	if err := Export(&buf, s, "errands", FormatHTML); err != nil {
		t.Fatalf("export: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "<h1>errands</h1>") {
		t.Fatalf("expected space heading in html:\n%s", html)
	}
	if !strings.Contains(html, "<em>milk</em>") {
		t.Fatalf("expected rendered emphasis in html:\n%s", html)
	}
}

func TestExportJSONMatchesFileFormat(t *testing.T) {
	s := storeOf("a")

	var buf bytes.Buffer
	if err := Export(&buf, s, "default", FormatJSON); err != nil {
		t.Fatalf("export: %v", err)
	}

	loaded := New()
	if err := loaded.UnmarshalJSON(buf.Bytes()); err != nil {
		t.Fatalf("exported json does not load: %v", err)
	}
	if got, _ := loaded.Get("1"); got != "a" {
		t.Fatalf("expected note 1 = a, got %q", got)
	}
}
