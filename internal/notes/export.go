package notes

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/pretty"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTOML     Format = "toml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML, FormatMarkdown, FormatHTML}

// ParseFormat resolves a format name. "md" is accepted for markdown and
// "yml" for yaml.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown export format %q", name)
}

type tomlExport struct {
	Space string     `toml:"space"`
	Notes []tomlNote `toml:"notes"`
}

type tomlNote struct {
	Key  string `toml:"key"`
	Text string `toml:"text"`
}

// Export writes the notes of space to w in the given format, in store order.
func Export(w io.Writer, s *Store, space string, format Format) error {
	switch format {
	case FormatJSON:
		data, err := s.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = w.Write(pretty.Pretty(data))
		return err

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(yamlDocument(s, space)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()

	case FormatTOML:
		out := tomlExport{Space: space, Notes: make([]tomlNote, 0, s.Len())}
		for _, e := range s.entries {
			out.Notes = append(out.Notes, tomlNote{Key: e.Key, Text: e.Value})
		}
		if err := toml.NewEncoder(w).Encode(out); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil

	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(s, space))
		return err

	case FormatHTML:
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(Markdown(s, space)), &buf); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	}
	return fmt.Errorf("unknown export format %q", format)
}

// Markdown renders the space as a document with one section per note.
func Markdown(s *Store, space string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", space)
	for _, e := range s.entries {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", e.Key, strings.TrimSpace(e.Value))
	}
	return b.String()
}

// yamlDocument builds the node tree by hand because a Go map would lose
// note order.
func yamlDocument(s *Store, space string) *yaml.Node {
	entries := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range s.entries {
		entries.Content = append(entries.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Value},
		)
	}
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "space"},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: space},
			{Kind: yaml.ScalarNode, Value: "entries"},
			entries,
		},
	}
}
