package cli

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	builtindocs "github.com/aidanlsb/jot/docs"
	"github.com/aidanlsb/jot/internal/ui"
)

const (
	docsRoot      = "guide"
	docsIndexPath = "guide/index.yaml"
)

type docsTopic struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Path  string `yaml:"path" json:"path"`
}

type docsIndex struct {
	Topics []docsTopic `yaml:"topics"`
}

func loadDocsIndex(fsys fs.FS) ([]docsTopic, error) {
	data, err := fs.ReadFile(fsys, docsIndexPath)
	if err != nil {
		return nil, fmt.Errorf("read docs index: %w", err)
	}
	var idx docsIndex
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse docs index: %w", err)
	}
	return idx.Topics, nil
}

func findDocsTopic(topics []docsTopic, id string) (docsTopic, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, t := range topics {
		if t.ID == id {
			return t, true
		}
	}
	return docsTopic{}, false
}

func newDocsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "docs [topic]",
		Short: "Read the bundled guide",
		Long: `Read the guide bundled into the jot binary.

Without a topic, lists the available topics.

Examples:
  jot docs
  jot docs spaces`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			topics, _ := loadDocsIndex(builtindocs.FS)
			ids := make([]string, 0, len(topics))
			for _, t := range topics {
				ids = append(ids, t.ID+"\t"+t.Title)
			}
			return ids, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			topics, err := loadDocsIndex(builtindocs.FS)
			if err != nil {
				return handleError(a, ErrInternal, err, "")
			}

			if len(args) == 0 {
				if a.JSON {
					outputSuccess(a, map[string]interface{}{"topics": topics}, &Meta{Count: len(topics)})
					return nil
				}
				a.println(ui.Header("Guide topics"))
				for _, t := range topics {
					a.printf("  %-10s %s\n", t.ID, ui.Hint(t.Title))
				}
				a.println()
				a.println(ui.Hint("Run 'jot docs <topic>' to read one, or 'jot help <command>' for command usage."))
				return nil
			}

			topic, ok := findDocsTopic(topics, args[0])
			if !ok {
				return handleErrorMsg(a, ErrInvalidInput,
					fmt.Sprintf("unknown docs topic: %s", args[0]), "Run 'jot docs' to list topics")
			}
			content, err := fs.ReadFile(builtindocs.FS, path.Join(docsRoot, topic.Path))
			if err != nil {
				return handleError(a, ErrInternal, err, "")
			}

			if a.JSON {
				outputSuccess(a, map[string]interface{}{
					"topic":   topic,
					"content": string(content),
				}, nil)
				return nil
			}

			rendered, err := ui.RenderMarkdown(string(content), ui.RenderWidth(a.Out))
			if err != nil {
				a.printf("%s", content)
				return nil
			}
			a.printf("%s", rendered)
			return nil
		},
	}
}
