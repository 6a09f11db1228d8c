package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inkpad-app/inkpad/pkg/core"
)

var exportOut string

// frontmatter is the YAML header written ahead of each exported note.
type frontmatter struct {
	Title   string `yaml:"title"`
	Type    string `yaml:"type"`
	Folder  string `yaml:"folder,omitempty"`
	Created string `yaml:"created"`
	Updated string `yaml:"updated"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all notes as Markdown with YAML frontmatter",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}
		defer app.Close()

		if err := os.MkdirAll(exportOut, 0o755); err != nil {
			fatal("Failed to create output directory", err)
		}

		folders := make(map[string]string)
		for _, f := range app.Collection.Folders() {
			folders[f.ID] = f.Name
		}

		count := 0
		for _, n := range app.Collection.Notes() {
			doc, err := renderNote(n, folders[n.FolderID])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", n.ID, err)
				continue
			}

			path := filepath.Join(exportOut, n.ID+".md")
			if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
				fatal("Failed to write "+path, err)
			}
			count++
		}

		fmt.Printf("Exported %d notes to %s\n", count, exportOut)
	},
}

func renderNote(n core.Note, folderName string) (string, error) {
	fm := frontmatter{
		Title:   n.Title,
		Type:    string(n.Type),
		Folder:  folderName,
		Created: time.UnixMilli(n.CreatedAt).Format(time.RFC3339),
		Updated: time.UnixMilli(n.UpdatedAt).Format(time.RFC3339),
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	body, err := renderBody(n)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	return b.String(), nil
}

func renderBody(n core.Note) (string, error) {
	content, err := core.DecodeContent(n.Type, n.Content)
	if err != nil {
		return "", err
	}

	switch c := content.(type) {
	case core.TextContent:
		return c.Markup, nil

	case core.ChecklistContent:
		var b strings.Builder
		for _, item := range c.Items {
			b.WriteString(checkbox(item.Checked))
			b.WriteString(item.Text)
			b.WriteString("\n")
			if item.Description != "" {
				fmt.Fprintf(&b, "  %s\n", item.Description)
			}
			for _, st := range item.Subtasks {
				b.WriteString("  ")
				b.WriteString(checkbox(st.Checked))
				b.WriteString(st.Text)
				b.WriteString("\n")
			}
		}
		return b.String(), nil

	case core.ImageContent:
		var b strings.Builder
		for _, img := range c.Images {
			fmt.Fprintf(&b, "![%s](%s)\n", img.Name, img.URL)
		}
		return b.String(), nil

	default:
		return n.Content, nil
	}
}

func checkbox(checked bool) string {
	if checked {
		return "- [x] "
	}
	return "- [ ] "
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "export", "Output directory")
	rootCmd.AddCommand(exportCmd)
}
