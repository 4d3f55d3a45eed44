// Package render turns snippets and tutorials into HTML.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/vibe-coding/vibedocs/internal/catalog"
)

// Renderer converts catalog content to HTML fragments and pages.
type Renderer struct {
	md   goldmark.Markdown
	page *template.Template
}

// New creates a Renderer highlighting code with the given chroma style.
// An empty style means "github".
func New(style string) (*Renderer, error) {
	if style == "" {
		style = "github"
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Renderer{md: md, page: tmpl}, nil
}

// SnippetMarkdown is the markdown source of a snippet.
func SnippetMarkdown(s catalog.Snippet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	if s.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", s.Description)
	}
	fmt.Fprintf(&b, "*%s · %s · by %s*\n\n", s.Category, s.Difficulty, s.Author)
	writeFence(&b, s.Language, s.Code)
	if len(s.Tags) > 0 {
		fmt.Fprintf(&b, "\nTags: %s\n", strings.Join(s.Tags, ", "))
	}
	return b.String()
}

// TutorialMarkdown is the markdown source of a tutorial.
func TutorialMarkdown(t catalog.Tutorial) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Title)
	if t.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", t.Description)
	}
	fmt.Fprintf(&b, "*%s · %s · %s*\n\n", t.Category, t.Difficulty, t.Duration)
	if len(t.Steps) > 0 {
		b.WriteString("## Steps\n\n")
		for i, step := range t.Steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
		b.WriteString("\n")
	}
	if t.Content != "" {
		fmt.Fprintf(&b, "## Content\n\n%s\n", t.Content)
	}
	return b.String()
}

// writeFence writes code as a fenced block whose fence is longer than any
// backtick run inside the code.
func writeFence(b *strings.Builder, lang, code string) {
	longest, run := 0, 0
	for _, r := range code {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", max(3, longest+1))
	fmt.Fprintf(b, "%s%s\n%s\n%s\n", fence, lang, strings.TrimRight(code, "\n"), fence)
}

// Markdown converts markdown source to an HTML fragment.
func (r *Renderer) Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// Snippet renders s as an HTML fragment.
func (r *Renderer) Snippet(s catalog.Snippet) (string, error) {
	return r.Markdown(SnippetMarkdown(s))
}

// Tutorial renders t as an HTML fragment.
func (r *Renderer) Tutorial(t catalog.Tutorial) (string, error) {
	return r.Markdown(TutorialMarkdown(t))
}

// Page wraps an HTML fragment in a standalone document.
func (r *Renderer) Page(w io.Writer, title, fragment string) error {
	return r.page.Execute(w, struct {
		Title   string
		Content template.HTML
	}{title, template.HTML(fragment)})
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} · Vibe-Coding Docs</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.6; color: #1f2937; }
    pre { padding: 1rem; border-radius: 0.5rem; overflow-x: auto; }
  </style>
</head>
<body>
  <article>
    {{.Content}}
  </article>
</body>
</html>
`
