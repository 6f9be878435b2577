package markdown

import (
	"bytes"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/membridge/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.MarkdownRenderer = (*Normaliser)(nil)

// Normaliser renders Markdown notes.
type Normaliser struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New creates a new Markdown normaliser with GitHub-flavoured extensions.
// Inline HTML in notes is kept but sanitised.
func New() *Normaliser {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("code", "pre", "span")
	policy.AllowRelativeURLs(true)
	policy.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	policy.AllowAttrs("checked", "disabled").OnElements("input")

	return &Normaliser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: policy,
	}
}

// Render converts source to sanitised HTML.
// The title comes from the frontmatter "title" key, else the first H1.
// It is empty when neither exists.
func (n *Normaliser) Render(source string) (string, string, error) {
	meta, body := SplitFrontmatter(source)

	var buf bytes.Buffer
	if err := n.md.Convert([]byte(body), &buf); err != nil {
		return "", "", fmt.Errorf("render markdown: %w", err)
	}

	title := frontmatterString(meta, "title")
	if title == "" {
		title = extractMarkdownTitle(body)
	}
	return n.policy.Sanitize(buf.String()), title, nil
}

// PlainText strips Markdown formatting and frontmatter for terminal output.
func (n *Normaliser) PlainText(source string) string {
	_, body := SplitFrontmatter(source)
	return stripMarkdown(body)
}

// SplitFrontmatter separates a leading YAML frontmatter block from the body.
// Malformed frontmatter is left in the body untouched.
func SplitFrontmatter(source string) (map[string]any, string) {
	normalised := strings.ReplaceAll(source, "\r\n", "\n")
	if !strings.HasPrefix(normalised, "---\n") {
		return nil, source
	}

	rest := normalised[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, source
	}
	closing := rest[end+len("\n---"):]
	if closing != "" && !strings.HasPrefix(closing, "\n") {
		return nil, source
	}

	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil {
		return nil, source
	}
	return meta, strings.TrimPrefix(closing, "\n")
}

func frontmatterString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	s, ok := meta[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// extractMarkdownTitle returns the first H1 heading, if any.
func extractMarkdownTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	return ""
}

// TitleFromName turns a file name into a readable fallback title.
func TitleFromName(name string) string {
	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	return strings.ReplaceAll(base, "-", " ")
}

var (
	codeBlockRe    = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe   = regexp.MustCompile("`([^`]+)`")
	imageRe        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	linkRe         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headingRe      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquoteRe   = regexp.MustCompile(`(?m)^>\s*`)
	hrRe           = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkerRe   = regexp.MustCompile(`(?m)^(\s*)[-*+]\s+(\[[ xX]\]\s+)?`)
	numberedListRe = regexp.MustCompile(`(?m)^(\s*)\d+\.\s+`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes common markdown formatting.
// Code block contents are kept since notes often hold commands worth reading.
func stripMarkdown(content string) string {
	content = codeBlockRe.ReplaceAllStringFunc(content, func(block string) string {
		lines := strings.Split(strings.Trim(block, "`"), "\n")
		if len(lines) > 1 {
			lines = lines[1:] // language tag
		}
		return strings.TrimRight(strings.Join(lines, "\n"), "\n")
	})
	content = inlineCodeRe.ReplaceAllString(content, "$1")
	content = imageRe.ReplaceAllString(content, "")
	content = linkRe.ReplaceAllString(content, "$1")
	content = headingRe.ReplaceAllString(content, "")

	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")

	content = blockquoteRe.ReplaceAllString(content, "")
	content = hrRe.ReplaceAllString(content, "")
	content = listMarkerRe.ReplaceAllString(content, "$1")
	content = numberedListRe.ReplaceAllString(content, "$1")
	content = multiNewlineRe.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
