package services

import (
	"regexp"
	"strings"
)

// Fragment is a piece of highlighted text.
type Fragment struct {
	Text  string
	Match bool
}

// Highlighter marks every case-insensitive occurrence of a literal query.
// The query is never interpreted as a pattern.
type Highlighter struct {
	re *regexp.Regexp
}

// NewHighlighter compiles a highlighter for the raw query.
// A blank query produces a highlighter that marks nothing.
func NewHighlighter(query string) *Highlighter {
	if strings.TrimSpace(query) == "" {
		return &Highlighter{}
	}
	return &Highlighter{re: regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))}
}

// Fragments splits text into matched and unmatched pieces, in order.
func (h *Highlighter) Fragments(text string) []Fragment {
	if text == "" {
		return nil
	}
	if h.re == nil {
		return []Fragment{{Text: text}}
	}

	locs := h.re.FindAllStringIndex(text, -1)
	frags := make([]Fragment, 0, len(locs)*2+1)
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			frags = append(frags, Fragment{Text: text[prev:loc[0]]})
		}
		frags = append(frags, Fragment{Text: text[loc[0]:loc[1]], Match: true})
		prev = loc[1]
	}
	if prev < len(text) {
		frags = append(frags, Fragment{Text: text[prev:]})
	}
	return frags
}

// Apply renders text with every fragment passed through plain or mark.
// A nil plain leaves unmatched text as is.
func (h *Highlighter) Apply(text string, plain, mark func(string) string) string {
	var b strings.Builder
	for _, f := range h.Fragments(text) {
		switch {
		case f.Match:
			b.WriteString(mark(f.Text))
		case plain != nil:
			b.WriteString(plain(f.Text))
		default:
			b.WriteString(f.Text)
		}
	}
	return b.String()
}

// Highlight wraps every occurrence of query in text with open and close.
func Highlight(text, query, open, closing string) string {
	return NewHighlighter(query).Apply(text, nil, func(s string) string {
		return open + s + closing
	})
}
