package schema

import (
	"fmt"
	"strings"
)

type Article struct {
	Title    string
	Content  string
	Metadata map[string]any
}

func (a Article) String() string {
	return a.Content
}

func NewArticle(content string, metadata map[string]any) Article {
	if metadata == nil {
		metadata = make(map[string]any)
	}
	return Article{
		Content:  content,
		Metadata: metadata,
	}
}

// Unit is one element of a composed thread, sized to fit a single post.
type Unit struct {
	Text         string `json:"text"`          // Rendered text, position marker included.
	Order        int    `json:"order"`         // 1-based position within the thread.
	Length       int    `json:"length"`        // Unicode codepoints in Text, not bytes.
	ExceedsLimit bool   `json:"exceeds_limit"` // True only when an unbreakable token forced an oversized unit.
}

func (u Unit) String() string {
	return fmt.Sprintf("[%d] (%d) %s", u.Order, u.Length, u.Text)
}

// Thread is the ordered result of one split operation.
type Thread struct {
	Units []Unit `json:"units"`
}

func (t Thread) Len() int {
	return len(t.Units)
}

func (t Thread) IsEmpty() bool {
	return len(t.Units) == 0
}

// Texts returns the rendered unit texts in order, ready for display or copy.
func (t Thread) Texts() []string {
	texts := make([]string, 0, len(t.Units))
	for _, u := range t.Units {
		texts = append(texts, u.Text)
	}
	return texts
}

func (t Thread) String() string {
	return strings.Join(t.Texts(), "\n\n")
}
