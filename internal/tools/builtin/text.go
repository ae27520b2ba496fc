package builtin

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"toolbridge/internal/tools"
	"toolbridge/internal/value"
)

// TextName is the registry name of the text tool.
const TextName = "text"

// TextParams are the decoded parameters of the text tool.
type TextParams struct {
	Operation string `json:"operation"`
	Text      string `json:"text"`
}

// TextResult is returned by the text tool. Result is a string for
// transformations and an integer for counts.
type TextResult struct {
	Operation string      `json:"operation"`
	Result    value.Value `json:"result"`
	Length    int         `json:"length"`
}

// Text transforms or measures a string.
type Text struct{}

var _ tools.Tool[TextParams, TextResult] = (*Text)(nil)

// NewText returns the text tool.
func NewText() *Text { return &Text{} }

func (t *Text) Name() string { return TextName }

func (t *Text) Description() string {
	return "Transform or measure text: uppercase, lowercase, reverse, title, word_count or char_count"
}

func (t *Text) Schema() tools.ToolSchema {
	return tools.ToolSchema{
		Required: []string{"operation", "text"},
		Properties: map[string]tools.Property{
			"operation": {
				Type:        "string",
				Description: "The operation to apply",
				Enum:        []any{"uppercase", "lowercase", "reverse", "title", "word_count", "char_count"},
			},
			"text": {
				Type:        "string",
				Description: "Input text",
			},
		},
	}
}

func (t *Text) Execute(ctx context.Context, p TextParams) (TextResult, error) {
	var result value.Value
	switch p.Operation {
	case "uppercase":
		result = value.String(strings.ToUpper(p.Text))
	case "lowercase":
		result = value.String(strings.ToLower(p.Text))
	case "reverse":
		result = value.String(reverse(p.Text))
	case "title":
		result = value.String(title(p.Text))
	case "word_count":
		result = value.Integer(int64(len(strings.Fields(p.Text))))
	case "char_count":
		result = value.Integer(int64(utf8.RuneCountInString(p.Text)))
	default:
		return TextResult{}, tools.InvalidParametersf("unknown operation %q", p.Operation)
	}

	return TextResult{
		Operation: p.Operation,
		Result:    result,
		Length:    utf8.RuneCountInString(p.Text),
	}, nil
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// title upper-cases the first letter of each whitespace-separated word and
// lower-cases the rest.
func title(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	start := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			start = true
			b.WriteRune(r)
		case start:
			start = false
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
