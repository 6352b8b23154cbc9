// internal/service/template.go
package service

import (
	"strings"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
)

// Supported placeholders and the contact field each one reads.
var placeholders = map[string]func(c model.Contact) string{
	"first_name": func(c model.Contact) string { return c.FirstName },
	"last_name":  func(c model.Contact) string { return c.LastName },
	"company":    func(c model.Contact) string { return c.Company },
}

type templatePart struct {
	literal string
	field   string
}

// Template is a parsed message body. "{{" and "}}" are literal braces.
type Template struct {
	parts []templatePart
}

func ParseTemplate(src string) (*Template, error) {
	var (
		parts []templatePart
		lit   strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, templatePart{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '{':
			if i+1 < len(src) && src[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(src[i+1:], '}')
			if end < 0 {
				return nil, appErrors.NewTemplateError("", "unclosed '{'")
			}
			name := src[i+1 : i+1+end]
			if _, ok := placeholders[name]; !ok {
				return nil, appErrors.NewTemplateError(name, "unsupported placeholder")
			}
			flush()
			parts = append(parts, templatePart{field: name})
			i += end + 1
		case '}':
			if i+1 < len(src) && src[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, appErrors.NewTemplateError("", "single '}' encountered")
		default:
			lit.WriteByte(src[i])
		}
	}
	flush()

	return &Template{parts: parts}, nil
}

// Render substitutes the contact's fields; absent fields render as "".
func (t *Template) Render(c model.Contact) string {
	var b strings.Builder
	for _, p := range t.parts {
		if p.field != "" {
			b.WriteString(placeholders[p.field](c))
			continue
		}
		b.WriteString(p.literal)
	}
	return b.String()
}

// RenderTemplate parses and renders in one step.
func RenderTemplate(src string, c model.Contact) (string, error) {
	t, err := ParseTemplate(src)
	if err != nil {
		return "", err
	}
	return t.Render(c), nil
}
