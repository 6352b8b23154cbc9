package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
)

func TestRenderTemplate(t *testing.T) {
	alice := model.Contact{ID: "a", FirstName: "Alice", LastName: "Nguyen", Company: "FintechCo"}

	tests := []struct {
		name     string
		template string
		contact  model.Contact
		want     string
	}{
		{"all fields", "Hi {first_name} {last_name} at {company}!", alice, "Hi Alice Nguyen at FintechCo!"},
		{"missing company", "Hi {first_name} from {company}", model.Contact{ID: "a", FirstName: "Alice"}, "Hi Alice from "},
		{"repeated placeholder", "{first_name}/{first_name}", alice, "Alice/Alice"},
		{"escaped braces", "{{first_name}} is {first_name}", alice, "{first_name} is Alice"},
		{"no placeholders", "plain text", alice, "plain text"},
		{"empty", "", alice, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderTemplate(tt.template, tt.contact)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTemplateErrors(t *testing.T) {
	for _, src := range []string{"Hi {title}", "Hi {first_name", "Hi }", "{}", "Hi {First_Name}"} {
		t.Run(src, func(t *testing.T) {
			_, err := ParseTemplate(src)
			var target *appErrors.ErrTemplate
			assert.ErrorAs(t, err, &target)
		})
	}
}

func TestTemplateReusedAcrossContacts(t *testing.T) {
	tmpl, err := ParseTemplate("Hello {first_name}")
	require.NoError(t, err)

	assert.Equal(t, "Hello Bruno", tmpl.Render(model.Contact{FirstName: "Bruno"}))
	assert.Equal(t, "Hello Chen", tmpl.Render(model.Contact{FirstName: "Chen"}))
}
