package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/chefaid/chefaid/internal/domain/markdown"
	domain "github.com/chefaid/chefaid/internal/domain/settings"
	"github.com/chefaid/chefaid/internal/ports/inbound"
	apperrors "github.com/chefaid/chefaid/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestPrinter_Blocks(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, true)

	p.Blocks(markdown.Render("## Soup\n### Ingredients\n- **2** tomatoes\n3. Boil water\n\n**Total: $20**\nEnjoy"))

	assert.Equal(t, "\nSoup\nIngredients\n  • 2 tomatoes\n  3. Boil water\n\nTotal: $20\nEnjoy\n", out.String())
}

func TestPrinter_Presentation(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, true)
	link := "sms:?&body=Shopping%20List%3A%0Amilk"

	p.Presentation(&inbound.Presentation{
		Blocks:  markdown.Render("Milk"),
		SMSLink: &link,
	})

	assert.Contains(t, out.String(), "Milk\n")
	assert.Contains(t, out.String(), "Send shopping list: "+link)
}

func TestPrinter_Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"precondition", apperrors.NewPreconditionError("No Image", "Please take or upload a photo first."), "No Image: Please take or upload a photo first.\n"},
		{"oracle", apperrors.NewExternalServiceError("gemini", errors.New("quota exceeded")), "Error: quota exceeded\n"},
		{"validation", apperrors.NewValidationError("cuisine must be one of: Italian"), "Error: cuisine must be one of: Italian\n"},
		{"wrapped validation", fmt.Errorf("settings: %w", apperrors.NewValidationError("num_people must be at most 10")), "Error: num_people must be at most 10\n"},
		{"plain", errors.New("boom"), "Error: boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			NewPrinter(&out, true).Error(tt.err)

			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestPrinter_SettingsAndNotice(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, true)

	p.Settings(domain.Settings{APIKey: "abcdefgh", NumPeople: 3})
	p.Settings(domain.Default())
	p.Notice(inbound.Notice{Title: "Saved", Message: "Calendar file saved to your documents."})

	assert.Contains(t, out.String(), "Gemini API key: ••••efgh\n")
	assert.Contains(t, out.String(), "People: 3 (1-10)\n")
	assert.Contains(t, out.String(), "Gemini API key: not set\n")
	assert.Contains(t, out.String(), "Saved: Calendar file saved to your documents.\n")
}
