package shopping

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "no marker",
			input:  "## Pasta\n- 200g spaghetti",
			wantOK: false,
		},
		{
			name:   "bold header",
			input:  "Intro\n**SHOPPING LIST**\n- Eggs\n- Milk",
			want:   "- Eggs\n- Milk",
			wantOK: true,
		},
		{
			name:   "heading and mixed case",
			input:  "Recipe\n## Shopping List\n* Flour\n* Sugar\n",
			want:   "Flour\n Sugar",
			wantOK: true,
		},
		{
			name:   "last occurrence wins",
			input:  "see the shopping list below\n### MASTER SHOPPING LIST\nProduce: kale",
			want:   "Produce: kale",
			wantOK: true,
		},
		{
			name:   "marker at end",
			input:  "Nothing after the SHOPPING LIST",
			want:   "",
			wantOK: true,
		},
		{
			name:   "marker split across lines does not match",
			input:  "SHOPPING\nLIST",
			wantOK: false,
		},
		{
			name:   "non ascii content kept",
			input:  "shopping list: crème fraîche, jalapeño",
			want:   ": crème fraîche, jalapeño",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			list, ok := Extract(tt.input)

			// Assert
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, list.Text)
		})
	}
}

func TestExtract_PresenceMatchesUpperCasedContains(t *testing.T) {
	inputs := []string{
		"",
		"shopping list",
		"Shopping Lists are great",
		"shoppinglist",
		"ſhopping liſt",
		"grocery list only",
		"ÉPICERIE: shopping   list",
	}

	for _, in := range inputs {
		_, ok := Extract(in)
		assert.Equal(t, strings.Contains(strings.ToUpper(in), Marker), ok, "input %q", in)
	}
}

func TestList_Message(t *testing.T) {
	list := List{Text: "- Eggs\n- Milk"}

	assert.Equal(t, "Shopping List:\n- Eggs\n- Milk", list.Message())
}

func TestList_SMSLink(t *testing.T) {
	list := List{Text: "Eggs & milk (2%)"}

	link := list.SMSLink()

	assert.Equal(t, "sms:?&body=Shopping%20List%3A%0AEggs%20%26%20milk%20(2%25)", link)
}

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc-_.!~*'()", "abc-_.!~*'()"},
		{"a b+c", "a%20b%2Bc"},
		{"x=1&y=2", "x%3D1%26y%3D2"},
		{"café", "caf%C3%A9"},
		{"line1\nline2", "line1%0Aline2"},
		{"#/?:@", "%23%2F%3F%3A%40"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeURIComponent(tt.in))
		})
	}
}
