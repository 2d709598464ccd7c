package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToPlainText(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text passthrough",
			input:    "Hi Danai - I was CC'd on the message yesterday...",
			expected: "Hi Danai - I was CC'd on the message yesterday...",
		},
		{
			name:     "paragraphs",
			input:    "<div><p>Hi Charla,</p><p>apologies for our delayed response.</p></div>",
			expected: "Hi Charla,\napologies for our delayed response.",
		},
		{
			name:     "style stripped",
			input:    "<style>p { color: red }</style><p>body text</p>",
			expected: "body text",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			out, err := ToPlainText(test.input)
			require.NoError(t, err)
			require.Equal(t, test.expected, out)
		})
	}
}
