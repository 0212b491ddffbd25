package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ask(t *testing.T, input, question, def string, choices []string) (string, string) {
	t.Helper()
	var out bytes.Buffer
	p := New(strings.NewReader(input), &out)
	answer, err := p.Ask(question, def, choices)
	require.NoError(t, err)
	return answer, out.String()
}

func TestAskAcceptsChoice(t *testing.T) {
	answer, prompt := ask(t, "y\n", "Send it", "", []string{"n", "y"})
	assert.Equal(t, "y", answer)
	assert.Equal(t, "Send it (n/y): ", prompt)
}

func TestAskRepromptsOnInvalidChoice(t *testing.T) {
	answer, prompt := ask(t, "maybe\ny\n", "Send it", "", []string{"n", "y"})
	assert.Equal(t, "y", answer)
	assert.Equal(t, 2, strings.Count(prompt, "Send it (n/y): "))
}

func TestAskEmptyAnswerTakesDefault(t *testing.T) {
	answer, prompt := ask(t, "\n", "From", "env@example.fi", nil)
	assert.Equal(t, "env@example.fi", answer)
	assert.Equal(t, "From: [env@example.fi] ", prompt)
}

func TestAskEmptyAnswerWithoutDefaultReprompts(t *testing.T) {
	answer, _ := ask(t, "\n\nsmtp.example.fi\n", "SMTP server", "", nil)
	assert.Equal(t, "smtp.example.fi", answer)
}

func TestAskFreeFormAnswer(t *testing.T) {
	answer, _ := ask(t, "Hei kaikille\n", "Message", "", nil)
	assert.Equal(t, "Hei kaikille", answer)
}

func TestAskEOF(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader(""), &out)
	_, err := p.Ask("Question", "", nil)
	assert.Error(t, err)
}
