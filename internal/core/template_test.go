package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldKey(t *testing.T) {
	assert.Equal(t, "erapaiva", FoldKey("eräpäivä"))
	assert.Equal(t, "summa", FoldKey("summa"))
	assert.Equal(t, "jasenmaksu", FoldKey("jäsenmaksu"))
}

func TestRenderSubstitutesFields(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render("Hei {{ nimi }}, viitteesi on {{ viite }}.",
		rec("nimi", "Matti", "viite", "100"))
	require.NoError(t, err)
	assert.Equal(t, "Hei Matti, viitteesi on 100.", out)
}

func TestRenderFoldedPlaceholders(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render("Eräpäivä: {{ erapaiva }}",
		rec("eräpäivä", "15.3.2024"))
	require.NoError(t, err)
	assert.Equal(t, "Eräpäivä: 15.3.2024", out)
}

func TestRenderUnknownFieldFails(t *testing.T) {
	r := NewRenderer()
	_, err := r.Render("Hei {{ tuntematon }}", rec("nimi", "Matti"))
	require.Error(t, err)

	var te *TemplateError
	assert.True(t, errors.As(err, &te))
	assert.Contains(t, err.Error(), "tuntematon")
}

func TestComposeMessage(t *testing.T) {
	msg := ComposeMessage(MessageHeaders{
		From:    Address{Email: "sender@example.fi"},
		To:      []Address{{Name: "Matti", Email: "matti@example.fi"}},
		CC:      []Address{{Email: "cc@example.fi"}},
		Subject: "Lasku",
	}, "Hei,\n\nOhessa lasku.")

	text := string(msg)
	assert.Contains(t, text, "From: sender@example.fi\r\n")
	assert.Contains(t, text, "To: Matti <matti@example.fi>\r\n")
	assert.Contains(t, text, "Cc: cc@example.fi\r\n")
	assert.Contains(t, text, "Subject: Lasku\r\n")
	assert.Contains(t, text, `Content-Type: text/plain; charset="utf-8"`+"\r\n")
	assert.Contains(t, text, "\r\n\r\nHei,\r\n\r\nOhessa lasku.\r\n")
	assert.NotContains(t, text, "Bcc:")
}
