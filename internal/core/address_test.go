package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAddress(t *testing.T) {
	tests := []struct {
		input string
		name  string
		email string
	}{
		{"foo@bar.com", "", "foo@bar.com"},
		{"Foo Bar foo@bar.com", "Foo Bar", "foo@bar.com"},
		{`  "Foo Bar" <foo@bar.com>, `, "Foo Bar", "foo@bar.com"},
		{"Matti Meikäläinen <matti@example.fi>", "Matti Meikäläinen", "matti@example.fi"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			addr, err := SplitAddress(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.name, addr.Name)
			assert.Equal(t, tt.email, addr.Email)
		})
	}
}

func TestSplitAddressInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "no address here"} {
		_, err := SplitAddress(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, IsConfigError(err))
	}
}

func TestSplitAddressIdempotent(t *testing.T) {
	addr, err := SplitAddress("Foo Bar foo@bar.com")
	require.NoError(t, err)

	again, err := SplitAddress(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, again)
}

func TestAddressString(t *testing.T) {
	assert.Equal(t, "foo@bar.com", Address{Email: "foo@bar.com"}.String())
	assert.Equal(t, "Foo Bar <foo@bar.com>",
		Address{Name: "Foo Bar", Email: "foo@bar.com"}.String())
}

func TestFormatAddressHeader(t *testing.T) {
	header := FormatAddressHeader([]Address{
		{Name: "Foo Bar", Email: "foo@bar.com"},
		{Email: "baz@qux.com"},
	})
	assert.Equal(t, "Foo Bar <foo@bar.com>, baz@qux.com", header)
}
