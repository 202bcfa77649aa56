package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUri_Valid(t *testing.T) {
	u := &Uri{OriginalString: "https://example.com/path?q=1"}

	require.NoError(t, u.OnDeserialized(context.Background()))
	assert.Equal(t, "https", u.Scheme())
	assert.Equal(t, "example.com", u.Host())
}

func TestUri_Invalid(t *testing.T) {
	for _, input := range []string{"", "not a uri", "/relative/path", "http://[::1"} {
		u := &Uri{OriginalString: input}
		err := u.OnDeserialized(context.Background())

		var formatErr *UriFormatError
		require.ErrorAs(t, err, &formatErr, input)
		assert.Equal(t, input, formatErr.Input)
		assert.Empty(t, u.Host(), input)
	}
}
