package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoroki/internal/core/apperror"
)

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8800")
	require.NoError(t, err)
	assert.Equal(t, Color{Red: 0xff, Green: 0x88, Blue: 0x00}, c)
	assert.Equal(t, "#ff8800", c.Hex())
}

func TestParseColorRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "ff8800", "#ff880", "#ff88001", "#gggggg", "red"} {
		_, err := ParseColor(s)
		require.Error(t, err, "input %q", s)
		assert.True(t, apperror.IsCode(err, apperror.CodeInvalidColor))
	}
}
