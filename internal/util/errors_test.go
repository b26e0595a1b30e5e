package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	got := FormatError(MailError, "sending to a@x.com", errors.New("535 bad credentials"))
	assert.Equal(t, "Mail error: sending to a@x.com - 535 bad credentials", got)
}

func TestFormatErrorf(t *testing.T) {
	got := FormatErrorf(ConfigError, "loading configuration", "missing %s", "SENDER_EMAIL")
	assert.Equal(t, "Config error: loading configuration - missing SENDER_EMAIL", got)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "**", Mask(""))
	assert.Equal(t, "**", Mask("ab"))
	assert.Equal(t, "s******t", Mask("secret"))
}
