package services

import (
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoFactorGenerateAndValidate(t *testing.T) {
	tf := TwoFactor{Issuer: "ResourcesHub"}

	setup, err := tf.GenerateSecret("reader@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, setup.Secret)
	assert.True(t, strings.HasPrefix(setup.QRCode, "data:image/png;base64,"))

	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	assert.True(t, tf.Validate(code, setup.Secret))
	assert.False(t, tf.Validate("not-a-code", setup.Secret))
	assert.False(t, tf.Validate("", setup.Secret))
}
