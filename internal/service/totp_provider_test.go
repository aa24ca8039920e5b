package service

import (
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEnrollment(t *testing.T) {
	provider := NewTOTPProvider("VaultGuard")

	enrollment, err := provider.GenerateEnrollment("a@b.com")
	require.NoError(t, err)

	assert.NotEmpty(t, enrollment.Secret)
	assert.Contains(t, enrollment.OTPAuthURL, "otpauth://totp/")
	assert.Contains(t, enrollment.OTPAuthURL, "a@b.com")
	assert.True(t, strings.HasPrefix(enrollment.QRCodeDataURL, "data:image/png;base64,"))

	// Two enrollments never share a secret.
	second, err := provider.GenerateEnrollment("a@b.com")
	require.NoError(t, err)
	assert.NotEqual(t, enrollment.Secret, second.Secret)
}

func TestValidateCode(t *testing.T) {
	provider := NewTOTPProvider("VaultGuard")

	enrollment, err := provider.GenerateEnrollment("a@b.com")
	require.NoError(t, err)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)

	assert.True(t, provider.ValidateCode(enrollment.Secret, code))
	assert.False(t, provider.ValidateCode(enrollment.Secret, "000000"))
	assert.False(t, provider.ValidateCode(enrollment.Secret, "not-a-code"))
}

func TestValidateCodeSkewWindow(t *testing.T) {
	provider := NewTOTPProvider("VaultGuard")

	enrollment, err := provider.GenerateEnrollment("a@b.com")
	require.NoError(t, err)

	// A code from the previous time step is still inside the ±1 window.
	previous, err := totp.GenerateCode(enrollment.Secret, time.Now().Add(-30*time.Second))
	require.NoError(t, err)
	assert.True(t, provider.ValidateCode(enrollment.Secret, previous))

	// Two steps back falls outside it.
	stale, err := totp.GenerateCode(enrollment.Secret, time.Now().Add(-90*time.Second))
	require.NoError(t, err)
	assert.False(t, provider.ValidateCode(enrollment.Secret, stale))
}
