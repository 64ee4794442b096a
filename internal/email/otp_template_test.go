package email

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOTPMail(t *testing.T) {
	subject, htmlBody, textBody, err := OTPMail("unosign", "007214", 10*time.Minute)
	require.NoError(t, err)

	require.Equal(t, "Your unosign Login Code", subject)
	require.Contains(t, textBody, "007214")
	require.Contains(t, textBody, "10 minutes")
	require.Contains(t, htmlBody, "007214")
	require.Contains(t, htmlBody, "unosign")
	require.Contains(t, htmlBody, "10 minutes")
}

func TestOTPMailEscapesAppName(t *testing.T) {
	_, htmlBody, _, err := OTPMail("<script>x</script>", "123456", time.Minute)
	require.NoError(t, err)
	require.False(t, strings.Contains(htmlBody, "<script>x</script>"), "el nombre debe escaparse en el HTML")
}
