package smtp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendRawNotConfigured(t *testing.T) {
	require.Nil(t, Connect("", "", "", "", false))
	require.False(t, Instance.IsConfigured())
	err := Instance.SendRaw("noreply@example.com", []string{"ops@example.com"}, strings.NewReader("body"))
	require.NotNil(t, err)
}

func TestSendRawNoRecipients(t *testing.T) {
	require.Nil(t, Connect("user", "pass", "127.0.0.1", "2525", false))
	require.True(t, Instance.IsConfigured())
	err := Instance.SendRaw("noreply@example.com", nil, strings.NewReader("body"))
	require.NotNil(t, err)
}
