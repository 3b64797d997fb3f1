package connectionhub

import (
	wsmodels "payroll-backend/models/ws"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHubWithoutClients(t *testing.T) {
	hub := NewInstance(nil)
	require.False(t, hub.IsConnected("user-1"))
	require.False(t, hub.SendMessage(wsmodels.ServerMessage{ToUserID: "user-1", Code: CodeNotification}))
	// удаление неизвестного клиента не падает
	hub.DeleteClient("user-1", nil)
}
