package notificationstore

import (
	"fmt"
	"payroll-backend/db/dbtest"
	"payroll-backend/models"
	dbmodels "payroll-backend/models/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNotificationStore(t *testing.T) {
	conn := dbtest.New(t)
	store := NewInstance(conn)

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	ids := make([]string, 0, 3)
	for n := 0; n < 3; n++ {
		rec := dbmodels.Notification{
			UserID:  "user-1",
			Type:    models.NotificationSystem,
			Title:   fmt.Sprintf("title %d", n),
			Message: "message",
		}
		rec.CreatedAt = base.Add(time.Duration(n) * time.Minute)
		id, err := store.Create(rec)
		require.Nil(t, err)
		ids = append(ids, id)
	}
	_, err := store.Create(dbmodels.Notification{UserID: "user-2", Type: models.NotificationSystem, Title: "other"})
	require.Nil(t, err)

	t.Run(`list order and limit check`, func(t *testing.T) {
		list, err := store.List("user-1", 2)
		require.Nil(t, err)
		require.Len(t, list, 2)
		require.Equal(t, ids[2], list[0].ID)
		require.Equal(t, ids[1], list[1].ID)
	})

	t.Run(`mark read check`, func(t *testing.T) {
		count, err := store.UnreadCount("user-1")
		require.Nil(t, err)
		require.Equal(t, int64(3), count)

		require.Nil(t, store.MarkRead(ids[0]))
		count, err = store.UnreadCount("user-1")
		require.Nil(t, err)
		require.Equal(t, int64(2), count)

		rec, err := store.GetByID(ids[0])
		require.Nil(t, err)
		require.True(t, rec.Read)
	})

	t.Run(`mark all read check`, func(t *testing.T) {
		require.Nil(t, store.MarkAllRead("user-1"))
		count, err := store.UnreadCount("user-1")
		require.Nil(t, err)
		require.Equal(t, int64(0), count)

		// повторный вызов ничего не меняет
		require.Nil(t, store.MarkAllRead("user-1"))
		count, err = store.UnreadCount("user-1")
		require.Nil(t, err)
		require.Equal(t, int64(0), count)

		count, err = store.UnreadCount("user-2")
		require.Nil(t, err)
		require.Equal(t, int64(1), count)
	})

	t.Run(`unknown record check`, func(t *testing.T) {
		rec, err := store.GetByID("unknown")
		require.Nil(t, err)
		require.Nil(t, rec)
	})
}
