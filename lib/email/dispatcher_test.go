package email

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu      sync.Mutex
	sent    []Message
	fail    bool
	release chan struct{}
}

func (f *fakeSender) Send(msg Message) error {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func TestDispatcher(t *testing.T) {
	t.Run(`messages delivered on stop`, func(t *testing.T) {
		sender := &fakeSender{}
		dispatcher := NewInstance(sender, 10, 2)
		for n := 0; n < 5; n++ {
			dispatcher.Dispatch(Message{Subject: "subject", Text: "text"})
		}
		dispatcher.Stop(context.Background())
		require.Equal(t, 5, sender.count())
	})

	t.Run(`transport failure is swallowed`, func(t *testing.T) {
		sender := &fakeSender{fail: true}
		dispatcher := NewInstance(sender, 10, 1)
		dispatcher.Dispatch(Message{Subject: "subject"})
		dispatcher.Stop(context.Background())
		require.Equal(t, 0, sender.count())
	})

	t.Run(`dispatch does not block on full queue`, func(t *testing.T) {
		sender := &fakeSender{release: make(chan struct{})}
		dispatcher := NewInstance(sender, 1, 1)
		start := time.Now()
		for n := 0; n < 10; n++ {
			dispatcher.Dispatch(Message{Subject: "subject"})
		}
		require.Less(t, time.Since(start), time.Second)
		close(sender.release)
		dispatcher.Stop(context.Background())
		// один в работе и один в очереди, остальные отброшены
		require.LessOrEqual(t, sender.count(), 2)
		require.GreaterOrEqual(t, sender.count(), 1)
	})

	t.Run(`dispatch after stop is dropped`, func(t *testing.T) {
		sender := &fakeSender{}
		dispatcher := NewInstance(sender, 1, 1)
		dispatcher.Stop(context.Background())
		dispatcher.Dispatch(Message{Subject: "late"})
		dispatcher.Stop(context.Background())
		require.Equal(t, 0, sender.count())
	})
}

func TestBuildMIME(t *testing.T) {
	msg := UpdateNotification(UpdateTypeExpenseApproval, "Admin", "admin@example.com", "Expense approved")
	buf, err := BuildMIME("noreply@example.com", []string{"ops@example.com"}, msg)
	require.Nil(t, err)
	raw := buf.String()
	require.True(t, strings.Contains(raw, "multipart/alternative"))
	require.True(t, strings.Contains(raw, "text/plain"))
	require.True(t, strings.Contains(raw, "text/html"))
	require.True(t, strings.Contains(raw, "ops@example.com"))

	plain, err := BuildMIME("noreply@example.com", []string{"ops@example.com"}, Message{Subject: "s", Text: "only text"})
	require.Nil(t, err)
	require.False(t, strings.Contains(plain.String(), "text/html"))
}

func TestTemplates(t *testing.T) {
	now = func() time.Time { return time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC) }
	defer func() { now = time.Now }()

	msg := UpdateNotification(UpdateTypeExpenseRejection, "Admin", "admin@example.com",
		"Expense of $120.50 for 2025-01 submitted by John (john@example.com) has been rejected. Reason: No reason provided")
	require.Equal(t, "📝 Update Notification - Payroll Management System", msg.Subject)
	require.True(t, strings.Contains(msg.Text, "Update Type: Expense Rejection"))
	require.True(t, strings.Contains(msg.Text, "User: Admin (admin@example.com)"))
	require.True(t, strings.Contains(msg.Text, "15.01.2025 10:30:00"))
	require.True(t, strings.Contains(msg.HTML, "<strong>Details:</strong>"))

	login := LoginNotification("Admin", "admin@example.com", "admin")
	require.Equal(t, "🔐 Admin Login - Payroll Management System", login.Subject)
	login = LoginNotification("John", "john@example.com", "employee")
	require.Equal(t, "🔐 User Login - Payroll Management System", login.Subject)

	reg := RegistrationNotification("John", "john@example.com", "employee")
	require.Equal(t, "👤 New User Registration - Payroll Management System", reg.Subject)
	require.True(t, strings.Contains(reg.Text, "Registration Time: 15.01.2025 10:30:00"))
}
