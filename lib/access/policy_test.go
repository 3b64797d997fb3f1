package accesspolicy

import (
	"payroll-backend/models"
	dbmodels "payroll-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanRead(t *testing.T) {
	admin := Actor{ID: "admin-1", Role: models.AdminRole}
	owner := Actor{ID: "emp-1", Role: models.EmployeeRole}
	stranger := Actor{ID: "emp-2", Role: models.EmployeeRole}

	expense := dbmodels.Expense{EmployeeID: "emp-1"}
	slip := dbmodels.SalarySlip{EmployeeID: "emp-1"}
	notification := dbmodels.Notification{UserID: "emp-1"}

	t.Run(`owner check`, func(t *testing.T) {
		require.True(t, CanRead(owner, expense))
		require.True(t, CanRead(owner, slip))
		require.True(t, CanRead(owner, notification))
	})
	t.Run(`admin check`, func(t *testing.T) {
		require.True(t, CanRead(admin, expense))
		require.True(t, CanRead(admin, slip))
		require.False(t, CanRead(admin, notification))
	})
	t.Run(`stranger check`, func(t *testing.T) {
		require.False(t, CanRead(stranger, expense))
		require.False(t, CanRead(stranger, slip))
		require.False(t, CanRead(stranger, notification))
	})
	t.Run(`anonymous check`, func(t *testing.T) {
		require.False(t, CanRead(Actor{}, dbmodels.Expense{}))
		require.False(t, CanRead(owner, nil))
	})
}

func TestCanTransition(t *testing.T) {
	admin := Actor{ID: "admin-1", Role: models.AdminRole}
	owner := Actor{ID: "emp-1", Role: models.EmployeeRole}
	expense := dbmodels.Expense{EmployeeID: "emp-1", Status: models.ExpenseStatusPending}

	require.True(t, CanTransition(admin, expense, ActionApprove))
	require.True(t, CanTransition(admin, expense, ActionReject))
	require.False(t, CanTransition(owner, expense, ActionApprove))
	require.False(t, CanTransition(owner, expense, ActionReject))
	require.False(t, CanTransition(admin, expense, Action("delete")))
}

func TestRolePredicates(t *testing.T) {
	admin := Actor{ID: "admin-1", Role: models.AdminRole}
	employee := Actor{ID: "emp-1", Role: models.EmployeeRole}

	require.True(t, CanSubmitExpense(employee))
	require.False(t, CanSubmitExpense(admin))
	require.True(t, CanCreateSlip(admin))
	require.False(t, CanCreateSlip(employee))
	require.True(t, CanUpdateSlip(admin))
	require.Equal(t, "", OwnerFilter(admin))
	require.Equal(t, "emp-1", OwnerFilter(employee))
}
