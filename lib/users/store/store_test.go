package usersstore

import (
	"payroll-backend/db"
	"payroll-backend/db/dbtest"
	"payroll-backend/models"
	dbmodels "payroll-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsersStore(t *testing.T) {
	t.Run(`email normalize and lookup check`, func(t *testing.T) {
		store := NewInstance(dbtest.New(t))
		id, err := store.Create(dbmodels.User{Name: "John Doe", Email: "  John.Doe@Example.com ", Role: models.EmployeeRole})
		require.Nil(t, err)
		require.NotEmpty(t, id)

		rec, err := store.FindByEmail("JOHN.DOE@example.com")
		require.Nil(t, err)
		require.NotNil(t, rec)
		require.Equal(t, "john.doe@example.com", rec.Email)

		rec, err = store.FindByEmailAndRole("john.doe@example.com", models.AdminRole)
		require.Nil(t, err)
		require.Nil(t, rec)

		rec, err = store.GetByID("unknown")
		require.Nil(t, err)
		require.Nil(t, rec)
	})

	t.Run(`duplicate email check`, func(t *testing.T) {
		store := NewInstance(dbtest.New(t))
		_, err := store.Create(dbmodels.User{Name: "A", Email: "a@example.com", Role: models.EmployeeRole})
		require.Nil(t, err)
		_, err = store.Create(dbmodels.User{Name: "B", Email: "A@EXAMPLE.COM", Role: models.EmployeeRole})
		require.True(t, db.IsUniqueViolation(err))
	})

	t.Run(`single admin index check`, func(t *testing.T) {
		store := NewInstance(dbtest.New(t))
		_, err := store.Create(dbmodels.User{Name: "Admin", Email: "admin@example.com", Role: models.AdminRole})
		require.Nil(t, err)
		_, err = store.Create(dbmodels.User{Name: "E1", Email: "e1@example.com", Role: models.EmployeeRole})
		require.Nil(t, err)
		_, err = store.Create(dbmodels.User{Name: "E2", Email: "e2@example.com", Role: models.EmployeeRole})
		require.Nil(t, err)

		_, err = store.Create(dbmodels.User{Name: "Admin 2", Email: "admin2@example.com", Role: models.AdminRole})
		require.True(t, db.IsUniqueViolation(err))

		count, err := store.CountByRole(models.AdminRole)
		require.Nil(t, err)
		require.Equal(t, int64(1), count)

		list, err := store.ListByRole(models.EmployeeRole)
		require.Nil(t, err)
		require.Len(t, list, 2)
	})
}
