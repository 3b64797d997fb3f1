// Package dbtest поднимает sqlite в памяти для тестов хранилищ
package dbtest

import (
	"fmt"
	"payroll-backend/db"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func New(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.Nil(t, err)
	sqlDB, err := conn.DB()
	require.Nil(t, err)
	// одно соединение, чтобы транзакции sqlite не блокировали друг друга
	sqlDB.SetMaxOpenConns(1)
	require.Nil(t, db.AutoMigrateDB(conn))
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return conn
}
