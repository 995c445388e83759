package store

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB opens gorm on a sqlmock connection speaking the MySQL dialect.
// Unmet expectations fail the test at cleanup.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		sqlDB.Close()
	})
	return db, mock
}

// jsonArg matches a JSON column argument by value rather than by bytes.
type jsonArg string

func (a jsonArg) Match(v driver.Value) bool {
	var got []byte
	switch s := v.(type) {
	case string:
		got = []byte(s)
	case []byte:
		got = s
	default:
		return false
	}
	var want, have any
	if json.Unmarshal([]byte(a), &want) != nil || json.Unmarshal(got, &have) != nil {
		return false
	}
	wb, _ := json.Marshal(want)
	hb, _ := json.Marshal(have)
	return bytes.Equal(wb, hb)
}
