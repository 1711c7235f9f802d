package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

func TestMySQLDSN(t *testing.T) {
	assert.Equal(t,
		"app:secret@tcp(db:3306)/rooms?parseTime=true&loc=UTC",
		mysqlDSN("mysql://app:secret@db:3306/rooms"))
	assert.Equal(t,
		"tcp(localhost:3306)/rooms?charset=utf8mb4&parseTime=true&loc=UTC",
		mysqlDSN("mysql://localhost:3306/rooms?charset=utf8mb4"))
	assert.Equal(t,
		"u:p@tcp(h:1)/d?parseTime=true",
		mysqlDSN("mysql://u:p@h:1/d?parseTime=true"))
}

func TestOpenMemory(t *testing.T) {
	db, err := OpenMemory(t.Name())
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)

	dialector, ok := db.Dialector.(*gormsqlite.Dialector)
	require.True(t, ok)
	assert.Equal(t, sqliteDriver, dialector.DriverName)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, ParseLogLevel("silent"))
	assert.Equal(t, logger.Info, ParseLogLevel(" INFO "))
	assert.Equal(t, logger.Error, ParseLogLevel("error"))
	assert.Equal(t, logger.Warn, ParseLogLevel(""))
}
