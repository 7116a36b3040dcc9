//go:build !no_sqlite && cgo

package db

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeisme/torrentvault/pkg/configs"
)

// createSQLiteDialector CGo 版本（mattn/go-sqlite3）.
func createSQLiteDialector(dsn string) gorm.Dialector {
	return sqlite.Open(dsn)
}

func init() {
	RegisterDialectorFactory(createSQLiteDialector, configs.SQLite)
}
