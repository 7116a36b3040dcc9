package configs

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type (
	DBType string
)

const (
	// PostgreSQL 协议.
	PostgreSQL DBType = "postgresql"
	Postgres   DBType = "postgres"
	Pg         DBType = "pg"

	// MySQL 协议.
	MySQL   DBType = "mysql"
	MariaDB DBType = "mariadb"
	// SQLite 协议.
	SQLite DBType = "sqlite"
)

const (
	DefaultDatabaseType     = SQLite         // 默认数据库类型，单机部署开箱即用
	DefaultDatabaseHost     = "localhost"    // 默认数据库主机
	DefaultDatabasePort     = 5432           // 默认数据库端口
	DefaultDatabaseUser     = "postgres"     // 默认数据库用户
	DefaultDatabasePassword = ""             // 默认数据库密码
	DefaultDatabaseName     = "torrentvault" // 默认数据库名称
	DefaultDatabaseSSLMode  = "disable"      // 默认数据库SSL模式
	DefaultMaxOpenConns     = 0              // 默认不限制打开连接数
	DefaultMaxIdleConns     = 5              // 默认最大空闲连接数
	DefaultSQLiteBusyMS     = 5000           // SQLite busy_timeout（毫秒）
)

// DBConfig 数据库配置.
type DBConfig struct {
	Type         DBType `mapstructure:"type"           rule:"oneof=postgresql postgres pg mysql mariadb sqlite"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"           rule:"min=0,max=65535"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"       json:"-"`
	Database     string `mapstructure:"database"       rule:"required"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns" rule:"min=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" rule:"min=0"`
	// DSN 非空时直接使用，忽略上面的连接字段.
	DSN string `mapstructure:"dsn" json:"-"`
	// LogSQL 是否输出每条 SQL（gorm Info 级别）.
	LogSQL bool `mapstructure:"log_sql"`
	// AutoMigrate serve 启动时建表并写入参照数据.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// GetDBType 返回数据库类型的可读名称.
func (c *DBConfig) GetDBType() string {
	switch c.Type {
	case PostgreSQL, Postgres, Pg:
		return "PostgreSQL"
	case MySQL, MariaDB:
		return "MySQL"
	case SQLite:
		return "SQLite"
	default:
		return "Unknown"
	}
}

// GetDSN 获取数据库的连接字符串，根据不同的数据库类型返回不同格式的DSN.
func (c *DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}

	dsnMap := map[DBType]func() string{
		PostgreSQL: c.getPgSQLDSN,
		Postgres:   c.getPgSQLDSN,
		Pg:         c.getPgSQLDSN,
		MySQL:      c.getMySQLDSN,
		MariaDB:    c.getMySQLDSN,
		SQLite:     c.getSQLiteDSN,
	}

	if fn, ok := dsnMap[c.Type]; ok {
		return fn()
	}

	return ""
}

func (c *DBConfig) getPgSQLDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

func (c *DBConfig) getMySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// getSQLiteDSN 获取SQLite的DSN，始终开启外键约束，release 外键依赖它.
func (c *DBConfig) getSQLiteDSN() string {
	name := c.Database
	if !strings.HasSuffix(name, ".db") {
		name += ".db"
	}

	return SQLiteFileDSN(name)
}

// SQLiteFileDSN 构造开启外键与 busy_timeout 的 SQLite 文件 DSN.
// 同时带上 modernc（_pragma=）与 mattn（_foreign_keys=）两种写法，各驱动忽略不认识的参数.
func SQLiteFileDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_foreign_keys=1&_busy_timeout=%d",
		path, DefaultSQLiteBusyMS, DefaultSQLiteBusyMS)
}

// setDefaults 设置数据库配置的默认值.
func (c *DBConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("db.type", DefaultDatabaseType)
	v.SetDefault("db.host", DefaultDatabaseHost)
	v.SetDefault("db.port", DefaultDatabasePort)
	v.SetDefault("db.user", DefaultDatabaseUser)
	v.SetDefault("db.password", DefaultDatabasePassword)
	v.SetDefault("db.database", DefaultDatabaseName)
	v.SetDefault("db.sslmode", DefaultDatabaseSSLMode)
	v.SetDefault("db.max_open_conns", DefaultMaxOpenConns)
	v.SetDefault("db.max_idle_conns", DefaultMaxIdleConns)
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.log_sql", false)
	v.SetDefault("db.auto_migrate", true)
}
