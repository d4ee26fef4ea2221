package aedb

import (
	"fmt"
	"strings"
	"time"

	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/config"
	"github.com/apex/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const maxDBRetries = 5

var retryDelay = 3 * time.Second

// Open opens a gorm connection for the named driver. Supported drivers are
// mysql, postgres and sqlite.
func Open(driver, dsn string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	switch strings.ToLower(driver) {
	case "mysql":
		return gorm.Open(mysql.Open(dsn), gormConfig)
	case "postgres", "postgresql", "pg":
		return gorm.Open(postgres.Open(dsn), gormConfig)
	case "sqlite", "sqlite3":
		return gorm.Open(sqlite.Open(dsn), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// InferDriver guesses the driver from the shape of a DSN. It returns "" when
// nothing matches.
func InferDriver(dsn string) string {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return "postgres"
	case strings.Contains(lower, "@tcp("), strings.HasPrefix(lower, "mysql://"):
		return "mysql"
	case strings.HasPrefix(lower, "file:"), strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"):
		return "sqlite"
	default:
		return ""
	}
}

// MustConnectToDB will attempt to connect to the database maxDBRetries times. If it isn't successful
// after that number of retries then it will call log.Fatalf(), which will cause the server to exit.
// Between retry attempts it will sleep for 3 seconds.
func MustConnectToDB(c config.Configer) *gorm.DB {
	dsn := c.MustGetKey(config.KeyDBDSN)
	driver := c.GetKeyWithDefault(config.KeyDBDriver, InferDriver(dsn))
	if driver == "" {
		log.Fatalf("%s not set and driver can't be inferred from the DSN", config.KeyDBDriver)
	}

	retryCount := 1
	for {
		db, err := Open(driver, dsn)
		switch {
		case err == nil:
			return db
		case retryCount >= maxDBRetries:
			log.Fatalf("Failed to open %s db: %s", driver, err)
		default:
			log.Warnf("Unable to open %s db (attempt %d of %d): %s", driver, retryCount, maxDBRetries, err)
			retryCount++
			time.Sleep(retryDelay)
		}
	}
}

// Migrate creates or updates the tables the service uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&aemodel.User{}, &aemodel.Actor{}, &aemodel.Token{})
}
