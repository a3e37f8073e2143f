package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vietanh2810/isk-lottery/internal/config"
	"github.com/vietanh2810/isk-lottery/internal/logger"
	"github.com/vietanh2810/isk-lottery/internal/repository/dao"
)

const slowQueryThreshold = 500 * time.Millisecond

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		conf.Host, conf.Port, conf.User, conf.Password, conf.DB, conf.SSLMode,
	)

	return open(dsn)
}

// OpenPostgresWithURL accepts a postgres:// connection URL, as handed out by
// hosting platforms through DATABASE_URL.
func OpenPostgresWithURL(url string) (*gorm.DB, error) {
	return open(url)
}

func open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.NewGorm(gormlogger.Warn, slowQueryThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	if err = dao.InitTables(db); err != nil {
		return nil, fmt.Errorf("dao.InitTables -> %w", err)
	}

	return db, nil
}
