package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the database connections
type DB struct {
	Gorm  *gorm.DB
	Mongo *mongo.Client // nil when MONGO_URI is not set
	log   *zap.Logger
}

// InitDB opens the relational database and, if configured, MongoDB
func InitDB(ctx context.Context, cfg *Config, log *zap.Logger) (*DB, error) {
	gdb, err := OpenGorm(cfg.Database.Driver, cfg.Database.URL, !cfg.Production())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Database.Driver, err)
	}
	log.Info("connected to database", zap.String("driver", cfg.Database.Driver))

	db := &DB{Gorm: gdb, log: log}
	if cfg.Mongo.URI == "" {
		log.Info("MONGO_URI not set, link events will not be recorded")
		return db, nil
	}

	db.Mongo, err = ConnectMongo(ctx, cfg.Mongo.URI)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	log.Info("connected to MongoDB", zap.String("database", cfg.Mongo.Database))
	return db, nil
}

// OpenGorm opens a gorm connection with the named driver and checks it with a ping
func OpenGorm(driver, dsn string, verbose bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}

	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.Default.LogMode(level),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = pingOrClose(sqlDB); err != nil {
		return nil, err
	}
	return db, nil
}

// pingOrClose checks the pool and closes it if the database is unreachable
func pingOrClose(sqlDB *sql.DB) error {
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return err
	}
	return nil
}

// ConnectMongo connects to MongoDB and pings it
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.Gorm != nil {
		sqlDB, err := db.Gorm.DB()
		if err != nil {
			db.log.Error("error getting SQL DB from gorm", zap.Error(err))
		} else if err := sqlDB.Close(); err != nil {
			db.log.Error("error closing database connection", zap.Error(err))
		} else {
			db.log.Info("database connection closed")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			db.log.Error("error closing MongoDB connection", zap.Error(err))
		} else {
			db.log.Info("MongoDB connection closed")
		}
	}
}
