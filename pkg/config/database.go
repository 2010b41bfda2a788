package config

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/anonto42/heritage-feed/backend/pkg/logger"
)

// DB holds the store connections. Mongo and Redis are nil when not configured.
type DB struct {
	SQL   *gorm.DB
	Mongo *mongo.Client
	Redis *redis.Client
}

// InitDB opens every configured store.
func InitDB(ctx context.Context, cfg *Config) (*DB, error) {
	sqlDB, err := OpenSQL(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Database.Driver, err)
	}
	db := &DB{SQL: sqlDB}

	if cfg.Mongo.URI != "" {
		client, err := initMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			db.CloseDB()
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		db.Mongo = client
	} else {
		l := logger.L()
		l.Info().Msg("MONGO_URI not set, activity log disabled")
	}

	if cfg.Redis.Address != "" {
		client, err := initRedis(ctx, cfg.Redis)
		if err != nil {
			db.CloseDB()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		db.Redis = client
	} else {
		l := logger.L()
		l.Info().Msg("REDIS_ADDRESS not set, counter cache disabled")
	}

	return db, nil
}

// OpenSQL opens the relational store with duplicate-key and foreign-key
// errors translated to gorm sentinels.
func OpenSQL(cfg DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.PostgresURL,
			PreferSimpleProtocol: true,
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	l := logger.L()
	l.Info().Str("driver", cfg.Driver).Msg("connected to SQL database")
	return db, nil
}

func initMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	l := logger.L()
	l.Info().Msg("connected to MongoDB")
	return client, nil
}

func initRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	l := logger.L()
	l.Info().Str("address", cfg.Address).Msg("connected to Redis")
	return client, nil
}

// CloseDB closes every open connection.
func (db *DB) CloseDB() {
	log := logger.L()

	if db.SQL != nil {
		sqlDB, err := db.SQL.DB()
		if err != nil {
			log.Error().Err(err).Msg("error getting sql.DB from GORM")
		} else if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("error closing SQL connection")
		} else {
			log.Info().Msg("SQL connection closed")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("error closing MongoDB connection")
		} else {
			log.Info().Msg("MongoDB connection closed")
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("error closing Redis connection")
		} else {
			log.Info().Msg("Redis connection closed")
		}
	}
}
