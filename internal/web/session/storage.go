package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	"github.com/gofiber/storage/mysql/v2"
	"github.com/gofiber/storage/postgres/v3"
	"github.com/gofiber/storage/redis/v3"

	"github.com/navportal/navportal/internal/config"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

const gcInterval = 10 * time.Second

// ErrUnknownDriver is returned for a storage driver that is not supported.
var ErrUnknownDriver = errors.New("unknown session storage driver")

// NewStorage opens the session storage backend selected by cfg.Driver.
func NewStorage(cfg *config.Session) (fiber.Storage, error) {
	switch cfg.Driver {
	case DriverMemory, "":
		return memory.New(memory.Config{
			GCInterval: gcInterval,
		}), nil

	case DriverRedis:
		return redis.New(redis.Config{
			URL: cfg.ConnectionURI,
		}), nil

	case DriverMySQL:
		return mysql.New(mysql.Config{
			ConnectionURI: cfg.ConnectionURI,
			Table:         cfg.Table,
			GCInterval:    gcInterval,
		}), nil

	case DriverPostgres:
		return postgres.New(postgres.Config{
			ConnectionURI: cfg.ConnectionURI,
			Table:         cfg.Table,
			GCInterval:    gcInterval,
		}), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}
