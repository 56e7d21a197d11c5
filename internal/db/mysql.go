package db

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	errs "clientdesk/internal/errors"
)

// mysqlAccessDenied is the server error number for rejected credentials.
const mysqlAccessDenied = 1045

// mysqlDuplicateEntry is the server error number for unique-key violations.
const mysqlDuplicateEntry = 1062

type openFunc func(dsn string) (*gorm.DB, error)
type pingFunc func(ctx context.Context, db *gorm.DB) error

// Manager owns the shared database handle. It opens with the primary DSN,
// falls back to the secondary DSN only on an access-denied error, and hands
// out the handle through Session, which probes liveness first and reopens
// exactly once when the probe fails.
type Manager struct {
	mu          sync.Mutex
	primaryDSN  string
	fallbackDSN string
	open        openFunc
	ping        pingFunc
	db          *gorm.DB
	log         zerolog.Logger
}

// New connects to MySQL and returns a Manager holding the live handle.
func New(primaryDSN, fallbackDSN string, log zerolog.Logger) (*Manager, error) {
	return newManager(primaryDSN, fallbackDSN, gormOpen, gormPing, log)
}

func newManager(primaryDSN, fallbackDSN string, open openFunc, ping pingFunc, log zerolog.Logger) (*Manager, error) {
	m := &Manager{
		primaryDSN:  primaryDSN,
		fallbackDSN: fallbackDSN,
		open:        open,
		ping:        ping,
		log:         log,
	}
	db, err := m.connect()
	if err != nil {
		return nil, err
	}
	m.db = db
	return m, nil
}

// connect tries the primary credentials and, only on access denied, the
// fallback credentials. Any other failure propagates as-is.
func (m *Manager) connect() (*gorm.DB, error) {
	db, err := m.open(m.primaryDSN)
	if err == nil {
		return db, nil
	}
	if !IsAccessDenied(err) || m.fallbackDSN == "" {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	m.log.Warn().Err(err).Msg("primary database credentials rejected, trying fallback")
	db, err = m.open(m.fallbackDSN)
	if err != nil {
		return nil, fmt.Errorf("connect mysql with fallback credentials: %w", err)
	}
	return db, nil
}

// Session returns a live handle scoped to ctx. The handle is probed before
// being handed out; if the probe fails the connection is reopened once and
// probed again. When that also fails the request gets ErrConnection.
func (m *Manager) Session(ctx context.Context) (*gorm.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ping(ctx, m.db); err != nil {
		m.log.Warn().Err(err).Msg("database connection lost, attempting to reconnect")
		fresh, cerr := m.connect()
		if cerr != nil {
			m.log.Error().Err(cerr).Msg("failed to reconnect to database")
			return nil, fmt.Errorf("%w: %v", errs.ErrConnection, cerr)
		}
		if perr := m.ping(ctx, fresh); perr != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrConnection, perr)
		}
		m.db = fresh
	}
	return m.db.WithContext(ctx), nil
}

func gormOpen(dsn string) (*gorm.DB, error) {
	return gorm.Open(gormmysql.Open(dsn), &gorm.Config{})
}

func gormPing(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// IsAccessDenied reports whether err is a MySQL access-denied failure.
func IsAccessDenied(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlAccessDenied
}

// IsDuplicateEntry reports whether err is a MySQL unique-key violation.
func IsDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
