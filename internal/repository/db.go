package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/taperedworks/enquiry-tracker/internal/common"
)

// Dialect selects the SQL flavor of the history store.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Store owns the history database handle. A postgres:// DSN opens a pgx pool;
// anything else is treated as a sqlite file path.
type Store struct {
	DB      *sql.DB
	Dialect Dialect

	pool *pgxpool.Pool
	log  *slog.Logger
}

// Open connects to the history database and bootstraps the schema.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{log: logger}
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		pc, err := pgxpool.ParseConfig(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("%w: parse DSN: %v", common.ErrDatabase, err)
		}
		pc.MaxConns = cfg.MaxConns
		pc.MinConns = cfg.MinConns
		pc.MaxConnLifetime = cfg.MaxConnLifetime
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
		pc.ConnConfig.RuntimeParams["application_name"] = "enquiry-tracker"

		dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
		pool, err := pgxpool.NewWithConfig(dialCtx, pc)
		if err != nil {
			return nil, fmt.Errorf("%w: connect: %v", common.ErrDatabase, err)
		}
		s.pool = pool
		s.DB = stdlib.OpenDBFromPool(pool)
		s.Dialect = DialectPostgres
	} else {
		db, err := sql.Open("sqlite", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("%w: open sqlite: %v", common.ErrDatabase, err)
		}
		// modernc sqlite is file-based; a single writer avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
		s.DB = db
		s.Dialect = DialectSQLite
	}

	if err := s.ensureSchema(ctx); err != nil {
		s.Close()
		return nil, err
	}

	logger.Info("repository.open", "dialect", s.Dialect)
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS enquiry_history (
		id              TEXT PRIMARY KEY,
		project_name    TEXT NOT NULL,
		enquiry_type    TEXT NOT NULL,
		matched_item_id TEXT NOT NULL DEFAULT '',
		similarity      DOUBLE PRECISION NOT NULL DEFAULT 0,
		params_json     TEXT NOT NULL,
		created_at      TEXT NOT NULL
	)`
	if _, err := s.DB.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("%w: ensure schema: %v", common.ErrDatabase, err)
	}
	return nil
}

// HealthCheck pings the database with a timeout.
func (s *Store) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping: %v", common.ErrDatabase, err)
	}
	return nil
}

// Close closes the database connections gracefully.
func (s *Store) Close() {
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			s.log.Error("repository.close_error", "error", err)
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

// placeholder renders the n-th (1-based) bind parameter for the store's dialect.
func (s *Store) placeholder(n int) string {
	if s.Dialect == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
