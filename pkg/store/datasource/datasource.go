// Package datasource opens the read-only relational handle the report
// resolver queries. Backends register themselves from their own packages;
// import pkg/store/datasource/all to link every supported driver.
package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

type Settings struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	// BootQueries run on every new connection (backends that support it).
	BootQueries []string
}

// Opener opens a driver-specific *sql.DB.
type Opener func(ctx context.Context, settings Settings) (*sql.DB, error)

type Backend struct {
	Dialect Dialect
	Open    Opener
}

// DB is the injected data-source handle: a pool plus the SQL dialect used to
// bind parameters and limit rows.
type DB struct {
	*sql.DB
	Dialect Dialect
}

var (
	mu       sync.RWMutex
	backends = map[string]Backend{}
)

// Register adds a backend under name. It panics on duplicates since it only
// runs from package init.
func Register(name string, backend Backend) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := backends[name]; exists {
		panic(fmt.Sprintf("datasource: backend %q already registered", name))
	}
	if backend.Dialect.Name == "" {
		backend.Dialect.Name = name
	}
	backends[name] = backend
}

func Backends() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Lookup(name string) (Backend, error) {
	mu.RLock()
	backend, ok := backends[name]
	mu.RUnlock()
	if !ok {
		return Backend{}, fmt.Errorf("datasource: unknown driver %q (registered: %s)",
			name, strings.Join(Backends(), ", "))
	}
	return backend, nil
}

// Open opens and pings the configured backend.
func Open(ctx context.Context, settings Settings) (*DB, error) {
	if strings.TrimSpace(settings.DSN) == "" {
		return nil, fmt.Errorf("datasource: DSN must not be empty")
	}

	backend, err := Lookup(settings.Driver)
	if err != nil {
		return nil, err
	}

	db, err := backend.Open(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("datasource: open %s: %w", settings.Driver, err)
	}
	if settings.MaxOpenConns > 0 {
		db.SetMaxOpenConns(settings.MaxOpenConns)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("datasource: ping %s: %w", settings.Driver, err)
	}

	return &DB{DB: db, Dialect: backend.Dialect}, nil
}

// Wrap pairs an already opened pool with a dialect. Tests use it with sqlmock.
func Wrap(db *sql.DB, dialect Dialect) *DB {
	return &DB{DB: db, Dialect: dialect}
}
