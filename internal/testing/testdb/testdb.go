package testdb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/forgo/backoffice/internal/database"
)

// TestDB is one migrated namespace on a live SurrealDB server
type TestDB struct {
	DB        database.Database
	Namespace string
	Database  string
	t         *testing.T
	closeOnce sync.Once
}

// serverConfig is read from TEST_DB_* variables
type serverConfig struct {
	Scheme   string `env:"TEST_DB_SCHEME"`
	Host     string `env:"TEST_DB_HOST" envDefault:"localhost"`
	Port     string `env:"TEST_DB_PORT" envDefault:"8000"`
	User     string `env:"TEST_DB_USER" envDefault:"root"`
	Password string `env:"TEST_DB_PASSWORD" envDefault:"root"`
	Required bool   `env:"TEST_DB_REQUIRED"`
}

var (
	namespaces atomic.Int64

	loadSchema = sync.OnceValues(readMigrations)
)

func uniqueNamespace() string {
	return fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), namespaces.Add(1))
}

// migrationsDir walks up from the working directory to the module root.
// BACKOFFICE_ROOT overrides the search.
func migrationsDir() (string, error) {
	if root := os.Getenv("BACKOFFICE_ROOT"); root != "" {
		return filepath.Join(root, "migrations"), nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "migrations"), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("module root not found above working directory")
		}
		dir = parent
	}
}

// readMigrations returns the schema files in name order. seed.surql is dev
// data and never applied.
func readMigrations() ([]string, error) {
	dir, err := migrationsDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations: %w", err)
	}

	var names []string
	for _, e := range entries {
		if name := e.Name(); strings.HasSuffix(name, ".surql") && name != "seed.surql" {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	scripts := make([]string, 0, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		scripts = append(scripts, string(content))
	}
	return scripts, nil
}

// New connects to the test server, creates a fresh namespace and applies the
// schema. The namespace is removed when the test ends. The test is skipped
// in -short mode and when the server does not answer, unless
// TEST_DB_REQUIRED is set.
func New(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("testdb: database tests disabled in short mode")
	}

	var srv serverConfig
	if err := env.Parse(&srv); err != nil {
		t.Fatalf("testdb: reading TEST_DB_* variables: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := database.Config{
		Scheme:    srv.Scheme,
		Host:      srv.Host,
		Port:      srv.Port,
		User:      srv.User,
		Password:  srv.Password,
		Namespace: uniqueNamespace(),
		Database:  "test",
	}

	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		if srv.Required {
			t.Fatalf("testdb: connecting to %s: %v", cfg.Endpoint(), err)
		}
		t.Skipf("testdb: no SurrealDB at %s: %v", cfg.Endpoint(), err)
	}

	tdb := &TestDB{DB: db, Namespace: cfg.Namespace, Database: cfg.Database, t: t}
	t.Cleanup(tdb.Close)

	scripts, err := loadSchema()
	if err != nil {
		t.Fatalf("testdb: %v", err)
	}
	for i, script := range scripts {
		if err := db.Execute(ctx, script, nil); err != nil {
			t.Fatalf("testdb: migration %d: %v", i+1, err)
		}
	}

	return tdb
}

// Close removes the namespace and disconnects. Safe to call more than once.
func (tdb *TestDB) Close() {
	tdb.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_ = tdb.DB.Execute(ctx, "REMOVE NAMESPACE "+tdb.Namespace, nil)
		_ = tdb.DB.Close()
	})
}

// Reset deletes every row in every table and keeps the schema.
func (tdb *TestDB) Reset(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results, err := tdb.DB.Query(ctx, "INFO FOR DB", nil)
	if err != nil {
		t.Fatalf("testdb: INFO FOR DB: %v", err)
	}

	rows := database.StatementRecords(results, 0)
	if len(rows) == 0 {
		return
	}
	info, _ := rows[0].(map[string]interface{})
	tables, _ := info["tables"].(map[string]interface{})
	for table := range tables {
		if err := tdb.DB.Execute(ctx, "DELETE FROM "+table, nil); err != nil {
			t.Logf("testdb: clearing %s: %v", table, err)
		}
	}
}

// Ctx returns a ten second context cancelled when the test ends.
func (tdb *TestDB) Ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	tdb.t.Cleanup(cancel)
	return ctx
}

// MustExec runs a statement and fails the test on error.
func (tdb *TestDB) MustExec(query string, vars map[string]interface{}) {
	tdb.t.Helper()
	if err := tdb.DB.Execute(tdb.Ctx(), query, vars); err != nil {
		tdb.t.Fatalf("testdb: exec: %v\n%s", err, query)
	}
}

// MustQuery runs a query and fails the test on error.
func (tdb *TestDB) MustQuery(query string, vars map[string]interface{}) []interface{} {
	tdb.t.Helper()
	results, err := tdb.DB.Query(tdb.Ctx(), query, vars)
	if err != nil {
		tdb.t.Fatalf("testdb: query: %v\n%s", err, query)
	}
	return results
}

// Shared is a TestDB reused by several subtests.
type Shared struct {
	*TestDB
}

// NewShared migrates once for a group of subtests.
func NewShared(t *testing.T) *Shared {
	return &Shared{TestDB: New(t)}
}

// SetupSubtest clears all rows and binds the database to the subtest.
func (s *Shared) SetupSubtest(t *testing.T) *TestDB {
	t.Helper()
	s.TestDB.t = t
	s.TestDB.Reset(t)
	return s.TestDB
}
