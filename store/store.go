// Package store persists per-guild disabled commands and categories.
//
// Postgres DSNs (postgres:// or postgresql://) use lib/pq. Anything prefixed
// with sqlite: or file:, or the literal :memory:, uses the pure Go SQLite driver.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Kind is what a disabled entry refers to
type Kind string

const (
	KindCommand  Kind = "command"
	KindCategory Kind = "category"
)

// ErrUnknownKind is returned for kinds other than command or category
var ErrUnknownKind = errors.New("unknown kind")

// ParseKind validates a user supplied kind
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindCommand:
		return KindCommand, nil
	case KindCategory:
		return KindCategory, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

const schema = `
CREATE TABLE IF NOT EXISTS disabled_commands (
    guild_id TEXT NOT NULL,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    PRIMARY KEY (guild_id, name)
);`

// Store is a database backed set of disabled commands
type Store struct {
	db       *sql.DB
	postgres bool
}

// Open connects to the database named by dsn
func Open(dsn string) (*Store, error) {
	driver, source, postgres := driverFor(dsn)

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if !postgres {
		// every new connection to :memory: is a fresh database
		db.SetMaxOpenConns(1)
	}
	return &Store{db: db, postgres: postgres}, nil
}

// New wraps an existing handle. postgres selects $n placeholders.
func New(db *sql.DB, postgres bool) *Store {
	return &Store{db: db, postgres: postgres}
}

func driverFor(dsn string) (driver, source string, postgres bool) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", dsn, true
	case strings.HasPrefix(dsn, "sqlite:"):
		return "sqlite", strings.TrimPrefix(dsn, "sqlite:"), false
	default:
		return "sqlite", dsn, false
	}
}

// DB exposes the underlying handle
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the schema if it does not exist
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Disable marks a command or category disabled in a guild
func (s *Store) Disable(ctx context.Context, guildID, name string, kind Kind) error {
	if kind != KindCommand && kind != KindCategory {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO disabled_commands (guild_id, name, type)
		VALUES (?, ?, ?)
		ON CONFLICT (guild_id, name)
		DO UPDATE SET type = excluded.type`),
		guildID, strings.ToLower(name), string(kind))
	if err != nil {
		return fmt.Errorf("disable %s %s: %w", kind, name, err)
	}
	return nil
}

// Enable removes a disabled entry. It reports whether anything was removed.
func (s *Store) Enable(ctx context.Context, guildID, name string, kind Kind) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(
		`DELETE FROM disabled_commands WHERE guild_id = ? AND name = ? AND type = ?`),
		guildID, strings.ToLower(name), string(kind))
	if err != nil {
		return false, fmt.Errorf("enable %s %s: %w", kind, name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("enable %s %s: %w", kind, name, err)
	}
	return n > 0, nil
}

// Disabled loads everything disabled in a guild
func (s *Store) Disabled(ctx context.Context, guildID string) (Disabled, error) {
	d := Disabled{
		Commands:   make(map[string]bool),
		Categories: make(map[string]bool),
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT name, type FROM disabled_commands WHERE guild_id = ?`), guildID)
	if err != nil {
		return d, fmt.Errorf("load disabled commands for guild %s: %w", guildID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, kind string
		if err := rows.Scan(&name, &kind); err != nil {
			return d, fmt.Errorf("scan disabled command: %w", err)
		}
		switch Kind(kind) {
		case KindCommand:
			d.Commands[name] = true
		case KindCategory:
			d.Categories[name] = true
		}
	}
	if err := rows.Err(); err != nil {
		return d, fmt.Errorf("load disabled commands for guild %s: %w", guildID, err)
	}
	return d, nil
}

// rebind turns ? placeholders into $n for postgres
func (s *Store) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Disabled is the set of disabled command and category names in one guild.
// Names are stored lower case.
type Disabled struct {
	Commands   map[string]bool
	Categories map[string]bool
}

// Command reports whether a command name is disabled
func (d Disabled) Command(name string) bool {
	return d.Commands[strings.ToLower(name)]
}

// Category reports whether a category is disabled
func (d Disabled) Category(name string) bool {
	return d.Categories[strings.ToLower(name)]
}

// Empty reports whether nothing is disabled
func (d Disabled) Empty() bool {
	return len(d.Commands) == 0 && len(d.Categories) == 0
}
