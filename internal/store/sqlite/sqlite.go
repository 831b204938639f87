// Package sqlite implements store.Store on top of a single SQLite file.
package sqlite

import (
	"bitbucket.org/sotavant/cafe-backend/internal/store"
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	"golang.org/x/text/cases"
	msqlite "modernc.org/sqlite"
	"strings"
)

const driverName = "sqlite"

// nameKeyFunc is the SQL name of nameKey, registered with the driver.
const nameKeyFunc = "menu_name_key"

func init() {
	if err := msqlite.RegisterDeterministicScalarFunction(nameKeyFunc, 1, sqlNameKey); err != nil {
		panic(err)
	}
}

// nameKey is the form in which two menu names are compared: surrounding
// whitespace removed and Unicode case folded, so "Çay" and " çay" collide.
func nameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

func sqlNameKey(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return nameKey(v), nil
	case []byte:
		return nameKey(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument type %T", nameKeyFunc, v)
	}
}

const schemaMenu = `CREATE TABLE IF NOT EXISTS menu (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT,
	price REAL,
	category TEXT
)`

const schemaMessages = `CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT,
	email TEXT,
	message TEXT,
	date TEXT
)`

// starter menu written when the menu table is empty
var seedMenu = []store.MenuItem{
	{Name: "Latte", Price: 65, Category: "Kahve"},
	{Name: "Cheesecake", Price: 85, Category: "Tatlı"},
}

var _ store.Store = (*Store)(nil)

type Store struct {
	db *sqlx.DB
}

// New opens the database file at path. The handle is limited to one open
// connection so every write goes through a single SQLite writer.
func New(ctx context.Context, path string) (*Store, error) {
	db, err := sqlx.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// NewFromDB wraps an already opened handle.
func NewFromDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Bootstrap creates the tables if absent and seeds an empty menu.
// Running it again is a no-op.
func (s *Store) Bootstrap(ctx context.Context) error {
	for _, q := range []string{schemaMenu, schemaMessages} {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT count(*) FROM menu`); err != nil {
		return fmt.Errorf("count menu: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range seedMenu {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO menu (name, price, category) VALUES (?, ?, ?)`,
			item.Name, item.Price, item.Category,
		); err != nil {
			return fmt.Errorf("seed menu: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) ListMenu(ctx context.Context) ([]store.MenuItem, error) {
	items := make([]store.MenuItem, 0)
	if err := s.db.SelectContext(ctx, &items,
		`SELECT id, name, price, category FROM menu ORDER BY id`,
	); err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	return items, nil
}

func (s *Store) FindMenuItemByName(ctx context.Context, name string) (*store.MenuItem, error) {
	var item store.MenuItem
	err := s.db.GetContext(ctx, &item,
		`SELECT id, name, price, category FROM menu
		WHERE `+nameKeyFunc+`(name) = `+nameKeyFunc+`(?)
		ORDER BY id LIMIT 1`,
		name,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find menu item %q: %w", name, err)
	}
	return &item, nil
}

func (s *Store) CreateMenuItem(ctx context.Context, item store.MenuItem) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO menu (name, price, category) VALUES (?, ?, ?)`,
		item.Name, item.Price, item.Category,
	)
	if err != nil {
		return 0, fmt.Errorf("insert menu item: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) UpdateMenuItem(ctx context.Context, item store.MenuItem) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE menu SET name = ?, price = ?, category = ? WHERE id = ?`,
		item.Name, item.Price, item.Category, item.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("update menu item %d: %w", item.ID, err)
	}
	return res.RowsAffected()
}

func (s *Store) DeleteMenuItem(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM menu WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete menu item %d: %w", id, err)
	}
	return res.RowsAffected()
}

// ListMessages returns messages newest first.
func (s *Store) ListMessages(ctx context.Context) ([]store.Message, error) {
	messages := make([]store.Message, 0)
	if err := s.db.SelectContext(ctx, &messages,
		`SELECT id, name, email, message, date FROM messages ORDER BY id DESC`,
	); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (s *Store) SaveMessage(ctx context.Context, msg store.Message) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (name, email, message, date) VALUES (?, ?, ?, ?)`,
		msg.Name, msg.Email, msg.Payload, msg.Date,
	)
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) DeleteMessage(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete message %d: %w", id, err)
	}
	return res.RowsAffected()
}
