package store

import (
	"context"
)

//go:generate mockgen -destination=mock/store.go -package=mock bitbucket.org/sotavant/cafe-backend/internal/store Store

// Store is the persistence contract of the café: the menu table and the
// messages table. Affected-row counts are informational.
type Store interface {
	ListMenu(ctx context.Context) ([]MenuItem, error)
	// FindMenuItemByName returns nil without error when nothing matches.
	FindMenuItemByName(ctx context.Context, name string) (*MenuItem, error)
	CreateMenuItem(ctx context.Context, item MenuItem) (id int64, err error)
	UpdateMenuItem(ctx context.Context, item MenuItem) (affected int64, err error)
	DeleteMenuItem(ctx context.Context, id int64) (affected int64, err error)

	ListMessages(ctx context.Context) ([]Message, error)
	SaveMessage(ctx context.Context, msg Message) (id int64, err error)
	DeleteMessage(ctx context.Context, id int64) (affected int64, err error)
}

type MenuItem struct {
	ID       int64   `db:"id"`
	Name     string  `db:"name"`
	Price    float64 `db:"price"`
	Category string  `db:"category"`
}

type Message struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	Payload string `db:"message"`
	Date    string `db:"date"`
}
