// Package menu guards every write to the menu catalog: input trimming,
// required fields, non-negative prices and case-insensitive name uniqueness.
package menu

import (
	"bitbucket.org/sotavant/cafe-backend/internal/logger"
	"bitbucket.org/sotavant/cafe-backend/internal/store"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"strings"
	"sync"
)

var (
	ErrMissingFields = errors.New("Lütfen tüm alanları doldurun")
	ErrNegativePrice = errors.New("Fiyat negatif olamaz")
)

// DuplicateError is returned by Create when an item with the same name
// (ignoring case and surrounding space) is already on the menu.
type DuplicateError struct {
	Existing store.MenuItem
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%q zaten menüde mevcut", e.Existing.Name)
}

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	var dup *DuplicateError
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrNegativePrice) ||
		errors.As(err, &dup)
}

// Input carries the client supplied fields. A nil Price means the field
// was absent.
type Input struct {
	Name     string
	Price    *float64
	Category string
}

type Service struct {
	store store.Store

	// held across the lookup and the insert of Create
	createMu sync.Mutex
}

func New(s store.Store) *Service {
	return &Service{store: s}
}

func (s *Service) List(ctx context.Context) ([]store.MenuItem, error) {
	return s.store.ListMenu(ctx)
}

func (s *Service) Create(ctx context.Context, in Input) (store.MenuItem, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)

	switch {
	case name == "", in.Price == nil, category == "":
		return store.MenuItem{}, ErrMissingFields
	case *in.Price < 0:
		return store.MenuItem{}, ErrNegativePrice
	}

	item := store.MenuItem{Name: name, Price: *in.Price, Category: category}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	existing, err := s.store.FindMenuItemByName(ctx, name)
	if err != nil {
		return store.MenuItem{}, err
	}
	if existing != nil {
		return store.MenuItem{}, &DuplicateError{Existing: *existing}
	}

	id, err := s.store.CreateMenuItem(ctx, item)
	if err != nil {
		return store.MenuItem{}, err
	}
	item.ID = id

	logger.Log.Debug("menu item created", zap.Int64("id", id), zap.String("name", name))
	return item, nil
}

// Update overwrites name, price and category of the item with the given id.
// Only the price is validated. A missing id is not an error.
func (s *Service) Update(ctx context.Context, id int64, in Input) (store.MenuItem, error) {
	if in.Price == nil {
		return store.MenuItem{}, ErrMissingFields
	}
	if *in.Price < 0 {
		return store.MenuItem{}, ErrNegativePrice
	}

	item := store.MenuItem{ID: id, Name: in.Name, Price: *in.Price, Category: in.Category}

	affected, err := s.store.UpdateMenuItem(ctx, item)
	if err != nil {
		return store.MenuItem{}, err
	}

	logger.Log.Debug("menu item updated", zap.Int64("id", id), zap.Int64("affected", affected))
	return item, nil
}

// Delete removes the item if present. Deleting a missing id succeeds.
func (s *Service) Delete(ctx context.Context, id int64) error {
	affected, err := s.store.DeleteMenuItem(ctx, id)
	if err != nil {
		return err
	}

	logger.Log.Debug("menu item deleted", zap.Int64("id", id), zap.Int64("affected", affected))
	return nil
}
