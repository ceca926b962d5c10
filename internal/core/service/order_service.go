package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rl1809/bakery-ledger/internal/core/domain"
	"github.com/rl1809/bakery-ledger/internal/port"
)

var ErrOrderNotFound = errors.New("order not found")

// UpdateParams carries the optional fields of an update. A nil pointer means
// "leave unchanged"; a pointer to an empty string means "set to empty".
// Quantity and Date arrive as raw text and are validated before any field is
// applied.
type UpdateParams struct {
	CustomerName *string
	Description  *string
	Quantity     *string
	Date         *string
}

// Query selects orders for Filter. Zero values mean "no constraint";
// constraints compose with AND.
type Query struct {
	Customer  string // case-insensitive substring of CustomerName
	StartDate string // inclusive lower bound, YYYY-MM-DD
	EndDate   string // inclusive upper bound, YYYY-MM-DD
}

// OrderStore owns the in-memory order table, the next-ID counter, and all
// use cases over them. Every successful mutation rewrites the primary file
// through the repository before returning.
type OrderStore struct {
	mu     sync.Mutex
	repo   port.OrderRepository
	audit  port.ActionLog
	notify port.Notifier

	orders []domain.Order
	nextID int64
}

// NewOrderStore loads the persisted table and derives the next-ID counter
// from it: max(existing IDs)+1, or 1 for an empty table.
func NewOrderStore(ctx context.Context, repo port.OrderRepository, audit port.ActionLog, notify port.Notifier) (*OrderStore, error) {
	orders, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return &OrderStore{
		repo:   repo,
		audit:  audit,
		notify: notify,
		orders: orders,
		nextID: nextIDAfter(orders),
	}, nil
}

func nextIDAfter(orders []domain.Order) int64 {
	var max int64
	for _, o := range orders {
		if o.ID > max {
			max = o.ID
		}
	}
	return max + 1
}

// Add validates the raw quantity and date, then appends a new order under
// the next free ID and persists the table. Validation failures leave the
// table, the file, and the counter untouched.
func (s *OrderStore) Add(ctx context.Context, name, description, quantityText, dateText string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := domain.NewOrder(s.nextID, name, description, quantityText, dateText)
	if err != nil {
		return domain.Order{}, err
	}

	s.orders = append(s.orders, order)
	if err := s.repo.Save(ctx, s.orders); err != nil {
		s.orders = s.orders[:len(s.orders)-1]
		return domain.Order{}, fmt.Errorf("save orders: %w", err)
	}
	s.nextID++

	if err := s.audit.Record(fmt.Sprintf("Added order ID: %d", order.ID)); err != nil {
		return domain.Order{}, fmt.Errorf("record action: %w", err)
	}
	s.notify.Notify(fmt.Sprintf("New order added: %s, %s, %d, %s", order.CustomerName, order.Description, order.Quantity, order.Date))
	return order, nil
}

// Update applies the provided fields to an existing order. All provided
// fields are validated before any of them is applied, so a failed quantity
// or date check leaves the record entirely unchanged.
func (s *OrderStore) Update(ctx context.Context, id int64, params UpdateParams) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Order{}, ErrOrderNotFound
	}

	var quantity int
	if params.Quantity != nil {
		q, err := domain.ParseQuantity(*params.Quantity)
		if err != nil {
			return domain.Order{}, err
		}
		quantity = q
	}
	if params.Date != nil {
		if err := domain.ValidateDate(*params.Date); err != nil {
			return domain.Order{}, err
		}
	}

	updated := s.orders[idx]
	if params.CustomerName != nil {
		updated.CustomerName = *params.CustomerName
	}
	if params.Description != nil {
		updated.Description = *params.Description
	}
	if params.Quantity != nil {
		updated.Quantity = quantity
	}
	if params.Date != nil {
		updated.Date = *params.Date
	}

	previous := s.orders[idx]
	s.orders[idx] = updated
	if err := s.repo.Save(ctx, s.orders); err != nil {
		s.orders[idx] = previous
		return domain.Order{}, fmt.Errorf("save orders: %w", err)
	}

	if err := s.audit.Record(fmt.Sprintf("Updated order ID: %d", id)); err != nil {
		return domain.Order{}, fmt.Errorf("record action: %w", err)
	}
	s.notify.Notify(fmt.Sprintf("Order updated: %d, %s, %s, %d, %s", updated.ID, updated.CustomerName, updated.Description, updated.Quantity, updated.Date))
	return updated, nil
}

// Delete removes the order with the given ID. The ID is never reused.
func (s *OrderStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrOrderNotFound
	}

	removed := s.orders[idx]
	s.orders = append(s.orders[:idx], s.orders[idx+1:]...)
	if err := s.repo.Save(ctx, s.orders); err != nil {
		s.orders = append(s.orders[:idx], append([]domain.Order{removed}, s.orders[idx:]...)...)
		return fmt.Errorf("save orders: %w", err)
	}

	if err := s.audit.Record(fmt.Sprintf("Deleted order ID: %d", id)); err != nil {
		return fmt.Errorf("record action: %w", err)
	}
	s.notify.Notify(fmt.Sprintf("Order deleted: %d", id))
	return nil
}

// Lookup returns the order with the given ID. Pure read.
func (s *OrderStore) Lookup(ctx context.Context, id int64) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Order{}, ErrOrderNotFound
	}
	return s.orders[idx], nil
}

// Filter returns the orders matching every constraint of the query, in
// table order. No match yields an empty slice, not an error.
func (s *OrderStore) Filter(ctx context.Context, q Query) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]domain.Order, 0, len(s.orders))
	needle := strings.ToLower(q.Customer)
	for _, o := range s.orders {
		if needle != "" && !strings.Contains(strings.ToLower(o.CustomerName), needle) {
			continue
		}
		if q.StartDate != "" && o.Date < q.StartDate {
			continue
		}
		if q.EndDate != "" && o.Date > q.EndDate {
			continue
		}
		matched = append(matched, o)
	}
	return matched
}

// List returns the whole table in insertion order.
func (s *OrderStore) List(ctx context.Context) []domain.Order {
	return s.Filter(ctx, Query{})
}

// Export writes the current table to an arbitrary path without touching the
// primary file or the in-memory state.
func (s *OrderStore) Export(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Export(ctx, path, s.orders); err != nil {
		return fmt.Errorf("export orders: %w", err)
	}
	if err := s.audit.Record(fmt.Sprintf("Exported orders to %s", path)); err != nil {
		return fmt.Errorf("record action: %w", err)
	}
	return nil
}

// Backup snapshots the current table to the repository's backup path.
func (s *OrderStore) Backup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Backup(ctx, s.orders); err != nil {
		return fmt.Errorf("backup orders: %w", err)
	}
	if err := s.audit.Record("Backup orders"); err != nil {
		return fmt.Errorf("record action: %w", err)
	}
	return nil
}

// Restore replaces the table with the backup snapshot, rewrites the primary
// file, and recomputes the next-ID counter. port.ErrNoBackup is returned
// untouched when no snapshot exists; the table is left as it was.
func (s *OrderStore) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	restored, err := s.repo.Restore(ctx)
	if err != nil {
		if errors.Is(err, port.ErrNoBackup) {
			return err
		}
		return fmt.Errorf("restore orders: %w", err)
	}
	if err := s.repo.Save(ctx, restored); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}

	s.orders = restored
	s.nextID = nextIDAfter(restored)

	if err := s.audit.Record("Restored orders from backup"); err != nil {
		return fmt.Errorf("record action: %w", err)
	}
	s.notify.Notify("Orders restored from backup")
	return nil
}

// Summarize aggregates the current table.
func (s *OrderStore) Summarize(ctx context.Context) domain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Summarize(s.orders)
}

func (s *OrderStore) indexOf(id int64) int {
	for i, o := range s.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}
