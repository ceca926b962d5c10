package port

import (
	"context"
	"errors"

	"github.com/rl1809/bakery-ledger/internal/core/domain"
)

// ErrNoBackup signals a restore attempt with no backup snapshot on disk.
var ErrNoBackup = errors.New("no backup found")

// OrderRepository persists the full order table. Every write replaces the
// target file wholesale; there are no incremental updates.
type OrderRepository interface {
	// Load reads the primary file. A missing file yields an empty table.
	Load(ctx context.Context) ([]domain.Order, error)

	// Save overwrites the primary file with the given table.
	Save(ctx context.Context, orders []domain.Order) error

	// Export writes the table to an arbitrary path, leaving the primary
	// file untouched.
	Export(ctx context.Context, path string, orders []domain.Order) error

	// Backup overwrites the backup snapshot with the given table.
	Backup(ctx context.Context, orders []domain.Order) error

	// Restore reads the backup snapshot, returning ErrNoBackup if absent.
	Restore(ctx context.Context) ([]domain.Order, error)
}
