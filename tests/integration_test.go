package tests

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rl1809/bakery-ledger/internal/adapter/audit"
	"github.com/rl1809/bakery-ledger/internal/adapter/notify"
	"github.com/rl1809/bakery-ledger/internal/adapter/storage"
	"github.com/rl1809/bakery-ledger/internal/core/domain"
	"github.com/rl1809/bakery-ledger/internal/core/service"
)

type testEnv struct {
	dir     string
	logPath string
	repo    *storage.CSVAdapter
	store   *service.OrderStore
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "bakery_log.txt")

	repo := storage.NewCSVAdapter(
		filepath.Join(dir, "bakery_orders.csv"),
		filepath.Join(dir, "bakery_orders_backup.csv"),
	)
	store, err := service.NewOrderStore(context.Background(), repo, audit.NewFileLog(logPath), notify.NewConsoleNotifier(io.Discard))
	require.NoError(t, err)

	return &testEnv{dir: dir, logPath: logPath, repo: repo, store: store}
}

// reopen builds a fresh store over the same files, as a process restart would.
func (e *testEnv) reopen(t *testing.T) *service.OrderStore {
	t.Helper()
	store, err := service.NewOrderStore(context.Background(), e.repo, audit.NewFileLog(e.logPath), notify.NewConsoleNotifier(io.Discard))
	require.NoError(t, err)
	return store
}

func TestPersistenceSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	first, err := env.store.Add(ctx, "Alice", "Croissant", "3", "2024-05-01")
	require.NoError(t, err)
	second, err := env.store.Add(ctx, "Bob", "Baguette", "1", "2024-05-02")
	require.NoError(t, err)

	reopened := env.reopen(t)
	require.Equal(t, []domain.Order{first, second}, reopened.List(ctx))

	// The counter continues where the previous session stopped.
	third, err := reopened.Add(ctx, "Cara", "Brioche", "2", "2024-05-03")
	require.NoError(t, err)
	require.Equal(t, second.ID+1, third.ID)
}

func TestCounterRecomputedFromDiskOnRestart(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	_, err := env.store.Add(ctx, "Alice", "Croissant", "3", "2024-05-01")
	require.NoError(t, err)
	second, err := env.store.Add(ctx, "Bob", "Baguette", "1", "2024-05-02")
	require.NoError(t, err)
	require.NoError(t, env.store.Delete(ctx, second.ID))

	reopened := env.reopen(t)
	// The counter is derived from max(IDs on disk)+1, so after deleting the
	// highest ID a restart hands it out again. Within a session IDs are
	// never reclaimed; across restarts only the on-disk maximum matters.
	next, err := reopened.Add(ctx, "Cara", "Brioche", "2", "2024-05-03")
	require.NoError(t, err)
	require.Equal(t, int64(2), next.ID)
}

func TestBackupDeleteRestoreEndToEnd(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	first, err := env.store.Add(ctx, "Alice", "Croissant", "3", "2024-05-01")
	require.NoError(t, err)
	second, err := env.store.Add(ctx, "Bob", "Baguette", "1", "2024-05-02")
	require.NoError(t, err)

	require.NoError(t, env.store.Backup(ctx))
	require.NoError(t, env.store.Delete(ctx, first.ID))
	require.NoError(t, env.store.Delete(ctx, second.ID))
	require.Empty(t, env.store.List(ctx))

	require.NoError(t, env.store.Restore(ctx))
	require.Equal(t, []domain.Order{first, second}, env.store.List(ctx))

	// Restore rewrote the primary file too.
	reopened := env.reopen(t)
	require.Equal(t, []domain.Order{first, second}, reopened.List(ctx))
}

func TestExportedFileRoundTrips(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	want, err := env.store.Add(ctx, "Alice, Jr.", "Croissant \"plain\"", "3", "2024-05-01")
	require.NoError(t, err)

	exportPath := filepath.Join(env.dir, "export.csv")
	require.NoError(t, env.store.Export(ctx, exportPath))

	exported := storage.NewCSVAdapter(exportPath, filepath.Join(env.dir, "unused.csv"))
	got, err := exported.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Order{want}, got)
}

func TestActionLogAccumulates(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	order, err := env.store.Add(ctx, "Alice", "Croissant", "3", "2024-05-01")
	require.NoError(t, err)
	require.NoError(t, env.store.Backup(ctx))
	require.NoError(t, env.store.Delete(ctx, order.ID))

	raw, err := os.ReadFile(env.logPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "Added order ID: 1")
	require.Contains(t, lines[1], "Backup orders")
	require.Contains(t, lines[2], "Deleted order ID: 1")
	for _, line := range lines {
		require.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{6} - `, line)
	}
}
