package handler

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rl1809/bakery-ledger/internal/adapter/audit"
	"github.com/rl1809/bakery-ledger/internal/adapter/auth"
	"github.com/rl1809/bakery-ledger/internal/adapter/notify"
	"github.com/rl1809/bakery-ledger/internal/adapter/storage"
	"github.com/rl1809/bakery-ledger/internal/core/service"
)

// runSession feeds scripted input through a fully wired handler backed by
// real adapters in a temp dir and returns everything it printed.
func runSession(t *testing.T, input string) string {
	t.Helper()
	dir := t.TempDir()

	repo := storage.NewCSVAdapter(filepath.Join(dir, "orders.csv"), filepath.Join(dir, "backup.csv"))
	actionLog := audit.NewFileLog(filepath.Join(dir, "log.txt"))
	var out bytes.Buffer

	store, err := service.NewOrderStore(context.Background(), repo, actionLog, notify.NewConsoleNotifier(io.Discard))
	require.NoError(t, err)

	authn := auth.NewStaticAuthenticator("admin", "password")
	menu := NewMenuHandler(store, authn, actionLog, strings.NewReader(input), &out)
	require.NoError(t, menu.Run(context.Background()))
	return out.String()
}

func TestRunRejectsBadCredentials(t *testing.T) {
	out := runSession(t, "admin\nwrong\n")
	require.Contains(t, out, "Authentication failed. Exiting system.")
	require.NotContains(t, out, "Bakery Management System")
}

func TestRunAddLookupSummaryExit(t *testing.T) {
	input := strings.Join([]string{
		"admin", "password",
		"1", "Alice", "Croissant", "3", "2024-05-01",
		"4", "1",
		"9",
		"10",
	}, "\n") + "\n"

	out := runSession(t, input)
	require.Contains(t, out, "Order added successfully with order ID: 1")
	require.Contains(t, out, "Alice")
	require.Contains(t, out, "Croissant")
	require.Contains(t, out, "Total Orders: 1")
	require.Contains(t, out, "Total Quantity: 3")
	require.Contains(t, out, "Most Popular Order: Croissant")
}

func TestRunUpdateBlankMeansUnchanged(t *testing.T) {
	input := strings.Join([]string{
		"admin", "password",
		"1", "Alice", "Croissant", "3", "2024-05-01",
		"2", "1", "", "", "5", "",
		"4", "1",
		"10",
	}, "\n") + "\n"

	out := runSession(t, input)
	require.Contains(t, out, "Order ID 1 updated successfully.")
	require.Contains(t, out, "Alice")
	require.Contains(t, out, "5")
	require.Contains(t, out, "2024-05-01")
}

func TestRunReportsValidationFailures(t *testing.T) {
	input := strings.Join([]string{
		"admin", "password",
		"1", "Alice", "Croissant", "-3", "2024-05-01",
		"1", "Alice", "Croissant", "3", "2024-13-40",
		"10",
	}, "\n") + "\n"

	out := runSession(t, input)
	require.Contains(t, out, "Invalid quantity. Please enter a positive integer.")
	require.Contains(t, out, "Invalid date format. Please enter the date in YYYY-MM-DD format.")
}

func TestRunUnknownIDAndChoice(t *testing.T) {
	input := strings.Join([]string{
		"admin", "password",
		"4", "42",
		"8",
		"banana",
		"10",
	}, "\n") + "\n"

	out := runSession(t, input)
	require.Contains(t, out, "Order ID not found.")
	require.Contains(t, out, "No backup file found.")
	require.Contains(t, out, "Invalid choice, please try again.")
}

func TestRunEndsCleanlyOnEndOfInput(t *testing.T) {
	out := runSession(t, "admin\npassword\n")
	require.Contains(t, out, "Bakery Management System")
}
