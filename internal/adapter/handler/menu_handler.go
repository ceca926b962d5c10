package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/rl1809/bakery-ledger/internal/core/domain"
	"github.com/rl1809/bakery-ledger/internal/core/service"
	"github.com/rl1809/bakery-ledger/internal/port"
)

// command is the typed menu choice. Raw input is mapped to a command once,
// then dispatched.
type command int

const (
	cmdUnknown command = iota
	cmdAdd
	cmdUpdate
	cmdDelete
	cmdLookup
	cmdFilter
	cmdExport
	cmdBackup
	cmdRestore
	cmdSummary
	cmdExit
)

func parseCommand(input string) command {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < int(cmdAdd) || n > int(cmdExit) {
		return cmdUnknown
	}
	return command(n)
}

// MenuHandler drives the interactive session: credential gate first, then a
// numbered menu looping until exit or end of input. It reads and writes
// through plain io interfaces so tests can run it without a terminal.
type MenuHandler struct {
	store *service.OrderStore
	authn port.Authenticator
	audit port.ActionLog

	in  *bufio.Scanner
	out io.Writer
	eof bool
}

func NewMenuHandler(store *service.OrderStore, authn port.Authenticator, audit port.ActionLog, in io.Reader, out io.Writer) *MenuHandler {
	return &MenuHandler{
		store: store,
		authn: authn,
		audit: audit,
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

// Run executes the session. It returns an error only for audit failures;
// rejected credentials and exhausted input end the session normally.
func (h *MenuHandler) Run(ctx context.Context) error {
	username := h.prompt("Enter username: ")
	password := h.prompt("Enter password: ")
	if !h.authn.Authenticate(username, password) {
		fmt.Fprintln(h.out, "Authentication failed. Exiting system.")
		return nil
	}

	sessionID := uuid.NewString()
	if err := h.audit.Record(fmt.Sprintf("Session %s started", sessionID)); err != nil {
		return err
	}

	for {
		h.printMenu()
		raw := h.prompt("Enter your choice: ")
		if h.eof {
			return h.audit.Record(fmt.Sprintf("Session %s ended", sessionID))
		}
		switch parseCommand(raw) {
		case cmdAdd:
			h.handleAdd(ctx)
		case cmdUpdate:
			h.handleUpdate(ctx)
		case cmdDelete:
			h.handleDelete(ctx)
		case cmdLookup:
			h.handleLookup(ctx)
		case cmdFilter:
			h.handleFilter(ctx)
		case cmdExport:
			h.handleExport(ctx)
		case cmdBackup:
			h.handleBackup(ctx)
		case cmdRestore:
			h.handleRestore(ctx)
		case cmdSummary:
			h.handleSummary(ctx)
		case cmdExit:
			return h.audit.Record(fmt.Sprintf("Session %s ended", sessionID))
		default:
			fmt.Fprintln(h.out, "Invalid choice, please try again.")
		}
		if h.eof {
			return h.audit.Record(fmt.Sprintf("Session %s ended", sessionID))
		}
	}
}

func (h *MenuHandler) printMenu() {
	fmt.Fprint(h.out, "\nBakery Management System\n"+
		"1. Add Order\n"+
		"2. Update Order\n"+
		"3. Delete Order\n"+
		"4. Lookup Order\n"+
		"5. Filter Orders\n"+
		"6. Export Orders to CSV\n"+
		"7. Backup Orders\n"+
		"8. Restore Orders\n"+
		"9. Order Summary\n"+
		"10. Exit\n")
}

func (h *MenuHandler) handleAdd(ctx context.Context) {
	name := h.prompt("Enter customer name: ")
	description := h.prompt("Enter order: ")
	quantity := h.prompt("Enter quantity: ")
	date := h.prompt("Enter order date (YYYY-MM-DD): ")

	order, err := h.store.Add(ctx, name, description, quantity, date)
	if err != nil {
		h.printError(err)
		return
	}
	fmt.Fprintf(h.out, "Order added successfully with order ID: %d\n", order.ID)
}

func (h *MenuHandler) handleUpdate(ctx context.Context) {
	id, ok := h.promptID("Enter order ID to update: ")
	if !ok {
		return
	}
	params := service.UpdateParams{
		CustomerName: optional(h.prompt("Enter new customer name (leave blank to keep unchanged): ")),
		Description:  optional(h.prompt("Enter new order (leave blank to keep unchanged): ")),
		Quantity:     optional(h.prompt("Enter new quantity (leave blank to keep unchanged): ")),
		Date:         optional(h.prompt("Enter new order date (YYYY-MM-DD) (leave blank to keep unchanged): ")),
	}

	if _, err := h.store.Update(ctx, id, params); err != nil {
		h.printError(err)
		return
	}
	fmt.Fprintf(h.out, "Order ID %d updated successfully.\n", id)
}

func (h *MenuHandler) handleDelete(ctx context.Context) {
	id, ok := h.promptID("Enter order ID to delete: ")
	if !ok {
		return
	}
	if err := h.store.Delete(ctx, id); err != nil {
		h.printError(err)
		return
	}
	fmt.Fprintf(h.out, "Order ID %d deleted successfully.\n", id)
}

func (h *MenuHandler) handleLookup(ctx context.Context) {
	id, ok := h.promptID("Enter order ID to lookup: ")
	if !ok {
		return
	}
	order, err := h.store.Lookup(ctx, id)
	if err != nil {
		h.printError(err)
		return
	}
	h.printOrders([]domain.Order{order})
}

func (h *MenuHandler) handleFilter(ctx context.Context) {
	query := service.Query{
		Customer:  h.prompt("Enter customer name to filter by (leave blank to ignore): "),
		StartDate: h.prompt("Enter start date (YYYY-MM-DD) to filter by (leave blank to ignore): "),
		EndDate:   h.prompt("Enter end date (YYYY-MM-DD) to filter by (leave blank to ignore): "),
	}
	orders := h.store.Filter(ctx, query)
	if len(orders) == 0 {
		fmt.Fprintln(h.out, "No orders found.")
		return
	}
	h.printOrders(orders)
}

func (h *MenuHandler) handleExport(ctx context.Context) {
	path := h.prompt("Enter filename to export to (e.g., orders.csv): ")
	if err := h.store.Export(ctx, path); err != nil {
		h.printError(err)
		return
	}
	fmt.Fprintf(h.out, "All orders have been exported to %s\n", path)
}

func (h *MenuHandler) handleBackup(ctx context.Context) {
	if err := h.store.Backup(ctx); err != nil {
		h.printError(err)
		return
	}
	fmt.Fprintln(h.out, "Backup created successfully.")
}

func (h *MenuHandler) handleRestore(ctx context.Context) {
	if err := h.store.Restore(ctx); err != nil {
		h.printError(err)
		return
	}
	fmt.Fprintln(h.out, "Orders restored successfully from backup.")
}

func (h *MenuHandler) handleSummary(ctx context.Context) {
	summary := h.store.Summarize(ctx)
	fmt.Fprintln(h.out, "Order Summary")
	fmt.Fprintln(h.out, "-------------")
	fmt.Fprintf(h.out, "Total Orders: %d\n", summary.TotalOrders)
	fmt.Fprintf(h.out, "Total Quantity: %d\n", summary.TotalQuantity)
	fmt.Fprintf(h.out, "Most Popular Order: %s\n", summary.MostPopular)
}

func (h *MenuHandler) printOrders(orders []domain.Order) {
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Order ID\tCustomer Name\tOrder\tQuantity\tOrder Date")
	for _, o := range orders {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", o.ID, o.CustomerName, o.Description, o.Quantity, o.Date)
	}
	w.Flush()
}

func (h *MenuHandler) printError(err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		fmt.Fprintln(h.out, "Invalid quantity. Please enter a positive integer.")
	case errors.Is(err, domain.ErrInvalidDate):
		fmt.Fprintln(h.out, "Invalid date format. Please enter the date in YYYY-MM-DD format.")
	case errors.Is(err, service.ErrOrderNotFound):
		fmt.Fprintln(h.out, "Order ID not found.")
	case errors.Is(err, port.ErrNoBackup):
		fmt.Fprintln(h.out, "No backup file found.")
	default:
		fmt.Fprintf(h.out, "Error: %v\n", err)
	}
}

func (h *MenuHandler) prompt(label string) string {
	fmt.Fprint(h.out, label)
	if !h.in.Scan() {
		h.eof = true
		return ""
	}
	return strings.TrimSpace(h.in.Text())
}

func (h *MenuHandler) promptID(label string) (int64, bool) {
	raw := h.prompt(label)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Fprintln(h.out, "Invalid order ID.")
		return 0, false
	}
	return id, true
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
