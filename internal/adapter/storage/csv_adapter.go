package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rl1809/bakery-ledger/internal/core/domain"
	"github.com/rl1809/bakery-ledger/internal/port"
)

// csvHeader is the fixed column set shared by the primary file, backups,
// and exports.
var csvHeader = []string{"Order ID", "Customer Name", "Order", "Quantity", "Order Date"}

var _ port.OrderRepository = (*CSVAdapter)(nil)

// CSVAdapter persists the order table as a flat CSV file with a header row.
// Writes always replace the whole file.
type CSVAdapter struct {
	dataPath   string
	backupPath string
}

func NewCSVAdapter(dataPath, backupPath string) *CSVAdapter {
	return &CSVAdapter{dataPath: dataPath, backupPath: backupPath}
}

func (a *CSVAdapter) Load(ctx context.Context) ([]domain.Order, error) {
	orders, err := readFile(a.dataPath)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.Order{}, nil
	}
	return orders, err
}

func (a *CSVAdapter) Save(ctx context.Context, orders []domain.Order) error {
	return writeFile(a.dataPath, orders)
}

func (a *CSVAdapter) Export(ctx context.Context, path string, orders []domain.Order) error {
	return writeFile(path, orders)
}

func (a *CSVAdapter) Backup(ctx context.Context, orders []domain.Order) error {
	return writeFile(a.backupPath, orders)
}

func (a *CSVAdapter) Restore(ctx context.Context) ([]domain.Order, error) {
	orders, err := readFile(a.backupPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, port.ErrNoBackup
	}
	return orders, err
}

func readFile(path string) ([]domain.Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvHeader)

	// Header row is present even in an empty table.
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return []domain.Order{}, nil
		}
		return nil, fmt.Errorf("read header %s: %w", path, err)
	}

	var orders []domain.Order
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %s: %w", path, err)
		}
		order, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("parse row %s: %w", path, err)
		}
		orders = append(orders, order)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func parseRow(row []string) (domain.Order, error) {
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order id %q: %w", row[0], err)
	}
	quantity, err := strconv.Atoi(row[3])
	if err != nil {
		return domain.Order{}, fmt.Errorf("quantity %q: %w", row[3], err)
	}
	return domain.Order{
		ID:           id,
		CustomerName: row[1],
		Description:  row[2],
		Quantity:     quantity,
		Date:         row[4],
	}, nil
}

func writeFile(path string, orders []domain.Order) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("write header %s: %w", path, err)
	}
	for _, o := range orders {
		row := []string{
			strconv.FormatInt(o.ID, 10),
			o.CustomerName,
			o.Description,
			strconv.Itoa(o.Quantity),
			o.Date,
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write row %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}
