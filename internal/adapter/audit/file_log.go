// Package audit appends the store's action trail to a plain text file.
package audit

import (
	"fmt"
	"os"
	"time"

	"github.com/rl1809/bakery-ledger/internal/port"
)

var _ port.ActionLog = (*FileLog)(nil)

// FileLog writes one "<timestamp> - <action>" line per action. The file is
// opened per write in append mode and never truncated or read back.
type FileLog struct {
	path string
	now  func() time.Time
}

func NewFileLog(path string) *FileLog {
	return &FileLog{path: path, now: time.Now}
}

func (l *FileLog) Record(action string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log %s: %w", l.path, err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s - %s\n", l.now().Format("2006-01-02 15:04:05.000000"), action)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append log %s: %w", l.path, err)
	}
	return nil
}
