// Package notify delivers fire-and-forget mutation notices.
package notify

import (
	"fmt"
	"io"

	"github.com/rl1809/bakery-ledger/internal/port"
)

var _ port.Notifier = (*ConsoleNotifier)(nil)

// ConsoleNotifier prints each notice to the given writer, one per line.
// Write failures are dropped; notifications carry no delivery guarantee.
type ConsoleNotifier struct {
	out io.Writer
}

func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

func (n *ConsoleNotifier) Notify(message string) {
	fmt.Fprintf(n.out, "Notification: %s\n", message)
}
