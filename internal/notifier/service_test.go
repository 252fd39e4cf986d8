package notifier

import (
	"strings"
	"testing"

	"github.com/ariefcatur/go-resto-orders/internal/orders"
)

func TestNotice(t *testing.T) {
	n := Notice("o123", orders.StatusPreparing, "")
	if !strings.Contains(n, "o123") {
		t.Errorf("notice should contain order id: %s", n)
	}
	if !strings.Contains(n, orders.DefaultMessage(orders.StatusPreparing)) {
		t.Errorf("notice should fall back to default message: %s", n)
	}

	n = Notice("o123", orders.StatusReady, "come get it")
	if !strings.Contains(n, "come get it") {
		t.Errorf("notice should keep the transition message: %s", n)
	}
}
