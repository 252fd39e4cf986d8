package kafka

import (
	"context"
	"testing"
	"time"
)

func waitClosed(t *testing.T, p *Producer) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		p.WaitClosed()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("WaitClosed never returned")
	}
}

func TestProducerShutdownAfterClose(t *testing.T) {
	p := NewProducer([]string{"localhost:1"}, "orders.test", 8)
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	// the API's shutdown order: close the inbox first, then stop the loop
	p.Close()
	cancel()
	waitClosed(t, p)
}

func TestProducerShutdownOnContextCancel(t *testing.T) {
	p := NewProducer([]string{"localhost:1"}, "orders.test", 8)
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	cancel()
	waitClosed(t, p)

	// a late Close must not panic: the loop never closed the inbox itself
	p.Close()
}
