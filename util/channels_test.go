package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSendDeliversWhenContextLive(t *testing.T) {
	out := make(chan int, 1)
	Send(context.Background(), 7, out)
	assert.Equal(t, 7, <-out)
}

func TestSendReturnsEarlyWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := make(chan int)
	done := make(chan struct{})
	go func() {
		Send(ctx, 7, out)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Send did not return after context cancellation")
	}
}

func TestSendManyStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan int, 1)
	go func() {
		out <- 1
		cancel()
	}()
	done := make(chan struct{})
	go func() {
		SendMany(ctx, []int{1, 2, 3}, out)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SendMany did not return after context cancellation")
	}
}

func TestNewCompleteChannelClosesOnce(t *testing.T) {
	ch, cancel := NewCompleteChannel()
	cancel()
	cancel()
	select {
	case <-ch:
	default:
		t.Fatal("complete channel was not closed")
	}
}
