package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnreachable marks a remote store that did not answer its ping.
var ErrUnreachable = errors.New("cache backend unreachable")

// Ping schedule for remote stores coming up next to the server.
var (
	pingAttempts = 4
	pingDelay    = 250 * time.Millisecond
)

// waitForBackend calls ping until it succeeds, the attempts run out or
// ctx ends. The delay between pings doubles each time.
func waitForBackend(ctx context.Context, name string, ping func(context.Context) error) error {
	delay := pingDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = ping(ctx); err == nil {
			return nil
		}
		if attempt >= pingAttempts {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return fmt.Errorf("%w: %s: %v", ErrUnreachable, name, err)
}
