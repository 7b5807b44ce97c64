// Package lifecycle delivers "about to exit" notifications from the OS.
package lifecycle

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ExitSignals are the signals treated as the program being discarded.
var ExitSignals = []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}

// Subscribe calls fn, from its own goroutine, once per exit signal received
// until the returned unsubscribe func is called. Unsubscribe stops signal
// delivery and waits for the listener to return; it is safe to call twice.
func Subscribe(fn func(os.Signal), sigs ...os.Signal) (unsubscribe func()) {
	if len(sigs) == 0 {
		sigs = ExitSignals
	}
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	var wg sync.WaitGroup

	signal.Notify(ch, sigs...)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case sig := <-ch:
				fn(sig)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
			wg.Wait()
		})
	}
}
