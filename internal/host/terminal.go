// Package host adapts the real terminal to vm.InputDevice: raw mode so the
// guest program controls its own echo and line buffering, and a
// non-blocking background reader so KBSR polling never stalls the fetch
// loop waiting on stdin.
package host

import (
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// Terminal reads stdin a byte at a time into an internal queue, fed by a
// single background goroutine. It implements vm.InputDevice without
// importing the vm package, keeping the dependency direction one-way.
type Terminal struct {
	fd       int
	oldState *term.State

	mu     sync.Mutex
	queue  []byte
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewTerminal puts fd (normally os.Stdin.Fd()) into raw, non-blocking mode
// and starts the background reader. Call Close to restore the terminal.
func NewTerminal(fd int) (*Terminal, error) {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	if err := syscall.SetNonblock(fd, true); err != nil {
		_ = term.Restore(fd, oldState)
		return nil, err
	}

	t := &Terminal{
		fd:       fd,
		oldState: oldState,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go t.readLoop()
	return t, nil
}

// readLoop is the sole producer of t.queue; Ready and ReadByte are the
// only consumers. The core never calls into the terminal from more than
// one goroutine, so this single-producer/single-consumer split is race
// free without needing a condition variable.
func (t *Terminal) readLoop() {
	defer close(t.doneCh)
	buf := make([]byte, 1)

	for {
		select {
		case <-t.stopCh:
			return
		default:
		}

		n, err := syscall.Read(t.fd, buf)
		if n > 0 {
			t.mu.Lock()
			t.queue = append(t.queue, buf[0])
			t.mu.Unlock()
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
			time.Sleep(time.Millisecond)
			continue
		}
		if err != nil {
			return
		}
	}
}

// Ready reports whether a byte is available without blocking.
func (t *Terminal) Ready() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.queue) > 0
}

// ReadByte blocks until a byte is available, then returns it. Callers only
// invoke this after Ready reports true (KBSR synthesis) or when emulating a
// hardware trap that is defined to block (GETC, IN), so a short busy-wait
// here never stalls the guest indefinitely.
func (t *Terminal) ReadByte() (byte, error) {
	for {
		t.mu.Lock()
		if len(t.queue) > 0 {
			b := t.queue[0]
			t.queue = t.queue[1:]
			t.mu.Unlock()
			return b, nil
		}
		t.mu.Unlock()
		time.Sleep(time.Millisecond)
	}
}

// Close stops the background reader and restores the terminal to its
// original mode.
func (t *Terminal) Close() error {
	close(t.stopCh)
	<-t.doneCh
	_ = syscall.SetNonblock(t.fd, false)
	return term.Restore(t.fd, t.oldState)
}
