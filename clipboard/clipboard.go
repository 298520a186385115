// Package clipboard delivers export payloads to the user's clipboard.
//
// A Copier tries a primary Writer first and falls back to a temporary
// Surface: the payload is placed on it, selected, copied and the surface is
// removed again whether or not the copy succeeded.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	sysclip "github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// ErrUnavailable is returned when no clipboard mechanism is usable.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer is a primary clipboard mechanism.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// Surface is a temporary off-screen element used by the fallback path.
type Surface interface {
	SetText(text string)
	Select()
	Copy() (bool, error)
	Remove() error
}

// SurfaceFunc creates a fresh fallback surface.
type SurfaceFunc func() (Surface, error)

// Copier copies text through a primary Writer with a Surface fallback.
type Copier struct {
	primary    Writer
	newSurface SurfaceFunc
	logger     *log.Logger
}

// NewCopier returns a Copier. Either mechanism may be nil; logger defaults to log.Default().
func NewCopier(primary Writer, fallback SurfaceFunc, logger *log.Logger) *Copier {
	if logger == nil {
		logger = log.Default()
	}
	return &Copier{primary: primary, newSurface: fallback, logger: logger}
}

// Copy places text on the clipboard.
func (c *Copier) Copy(ctx context.Context, text string) error {
	if c.primary != nil {
		err := c.primary.WriteText(ctx, text)
		if err == nil {
			c.logger.Println("Copied to clipboard!")
			return nil
		}
		c.logger.Printf("Could not copy text: %v", err)
	}
	if c.newSurface == nil {
		return ErrUnavailable
	}
	return c.fallback(text)
}

func (c *Copier) fallback(text string) (err error) {
	surface, err := c.newSurface()
	if err != nil {
		c.logger.Printf("Fallback: Oops, unable to copy: %v", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		if rerr := surface.Remove(); rerr != nil && err == nil {
			err = fmt.Errorf("remove fallback surface: %w", rerr)
		}
	}()

	surface.SetText(text)
	surface.Select()
	ok, err := surface.Copy()
	if err != nil {
		c.logger.Printf("Fallback: Oops, unable to copy: %v", err)
		return err
	}
	if ok {
		c.logger.Println("Fallback: Copying text command was successful")
		return nil
	}
	c.logger.Println("Fallback: Copying text command was unsuccessful")
	return ErrUnavailable
}

// SystemWriter writes to the operating system clipboard.
type SystemWriter struct{}

// WriteText implements Writer. The platform call cannot be cancelled, so a
// done context only abandons the wait.
func (SystemWriter) WriteText(ctx context.Context, text string) error {
	if sysclip.Unsupported {
		return ErrUnavailable
	}
	done := make(chan error, 1)
	go func() { done <- sysclip.WriteAll(text) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TerminalSurface copies through the controlling terminal with an OSC 52
// escape sequence. It works over SSH and inside tmux or screen.
type TerminalSurface struct {
	w        io.WriteCloser
	text     string
	selected bool
}

// NewTerminalSurface returns a SurfaceFunc that opens path (usually /dev/tty)
// for every copy.
func NewTerminalSurface(path string) SurfaceFunc {
	return func() (Surface, error) {
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			return nil, fmt.Errorf("open terminal: %w", err)
		}
		return &TerminalSurface{w: f}, nil
	}
}

// SetText implements Surface.
func (t *TerminalSurface) SetText(text string) { t.text = text }

// Select implements Surface.
func (t *TerminalSurface) Select() { t.selected = true }

// Copy implements Surface.
func (t *TerminalSurface) Copy() (bool, error) {
	if !t.selected {
		return false, nil
	}
	seq := osc52.New(t.text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(os.Getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(t.w); err != nil {
		return false, err
	}
	return true, nil
}

// Remove implements Surface.
func (t *TerminalSurface) Remove() error {
	return t.w.Close()
}

// Outbox holds the last payload for a browser to pick up; the page's script
// performs the actual clipboard write.
type Outbox struct {
	mu   sync.Mutex
	text string
}

// WriteText implements Writer.
func (o *Outbox) WriteText(_ context.Context, text string) error {
	o.mu.Lock()
	o.text = text
	o.mu.Unlock()
	return nil
}

// Copy lets an Outbox serve directly as a session clipboard.
func (o *Outbox) Copy(ctx context.Context, text string) error {
	return o.WriteText(ctx, text)
}

// Take returns and clears the pending payload.
func (o *Outbox) Take() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	text := o.text
	o.text = ""
	return text
}
