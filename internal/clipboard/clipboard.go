// Package clipboard writes text to the system clipboard.
//
// golang.design/x/clipboard is tried first. When it cannot initialise
// (no display, built without cgo) the package falls back to
// github.com/atotto/clipboard, which shells out to pbcopy, xclip, xsel or
// wl-copy.
package clipboard

import (
	"errors"
	"sync"

	atotto "github.com/atotto/clipboard"
	"golang.design/x/clipboard"

	pErrors "github.com/zhubert/noro/internal/errors"
	"github.com/zhubert/noro/internal/logger"
)

// Backend names reported by Backend().
const (
	BackendNone   = "none"
	BackendNative = "native"
	BackendExec   = "exec"
)

// backend is one way of putting text on the clipboard.
type backend struct {
	name  string
	init  func() error
	write func(text string) error
}

var (
	native = backend{
		name: BackendNative,
		init: clipboard.Init,
		write: func(text string) error {
			clipboard.Write(clipboard.FmtText, []byte(text))
			return nil
		},
	}
	exec = backend{
		name: BackendExec,
		init: func() error {
			if atotto.Unsupported {
				return errors.New("no clipboard utility found (install xclip, xsel or wl-clipboard)")
			}
			return nil
		},
		write: atotto.WriteAll,
	}

	mu       sync.Mutex
	backends = []backend{native, exec}
	active   *backend
	initErr  error
	initDone bool
)

// Init picks the first working backend. It is safe to call multiple times;
// the outcome of the first call is remembered.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initDone {
		return initErr
	}
	initDone = true

	log := logger.WithComponent("clipboard")
	var errs []error
	for i := range backends {
		b := &backends[i]
		if err := b.init(); err != nil {
			log.Debug("clipboard backend unavailable", "backend", b.name, "error", err)
			errs = append(errs, err)
			continue
		}
		active = b
		log.Debug("clipboard initialized", "backend", b.name)
		return nil
	}

	initErr = pErrors.ClipboardUnavailable(errors.Join(errs...))
	log.Warn("no clipboard backend available", "error", initErr)
	return initErr
}

// Backend returns the name of the backend in use, or BackendNone.
func Backend() string {
	mu.Lock()
	defer mu.Unlock()
	if active == nil {
		return BackendNone
	}
	return active.name
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := initLocked(); err != nil {
		return err
	}
	if err := active.write(text); err != nil {
		return pErrors.ClipboardWriteFailed(len(text), err)
	}
	logger.WithComponent("clipboard").Debug("wrote text", "bytes", len(text), "backend", active.name)
	return nil
}

// System is the process clipboard as a value that can be handed to code
// expecting a WriteText method.
type System struct{}

// WriteText writes text to the system clipboard.
func (System) WriteText(text string) error {
	return WriteText(text)
}

// reset forgets the chosen backend (tests).
func reset(bs ...backend) {
	mu.Lock()
	defer mu.Unlock()
	if len(bs) == 0 {
		bs = []backend{native, exec}
	}
	backends = bs
	active = nil
	initErr = nil
	initDone = false
}
