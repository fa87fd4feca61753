// Package clipboard gives the engine text access to the system clipboard,
// with an in-process fallback for terminals where none is available.
package clipboard

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/treykane/cli-mindmap/internal/logging"
)

// ErrUnavailable is returned when the clipboard cannot be used at all.
var ErrUnavailable = errors.New("clipboard unavailable")

var clipLog = logging.New("clipboard")

// Clipboard reads and writes plain text.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// Mode selects the clipboard backend.
const (
	ModeOS       = "os"
	ModeInternal = "internal"
)

// New returns the backend for mode. The OS clipboard falls back to an
// internal one when the platform has no clipboard utility.
func New(mode string) Clipboard {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeInternal:
		return &Memory{}
	default:
		if clipboard.Unsupported {
			clipLog.Warn("system clipboard unsupported, using internal clipboard")
			return &Memory{}
		}
		return &System{}
	}
}

// System uses the operating system clipboard. The last written text is kept
// so a failing read after a successful write still pastes.
type System struct {
	mu   sync.Mutex
	last string
}

func (s *System) ReadText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.last != "" {
			clipLog.Warn("read system clipboard, using last copied text", "error", err)
			return s.last, nil
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return text, nil
}

func (s *System) WriteText(text string) error {
	s.mu.Lock()
	s.last = text
	s.mu.Unlock()
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Memory is a process-local clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Unavailable always fails. It stands in for a broken clipboard in tests and
// when clipboard access is disabled.
type Unavailable struct{}

func (Unavailable) ReadText() (string, error) { return "", ErrUnavailable }

func (Unavailable) WriteText(string) error { return ErrUnavailable }
