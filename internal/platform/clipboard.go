package platform

import (
	"sync"

	"github.com/atotto/clipboard"

	"svault/internal/domain"
)

// SystemClipboard is the desktop clipboard. On Linux it shells out to xclip,
// xsel or wl-copy.
type SystemClipboard struct{}

// NewClipboard returns the system clipboard, or an in-process one when no
// clipboard utility is available.
func NewClipboard() domain.Clipboard {
	if clipboard.Unsupported {
		return &MemoryClipboard{}
	}
	return SystemClipboard{}
}

func (SystemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// MemoryClipboard keeps the clipboard in process memory.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

func (c *MemoryClipboard) ReadAll() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

func (c *MemoryClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

var (
	_ domain.Clipboard = SystemClipboard{}
	_ domain.Clipboard = (*MemoryClipboard)(nil)
)
