package lifecycle

import (
	"crypto/sha256"
	"crypto/subtle"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"svault/internal/domain"
)

// ClipboardSlot is the scheduler slot used for clipboard clearing.
const ClipboardSlot = "clipboard"

// DefaultClipboardDelay is how long a copied secret stays on the clipboard.
const DefaultClipboardDelay = 30 * time.Second

// ClipboardGuard copies secrets to the clipboard and clears them later.
// It never keeps the secret itself, only a salted digest used to recognise
// it.
type ClipboardGuard struct {
	cb    domain.Clipboard
	sched *Scheduler
	delay time.Duration
	log   *slog.Logger

	mu     sync.Mutex
	salt   []byte
	digest [sha256.Size]byte
	owned  bool
}

// NewClipboardGuard returns a guard clearing cb after delay. A zero delay
// selects DefaultClipboardDelay.
func NewClipboardGuard(cb domain.Clipboard, sched *Scheduler, delay time.Duration, log *slog.Logger) *ClipboardGuard {
	if delay <= 0 {
		delay = DefaultClipboardDelay
	}
	if log == nil {
		log = slog.Default()
	}
	return &ClipboardGuard{cb: cb, sched: sched, delay: delay, log: log}
}

// Delay returns the configured clear delay.
func (g *ClipboardGuard) Delay() time.Duration { return g.delay }

func (g *ClipboardGuard) sum(value string) [sha256.Size]byte {
	h := sha256.New()
	h.Write(g.salt)
	h.Write([]byte(value))
	var out [sha256.Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Copy places value on the clipboard and schedules its removal. A previous
// pending clear is replaced.
func (g *ClipboardGuard) Copy(value string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.cb.WriteAll(value); err != nil {
		return domain.E(domain.KindIO, "copy to clipboard", err)
	}
	id := uuid.New()
	g.salt = id[:]
	g.digest = g.sum(value)
	g.owned = true
	g.sched.Schedule(ClipboardSlot, g.delay, g.expire)
	return nil
}

func (g *ClipboardGuard) expire() {
	cleared, err := g.ClearIfOwned()
	if err != nil {
		g.log.Warn("clipboard clear failed", "err", err)
		return
	}
	g.log.Debug("clipboard timer fired", "cleared", cleared)
}

// Cancel stops the pending clear and forgets the copied value. The
// clipboard is left as it is.
func (g *ClipboardGuard) Cancel() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.forget()
	return g.sched.CancelSlot(ClipboardSlot)
}

// ClearIfOwned empties the clipboard if it still holds the last copied
// value. Anything the user copied since is left alone.
func (g *ClipboardGuard) ClearIfOwned() (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sched.CancelSlot(ClipboardSlot)
	if !g.owned {
		return false, nil
	}
	cur, err := g.cb.ReadAll()
	if err != nil {
		return false, domain.E(domain.KindIO, "read clipboard", err)
	}
	got := g.sum(cur)
	if subtle.ConstantTimeCompare(got[:], g.digest[:]) != 1 {
		g.forget()
		return false, nil
	}
	if err := g.cb.WriteAll(""); err != nil {
		return false, domain.E(domain.KindIO, "clear clipboard", err)
	}
	g.forget()
	return true, nil
}

func (g *ClipboardGuard) forget() {
	g.owned = false
	g.salt = nil
	g.digest = [sha256.Size]byte{}
}
