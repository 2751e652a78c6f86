package sessions

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/iammorganparry/clive/apps/uigen/internal/models"
	"github.com/iammorganparry/clive/apps/uigen/internal/store"
)

// Persistence snapshots sessions from a Store into a snapshot backend.
// It is advisory: failures are logged and never returned to the caller.
type Persistence struct {
	sessions  *Store
	snapshots store.Snapshots
	logger    *slog.Logger
	wg        sync.WaitGroup

	mu    sync.Mutex
	slots map[string]*writeSlot
}

// writeSlot orders writes for one session id. A write whose generation is
// not newer than the last one written is dropped.
type writeSlot struct {
	mu        sync.Mutex
	requested uint64
	written   uint64
	pending   int
}

func NewPersistence(sessions *Store, snapshots store.Snapshots, logger *slog.Logger) *Persistence {
	return &Persistence{
		sessions:  sessions,
		snapshots: snapshots,
		logger:    logger,
		slots:     make(map[string]*writeSlot),
	}
}

// Save writes the current state of id. Unknown sessions are skipped.
func (p *Persistence) Save(id string) {
	snap, ok := p.sessions.Snapshot(id)
	if !ok {
		return
	}
	slot, gen := p.reserve(id)
	p.write(id, slot, gen, snap)
}

// SaveAsync takes the snapshot now and writes it in the background. Writes
// for the same id land in call order; a stale one never overwrites a newer one.
func (p *Persistence) SaveAsync(id string) {
	snap, ok := p.sessions.Snapshot(id)
	if !ok {
		return
	}
	slot, gen := p.reserve(id)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.write(id, slot, gen, snap)
	}()
}

func (p *Persistence) reserve(id string) (*writeSlot, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	slot, ok := p.slots[id]
	if !ok {
		slot = &writeSlot{}
		p.slots[id] = slot
	}
	slot.requested++
	slot.pending++
	return slot, slot.requested
}

func (p *Persistence) write(id string, slot *writeSlot, gen uint64, snap *models.Snapshot) {
	defer p.release(id, slot)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic saving session", "session_id", id, "error", r)
		}
	}()

	slot.mu.Lock()
	defer slot.mu.Unlock()

	if gen <= slot.written {
		p.logger.Debug("skipped stale session save", "session_id", id, "generation", gen)
		return
	}
	slot.written = gen
	if err := p.snapshots.Save(id, snap); err != nil {
		p.logger.Error("failed to save session", "session_id", id, "error", err)
	}
}

func (p *Persistence) release(id string, slot *writeSlot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	slot.pending--
	if slot.pending == 0 && p.slots[id] == slot {
		delete(p.slots, id)
	}
}

// Load restores a persisted session into the store. It returns false when no
// snapshot exists or it cannot be read.
func (p *Persistence) Load(id string) bool {
	snap, err := p.snapshots.Load(id)
	if err != nil {
		p.logger.Warn("failed to load session", "session_id", id, "error", err)
		return false
	}
	if snap == nil {
		return false
	}
	if err := validSnapshot(snap); err != nil {
		p.logger.Warn("failed to load session", "session_id", id, "error", err)
		return false
	}
	p.sessions.Restore(id, snap)
	p.logger.Debug("session restored", "session_id", id, "history", len(snap.History))
	return true
}

func validSnapshot(snap *models.Snapshot) error {
	for i, m := range snap.History {
		if !m.Role.IsValid() {
			return fmt.Errorf("history entry %d: invalid role %q", i, m.Role)
		}
	}
	return nil
}

// Purge deletes the persisted snapshot for id.
func (p *Persistence) Purge(id string) {
	if err := p.snapshots.Delete(id); err != nil {
		p.logger.Error("failed to delete session snapshot", "session_id", id, "error", err)
	}
}

// Wait blocks until in-flight background saves finish.
func (p *Persistence) Wait() {
	p.wg.Wait()
}
