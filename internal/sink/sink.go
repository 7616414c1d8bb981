// Package sink holds the slot-based view state the pipeline renders into.
package sink

import (
	"image"
	"sync"
)

// Sink receives rendered results. Slot indices outside the sink's range
// are ignored.
type Sink interface {
	RenderProfile(name string)
	RenderAvatar(img image.Image)
	RenderCardName(slot int, name string)
	RenderCardImage(slot int, img image.Image)
	// ClearAll blanks the profile name, the avatar and every slot.
	ClearAll()
}

// Slot is one positional card binding.
type Slot struct {
	Name  string
	Image image.Image
}

// Blank reports whether the slot holds neither a name nor an image.
func (s Slot) Blank() bool {
	return s.Name == "" && s.Image == nil
}

// Snapshot is a copy of a Board's state.
type Snapshot struct {
	ProfileName string
	Avatar      image.Image
	Slots       []Slot
}

// Populated counts slots that are not blank.
func (s Snapshot) Populated() int {
	n := 0
	for _, slot := range s.Slots {
		if !slot.Blank() {
			n++
		}
	}
	return n
}

// Board is an in-memory Sink with a fixed number of slots.
type Board struct {
	mu          sync.Mutex
	profileName string
	avatar      image.Image
	slots       []Slot
	changes     chan struct{}
}

// NewBoard creates a Board with slotCount slots.
func NewBoard(slotCount int) *Board {
	if slotCount < 0 {
		slotCount = 0
	}
	return &Board{
		slots:   make([]Slot, slotCount),
		changes: make(chan struct{}, 1),
	}
}

// SlotCount returns the number of slots.
func (b *Board) SlotCount() int {
	return len(b.slots)
}

// Changes signals after every mutation. Signals coalesce: a receiver that
// falls behind sees one pending signal, not one per change.
func (b *Board) Changes() <-chan struct{} {
	return b.changes
}

func (b *Board) notify() {
	select {
	case b.changes <- struct{}{}:
	default:
	}
}

func (b *Board) RenderProfile(name string) {
	b.mu.Lock()
	b.profileName = name
	b.mu.Unlock()
	b.notify()
}

func (b *Board) RenderAvatar(img image.Image) {
	b.mu.Lock()
	b.avatar = img
	b.mu.Unlock()
	b.notify()
}

func (b *Board) RenderCardName(slot int, name string) {
	b.mu.Lock()
	if slot < 0 || slot >= len(b.slots) {
		b.mu.Unlock()
		return
	}
	b.slots[slot].Name = name
	b.mu.Unlock()
	b.notify()
}

func (b *Board) RenderCardImage(slot int, img image.Image) {
	b.mu.Lock()
	if slot < 0 || slot >= len(b.slots) {
		b.mu.Unlock()
		return
	}
	b.slots[slot].Image = img
	b.mu.Unlock()
	b.notify()
}

func (b *Board) ClearAll() {
	b.mu.Lock()
	b.profileName = ""
	b.avatar = nil
	for i := range b.slots {
		b.slots[i] = Slot{}
	}
	b.mu.Unlock()
	b.notify()
}

// Snapshot returns a copy of the current state.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	slots := make([]Slot, len(b.slots))
	copy(slots, b.slots)
	return Snapshot{ProfileName: b.profileName, Avatar: b.avatar, Slots: slots}
}
