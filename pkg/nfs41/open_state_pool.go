package nfs41

import (
	"sync"

	"github.com/buildbarn/bb-nfs41-daemon/pkg/windowsext"
)

// OpenStateHandle is the opaque value that is handed to the redirector
// in the open reply, and returned by it in the close upcall. The lower
// 32 bits contain the index of a slot in OpenStatePool plus one. The
// upper 32 bits contain the generation of the slot, so that handles of
// states that have already been released are detected.
//
// The zero value is never handed out, and denotes the absence of a
// state.
type OpenStateHandle uint64

func newOpenStateHandle(index, generation uint32) OpenStateHandle {
	return OpenStateHandle(uint64(generation)<<32 | uint64(index+1))
}

func (h OpenStateHandle) split() (uint32, uint32, bool) {
	index := uint32(h)
	if index == 0 {
		return 0, 0, false
	}
	return index - 1, uint32(h >> 32), true
}

type openStateSlot struct {
	generation uint32
	state      *OpenState
}

// OpenStatePool holds all open states that are either being set up by
// an open upcall, or have been handed to the redirector. Handles are
// looked up in a table instead of being dereferenced, meaning that
// handles that are unknown or reused are reported as
// ERROR_INVALID_HANDLE.
type OpenStatePool struct {
	maximumStates int

	lock      sync.Mutex
	slots     []openStateSlot
	freeSlots []uint32
	count     int
}

// NewOpenStatePool creates an OpenStatePool that is empty. It permits
// at most maximumStates states to exist at the same time.
func NewOpenStatePool(maximumStates int) *OpenStatePool {
	return &OpenStatePool{
		maximumStates: maximumStates,
	}
}

// Allocate a new open state for a given path and open-owner ID.
func (p *OpenStatePool) Allocate(path string, openOwnerID uint32) (OpenStateHandle, *OpenState, error) {
	state, err := newOpenState(path, openOwnerID)
	if err != nil {
		return 0, nil, err
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	if p.count >= p.maximumStates {
		return 0, nil, ErrOutOfStates
	}
	var index uint32
	if n := len(p.freeSlots); n > 0 {
		index = p.freeSlots[n-1]
		p.freeSlots = p.freeSlots[:n-1]
	} else {
		index = uint32(len(p.slots))
		p.slots = append(p.slots, openStateSlot{})
	}
	slot := &p.slots[index]
	slot.generation++
	slot.state = state
	p.count++
	return newOpenStateHandle(index, slot.generation), state, nil
}

func (p *OpenStatePool) getSlot(handle OpenStateHandle) (*openStateSlot, error) {
	index, generation, ok := handle.split()
	if !ok || index >= uint32(len(p.slots)) {
		return nil, windowsext.ERROR_INVALID_HANDLE
	}
	slot := &p.slots[index]
	if slot.state == nil || slot.generation != generation {
		return nil, windowsext.ERROR_INVALID_HANDLE
	}
	return slot, nil
}

// Lookup the open state corresponding to a handle.
func (p *OpenStatePool) Lookup(handle OpenStateHandle) (*OpenState, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	slot, err := p.getSlot(handle)
	if err != nil {
		return nil, err
	}
	return slot.state, nil
}

// Release an open state, so that its handle can no longer be used.
// The slot is reused by subsequent calls to Allocate() with a
// different generation.
func (p *OpenStatePool) Release(handle OpenStateHandle) (*OpenState, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	slot, err := p.getSlot(handle)
	if err != nil {
		return nil, err
	}
	state := slot.state
	slot.state = nil
	p.freeSlots = append(p.freeSlots, uint32(handle)-1)
	p.count--
	return state, nil
}

// Len returns the number of open states that have not been released.
func (p *OpenStatePool) Len() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.count
}
