package trvsched

import "sync"

// ErasedByte is the factory/erased state of every store byte.
const ErasedByte byte = 0xff

// A ByteStore gives byte-granular access to the non-volatile area
// holding the schedule bytes. Implementations minimize wear:
// UpdateByte performs no physical write when the stored byte already
// has the target value, and EraseByte skips the erase when the byte is
// already in the erased state.
type ByteStore interface {
	ReadByte(addr uint16) byte
	UpdateByte(addr uint16, value byte)
	EraseByte(addr uint16)
}

// A Guard delimits one access to the underlying store, the software
// analog of an interrupt-masked critical section. Do calls must not be
// nested.
type Guard interface {
	Do(fn func())
}

// MutexGuard is the default Guard, a plain non-recursive mutex.
type MutexGuard struct {
	mu sync.Mutex
}

// Do runs fn while holding the mutex.
func (g *MutexGuard) Do(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn()
}

// MemStore is an in-memory ByteStore starting in the all-erased
// factory state. It counts physical write/erase cycles so wear
// behaviour can be checked in tests.
type MemStore struct {
	image  map[uint16]byte
	Writes int
}

// NewMemStore returns an empty (all-erased) MemStore.
func NewMemStore() *MemStore {
	return &MemStore{image: map[uint16]byte{}}
}

// ReadByte returns the byte at addr, ErasedByte if never written.
func (s *MemStore) ReadByte(addr uint16) byte {
	if b, ok := s.image[addr]; ok {
		return b
	}
	return ErasedByte
}

// UpdateByte writes value at addr unless it is already stored there.
func (s *MemStore) UpdateByte(addr uint16, value byte) {
	if s.ReadByte(addr) == value {
		return
	}
	s.image[addr] = value
	s.Writes++
}

// EraseByte puts the byte at addr back in the erased state unless it
// already is.
func (s *MemStore) EraseByte(addr uint16) {
	if s.ReadByte(addr) == ErasedByte {
		return
	}
	delete(s.image, addr)
	s.Writes++
}
