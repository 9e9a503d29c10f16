package ecs

import "fmt"

// Entity is a slot index in the low 32 bits and the slot's version in the
// high 32 bits. Slot indices start at 1, so the zero Entity is never alive.
type Entity uint64

func packEntity(slot, version uint32) Entity {
	return Entity(uint64(version)<<32 | uint64(slot))
}

func (e Entity) slot() uint32 {
	return uint32(e)
}

func (e Entity) version() uint32 {
	return uint32(e >> 32)
}

func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.slot(), e.version())
}

func (e Entity) Valid() bool {
	return e.slot() > 0
}

// entityStore hands out entity slots. Destroying an entity bumps its slot
// version so stale handles stop matching once the slot is reused.
type entityStore struct {
	versions []uint32
	live     []bool
	recycled []uint32
	count    int
}

func (s *entityStore) create() Entity {
	var slot uint32
	if n := len(s.recycled); n > 0 {
		slot = s.recycled[n-1]
		s.recycled = s.recycled[:n-1]
	} else {
		s.versions = append(s.versions, 0)
		s.live = append(s.live, false)
		slot = uint32(len(s.versions))
	}
	s.live[slot-1] = true
	s.count++
	return packEntity(slot, s.versions[slot-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	i := e.slot() - 1
	s.versions[i]++
	s.live[i] = false
	s.recycled = append(s.recycled, e.slot())
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	slot := e.slot()
	if slot == 0 || int(slot) > len(s.versions) {
		return false
	}
	return s.live[slot-1] && s.versions[slot-1] == e.version()
}

func (s *entityStore) each(fn func(Entity)) {
	for i, ok := range s.live {
		if ok {
			fn(packEntity(uint32(i+1), s.versions[i]))
		}
	}
}
