package ecs

import (
	"fmt"
	"sync/atomic"
)

// EntityID packs three fields into 64 bits:
//
//	bits  0-31  slot index
//	bits 32-47  generation, bumped on destroy to invalidate stale refs
//	bits 48-63  tag of the World that issued the id (never zero)
//
// The zero EntityID is never issued and can be used as "no entity".
type EntityID uint64

const (
	maxGeneration = 0xFFFF
	maxWorldTag   = 0xFFFF
)

func NewEntityID(world uint16, index uint32, generation uint16) EntityID {
	return EntityID(uint64(world)<<48 | uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint16 { return uint16(id >> 32) }
func (id EntityID) World() uint16      { return uint16(id >> 48) }
func (id EntityID) IsZero() bool       { return id == 0 }

func (id EntityID) String() string {
	return fmt.Sprintf("%d.%d@w%d", id.Index(), id.Generation(), id.World())
}

var worldTags atomic.Uint32

// nextWorldTag hands out 1..65535, wrapping. Two live worlds only share a tag
// after 65535 worlds were created in one process.
func nextWorldTag() uint16 {
	return uint16((worldTags.Add(1)-1)%maxWorldTag + 1)
}

// EntityPool manages entity allocation with generational indices and a free list.
type EntityPool struct {
	world       uint16
	generations []uint16
	alive       []bool
	freeList    []uint32
	nextIndex   uint32
	live        int
}

func NewEntityPool(world uint16) *EntityPool {
	return &EntityPool{
		world:       world,
		generations: make([]uint16, 0, 1024),
		alive:       make([]bool, 0, 1024),
		freeList:    make([]uint32, 0, 256),
	}
}

func (p *EntityPool) Create() EntityID {
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		p.alive[idx] = true
		p.live++
		return NewEntityID(p.world, idx, p.generations[idx])
	}
	if p.nextIndex == ^uint32(0) {
		panic(fmt.Errorf("%w: %d slots in use", ErrExhausted, p.nextIndex))
	}
	idx := p.nextIndex
	p.nextIndex++
	p.generations = append(p.generations, 0)
	p.alive = append(p.alive, true)
	p.live++
	return NewEntityID(p.world, idx, 0)
}

// Alive reports whether id refers to a live entity of this pool.
// Ids issued by another World are a programming error.
func (p *EntityPool) Alive(id EntityID) bool {
	if id.IsZero() {
		return false
	}
	p.checkOwner(id)
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.alive[idx] && p.generations[idx] == id.Generation()
}

// Destroy kills id. Dead, stale and never-issued ids are ignored.
func (p *EntityPool) Destroy(id EntityID) bool {
	if !p.Alive(id) {
		return false
	}
	idx := id.Index()
	p.alive[idx] = false
	p.live--
	if p.generations[idx] == maxGeneration {
		// retired: recycling would hand out an id equal to a very old one
		return true
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
	return true
}

// Len returns the number of live entities.
func (p *EntityPool) Len() int { return p.live }

func (p *EntityPool) checkOwner(id EntityID) {
	if id.World() != p.world {
		panic(fmt.Errorf("%w: %s used with world %d", ErrForeignEntity, id, p.world))
	}
}
