package chunkgraph

// chunkTable is an open-addressing hash table keyed on a 64-bit chunk id,
// a bare Go map works too, but an
// explicit table keeps the hot lookup path allocation-free and makes the
// "reserved empty key" contract visible and testable rather than implicit in a
// library's internals.
//
// emptyKey marks an unused slot and can never be a valid chunk id — callers
// pass total_chunks as the sentinel, since chunk ids only range over
// [0, total_chunks).
type chunkTable struct {
	emptyKey uint64
	slots    []chunkSlot
	count    int
}

type chunkSlot struct {
	key   uint64
	chunk Chunk
}

// newChunkTable creates a table sized for an expected number of entries,
// with every slot initialized to emptyKey.
func newChunkTable(emptyKey uint64, sizeHint int) *chunkTable {
	if sizeHint < 8 {
		sizeHint = 8
	}
	t := &chunkTable{
		emptyKey: emptyKey,
		slots:    make([]chunkSlot, nextPow2(sizeHint*2)),
	}
	t.reset()
	return t
}

func (t *chunkTable) reset() {
	for i := range t.slots {
		t.slots[i].key = t.emptyKey
	}
}

func (t *chunkTable) Get(key uint64) (*Chunk, bool) {
	idx := t.index(key)
	for {
		slot := &t.slots[idx]
		if slot.key == t.emptyKey {
			return nil, false
		}
		if slot.key == key {
			return &slot.chunk, true
		}
		idx = (idx + 1) & (uint64(len(t.slots)) - 1)
	}
}

func (t *chunkTable) Put(c Chunk) {
	if c.ID == t.emptyKey {
		return // a valid chunk id never collides with the sentinel by construction
	}
	if t.count*2 >= len(t.slots) {
		t.grow()
	}
	idx := t.index(c.ID)
	for {
		slot := &t.slots[idx]
		if slot.key == t.emptyKey {
			slot.key = c.ID
			slot.chunk = c
			t.count++
			return
		}
		if slot.key == c.ID {
			slot.chunk = c
			return
		}
		idx = (idx + 1) & (uint64(len(t.slots)) - 1)
	}
}

// Delete removes key from the table, if present. Used to evict ghost chunks
// once the edge emitter has fully consumed them. Deleting
// from a linear-probed table without tombstones would break later probes
// past this slot, so Delete re-inserts the probe chain's tail instead of
// leaving a hole.
func (t *chunkTable) Delete(key uint64) {
	idx := t.index(key)
	for {
		slot := &t.slots[idx]
		if slot.key == t.emptyKey {
			return
		}
		if slot.key == key {
			t.removeSlotAndRepack(idx)
			return
		}
		idx = (idx + 1) & (uint64(len(t.slots)) - 1)
	}
}

func (t *chunkTable) removeSlotAndRepack(hole uint64) {
	mask := uint64(len(t.slots)) - 1
	t.slots[hole].key = t.emptyKey
	t.count--

	idx := (hole + 1) & mask
	for t.slots[idx].key != t.emptyKey {
		displaced := t.slots[idx].chunk
		t.slots[idx].key = t.emptyKey
		t.count--
		idx = (idx + 1) & mask
		t.Put(displaced)
	}
}

func (t *chunkTable) grow() {
	old := t.slots
	oldEmpty := t.emptyKey
	t.slots = make([]chunkSlot, len(old)*2)
	t.reset()
	t.count = 0
	for _, slot := range old {
		if slot.key != oldEmpty {
			t.Put(slot.chunk)
		}
	}
}

func (t *chunkTable) index(key uint64) uint64 {
	h := key ^ (key >> 33)
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return h & (uint64(len(t.slots)) - 1)
}

// cellTable is the same open-addressing scheme, keyed on the global cell id
// ("chunk_id, local_cell_id" flattened by GlobalCellID).
type cellTable struct {
	emptyKey uint64
	slots    []cellSlot
	count    int
}

type cellSlot struct {
	key  uint64
	cell Cell
}

func newCellTable(emptyKey uint64, sizeHint int) *cellTable {
	if sizeHint < 8 {
		sizeHint = 8
	}
	t := &cellTable{
		emptyKey: emptyKey,
		slots:    make([]cellSlot, nextPow2(sizeHint*2)),
	}
	t.reset()
	return t
}

func (t *cellTable) reset() {
	for i := range t.slots {
		t.slots[i].key = t.emptyKey
	}
}

func (t *cellTable) Get(key uint64) (*Cell, bool) {
	idx := t.index(key)
	for {
		slot := &t.slots[idx]
		if slot.key == t.emptyKey {
			return nil, false
		}
		if slot.key == key {
			return &slot.cell, true
		}
		idx = (idx + 1) & (uint64(len(t.slots)) - 1)
	}
}

// PutAt inserts c keyed explicitly by globalID, since the global cell id
// depends on cells_per_chunk, which the table itself does not know.
func (t *cellTable) PutAt(globalID uint64, c Cell) {
	if globalID == t.emptyKey {
		return
	}
	if t.count*2 >= len(t.slots) {
		t.grow()
	}
	idx := t.index(globalID)
	for {
		slot := &t.slots[idx]
		if slot.key == t.emptyKey {
			slot.key = globalID
			slot.cell = c
			t.count++
			return
		}
		if slot.key == globalID {
			slot.cell = c
			return
		}
		idx = (idx + 1) & (uint64(len(t.slots)) - 1)
	}
}

func (t *cellTable) Delete(key uint64) {
	idx := t.index(key)
	for {
		slot := &t.slots[idx]
		if slot.key == t.emptyKey {
			return
		}
		if slot.key == key {
			t.removeSlotAndRepack(idx)
			return
		}
		idx = (idx + 1) & (uint64(len(t.slots)) - 1)
	}
}

func (t *cellTable) removeSlotAndRepack(hole uint64) {
	mask := uint64(len(t.slots)) - 1
	t.slots[hole].key = t.emptyKey
	t.count--

	idx := (hole + 1) & mask
	for t.slots[idx].key != t.emptyKey {
		displacedKey := t.slots[idx].key
		displaced := t.slots[idx].cell
		t.slots[idx].key = t.emptyKey
		t.count--
		idx = (idx + 1) & mask
		t.PutAt(displacedKey, displaced)
	}
}

func (t *cellTable) grow() {
	old := t.slots
	oldEmpty := t.emptyKey
	t.slots = make([]cellSlot, len(old)*2)
	t.reset()
	t.count = 0
	for _, slot := range old {
		if slot.key != oldEmpty {
			t.PutAt(slot.key, slot.cell)
		}
	}
}

func (t *cellTable) index(key uint64) uint64 {
	h := key ^ (key >> 33)
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return h & (uint64(len(t.slots)) - 1)
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
