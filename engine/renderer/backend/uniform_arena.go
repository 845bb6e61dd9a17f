package backend

// UniformAlignment is the minimum dynamic uniform offset alignment guaranteed by WebGPU.
const UniformAlignment = 256

// UniformStride is the space reserved per draw in the uniform arena. It fits the largest
// uniform block of any program.
const UniformStride = 512

// DefaultMaxDrawsPerFrame bounds the draws of one pass.
const DefaultMaxDrawsPerFrame = 4096

// uniformArena stages the uniform blocks of one pass on the CPU. Every block starts at a
// multiple of UniformStride and is bound with a dynamic offset, so one buffer serves every
// draw of the pass.
type uniformArena struct {
	staging []byte
	cursor  uint32
	limit   int
	blocks  int
}

func newUniformArena(maxDraws int) *uniformArena {
	return &uniformArena{
		staging: make([]byte, maxDraws*UniformStride),
		limit:   maxDraws,
	}
}

// reset forgets every staged block.
func (a *uniformArena) reset() {
	a.cursor = 0
	a.blocks = 0
}

// stage copies data into the next free slot and returns its offset. ok is false when the
// arena is full or data does not fit a slot.
func (a *uniformArena) stage(data []byte) (offset uint32, ok bool) {
	if a.blocks >= a.limit || len(data) > UniformStride {
		return 0, false
	}
	offset = a.cursor
	copy(a.staging[offset:], data)
	a.cursor += UniformStride
	a.blocks++
	return offset, true
}

// pending returns the staged bytes written since the last reset.
func (a *uniformArena) pending() []byte {
	return a.staging[:a.cursor]
}

// size is the byte size of the GPU buffer backing the arena.
func (a *uniformArena) size() uint64 {
	return uint64(len(a.staging))
}

func alignUp(n, alignment uint64) uint64 {
	return (n + alignment - 1) / alignment * alignment
}
