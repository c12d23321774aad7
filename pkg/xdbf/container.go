package xdbf

import "fmt"

// Container is an immutable view over a caller-owned XDBF buffer.
//
// Validity is decided once by New. An invalid container answers every query
// with its empty result. The buffer must stay alive and unmodified for as
// long as the container or any Block obtained from it is in use.
type Container struct {
	data       []byte
	header     Header
	entries    []Entry
	freeOff    uint64
	contentOff uint64
	err        error
}

// New indexes buf. It never fails; check Valid or Err for the outcome.
func New(buf []byte) *Container {
	c := &Container{}
	if err := c.parse(buf); err != nil {
		c.err = err
		return c
	}
	c.data = buf
	return c
}

func (c *Container) parse(buf []byte) error {
	if len(buf) < headerSize {
		return fmt.Errorf("%w: %d bytes is shorter than the header", ErrInvalid, len(buf))
	}
	hdr, ok := decodeHeader(buf[:headerSize])
	if !ok {
		return ErrInvalid
	}
	if !hdr.Valid() {
		return fmt.Errorf("%w: magic %#08x", ErrInvalid, hdr.Magic)
	}

	// All region math is done in 64 bits so that 32-bit counts cannot wrap.
	size := uint64(len(buf))
	dirStart := uint64(headerSize)
	dirEnd := dirStart + uint64(hdr.SlotCount)*entrySize
	if dirEnd > size {
		return fmt.Errorf("%w: directory of %d slots exceeds buffer", ErrInvalid, hdr.SlotCount)
	}
	freeEnd := dirEnd + uint64(hdr.FreeSlotCount)*freeEntrySize
	if freeEnd > size {
		return fmt.Errorf("%w: free list of %d slots exceeds buffer", ErrInvalid, hdr.FreeSlotCount)
	}

	used := hdr.UsedSlotCount
	if used > hdr.SlotCount {
		used = hdr.SlotCount
	}
	entries := make([]Entry, used)
	for i := range entries {
		start := dirStart + uint64(i)*entrySize
		e, ok := decodeEntry(buf[start : start+entrySize])
		if !ok {
			return ErrInvalid
		}
		entries[i] = e
	}

	c.header = hdr
	c.entries = entries
	c.freeOff = dirEnd
	c.contentOff = freeEnd
	return nil
}

// Valid reports whether the buffer holds a usable container.
func (c *Container) Valid() bool {
	return c != nil && c.err == nil
}

// Err returns the reason the container is invalid, or nil.
func (c *Container) Err() error {
	if c == nil {
		return ErrInvalid
	}
	return c.err
}

// Header returns the decoded header; the zero Header when invalid.
func (c *Container) Header() Header {
	if !c.Valid() {
		return Header{}
	}
	return c.header
}

// Entries returns the live directory entries in storage order.
func (c *Container) Entries() []Entry {
	if !c.Valid() {
		return nil
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// FreeList returns the free-list records. They are informational only.
func (c *Container) FreeList() []FreeEntry {
	if !c.Valid() {
		return nil
	}
	out := make([]FreeEntry, c.header.FreeSlotCount)
	for i := range out {
		start := c.freeOff + uint64(i)*freeEntrySize
		out[i], _ = decodeFreeEntry(c.data[start : start+freeEntrySize])
	}
	return out
}

// ContentOffset returns the absolute offset of the content region.
func (c *Container) ContentOffset() uint64 {
	if !c.Valid() {
		return 0
	}
	return c.contentOff
}

// Size returns the length of the backing buffer, zero when invalid.
func (c *Container) Size() int {
	if !c.Valid() {
		return 0
	}
	return len(c.data)
}

// Lookup returns the first live entry matching (section, id), in directory
// order. Duplicate keys are not detected; the earliest one wins.
func (c *Container) Lookup(section Section, id uint64) Block {
	if !c.Valid() {
		return missing(ErrInvalid)
	}
	for i := range c.entries {
		e := &c.entries[i]
		if e.Section == section && e.ID == id {
			return c.Block(*e)
		}
	}
	return missing(ErrNotFound)
}

// Block resolves an entry against the content region. Entries whose range
// falls outside the buffer resolve to a missing block with ErrTruncated.
func (c *Container) Block(e Entry) Block {
	if !c.Valid() {
		return missing(ErrInvalid)
	}
	start := c.contentOff + uint64(e.Offset)
	end := start + uint64(e.Size)
	if end > uint64(len(c.data)) {
		return missing(fmt.Errorf("%w: %s entry %#x ends at %d, buffer is %d bytes",
			ErrTruncated, e.Section, e.ID, end, len(c.data)))
	}
	// Safe: end fits in len(c.data), so both bounds fit in int.
	return Block{data: c.data[int(start):int(end):int(end)], found: true}
}
