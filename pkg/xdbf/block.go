package xdbf

// Block is a resolved byte range inside a container's content region.
//
// A Block is an explicit optional: Found distinguishes a stored block of
// length zero from a missing one. The zero Block is "not found".
type Block struct {
	data  []byte
	found bool
	err   error
}

func missing(err error) Block {
	return Block{err: err}
}

// BlockOf wraps raw bytes as a found Block. It lets callers decode blocks
// that did not come from a Container lookup.
func BlockOf(b []byte) Block {
	return Block{data: b, found: true}
}

// Found reports whether the lookup produced a block.
func (b Block) Found() bool {
	return b.found
}

// Bytes returns the block payload. The slice aliases the container buffer
// and must not be retained past the buffer's lifetime.
func (b Block) Bytes() []byte {
	return b.data
}

// Len returns the payload length, zero when not found.
func (b Block) Len() int {
	return len(b.data)
}

// Err reports why the block was not found: ErrNotFound for a plain miss,
// ErrTruncated when the entry points outside the buffer, ErrInvalid when
// the container itself is unusable. It is nil for found blocks.
func (b Block) Err() error {
	if b.found {
		return nil
	}
	if b.err == nil {
		return ErrNotFound
	}
	return b.err
}
