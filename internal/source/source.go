// Package source loads XDBF container bytes from disk.
//
// Raw containers are memory-mapped read-only. Files with a .zst, .lz4 or .br
// suffix are decompressed into memory first.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/sys/unix"

	"github.com/samcharles93/xdbf/pkg/xdbf"
)

// DefaultMaxDecompressed bounds the size of a decompressed container.
const DefaultMaxDecompressed = 64 << 20

var (
	ErrTooLarge   = errors.New("source: container too large")
	ErrCorruptZip = errors.New("source: corrupt compressed container")
)

// Compression identifies how a container file is stored.
type Compression int

const (
	CompNone Compression = iota
	CompZSTD
	CompLZ4
	CompBR
)

func (c Compression) String() string {
	switch c {
	case CompZSTD:
		return "zstd"
	case CompLZ4:
		return "lz4"
	case CompBR:
		return "brotli"
	default:
		return "none"
	}
}

// CompressionFor infers the compression from a file name suffix.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompZSTD
	case ".lz4":
		return CompLZ4
	case ".br":
		return CompBR
	default:
		return CompNone
	}
}

// Options tune Open.
type Options struct {
	// MaxDecompressed caps the decompressed size; zero means the default.
	MaxDecompressed int64
}

func (o Options) withDefaults() Options {
	if o.MaxDecompressed <= 0 {
		o.MaxDecompressed = DefaultMaxDecompressed
	}
	return o
}

// File owns the bytes of one container. Containers built from Bytes are
// valid until Close.
type File struct {
	Path        string
	Compression Compression

	data    []byte
	mmapped bool
	game    *xdbf.GameData
}

// Open loads the container at path.
// The returned file must be closed to release any mapping.
func Open(path string, opts Options) (*File, error) {
	opts = opts.withDefaults()
	comp := CompressionFor(path)
	if comp != CompNone {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data, err := Decompress(comp, raw, opts.MaxDecompressed)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return newFile(path, comp, data, false), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		// cannot index this file safely as []byte on this architecture.
		return nil, ErrTooLarge
	}
	size := int(size64)
	if size == 0 {
		return newFile(path, CompNone, []byte{}, false), nil
	}

	// Prefer mmap where available for zero-copy blocks.
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		return newFile(path, CompNone, data, true), nil
	}

	// Fallback path that does not require mmap support.
	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return newFile(path, CompNone, data, false), nil
}

// FromBytes wraps an in-memory container. The caller keeps ownership of data.
func FromBytes(name string, data []byte) *File {
	return newFile(name, CompNone, data, false)
}

func newFile(path string, comp Compression, data []byte, mmapped bool) *File {
	return &File{
		Path:        path,
		Compression: comp,
		data:        data,
		mmapped:     mmapped,
		game:        xdbf.NewGameData(data),
	}
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

// Bytes returns the container bytes. They must not be used after Close.
func (f *File) Bytes() []byte {
	if f == nil {
		return nil
	}
	return f.data
}

// GameData returns the decoded view. After Close it is an invalid container.
func (f *File) GameData() *xdbf.GameData {
	if f == nil || f.game == nil {
		return xdbf.NewGameData(nil)
	}
	return f.game
}

// Mapped reports whether the bytes are an mmap of the file.
func (f *File) Mapped() bool {
	return f != nil && f.mmapped
}

// Close releases the mapping, if any.
func (f *File) Close() error {
	if f == nil || f.data == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = unix.Munmap(f.data)
	}
	f.data = nil
	f.mmapped = false
	f.game = xdbf.NewGameData(nil)
	return err
}

// Decompress expands raw according to comp, refusing output over limit.
func Decompress(comp Compression, raw []byte, limit int64) ([]byte, error) {
	switch comp {
	case CompNone:
		if int64(len(raw)) > limit {
			return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(raw))
		}
		return raw, nil
	case CompZSTD:
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(uint64(limit)))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(raw, nil)
		if err != nil {
			if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
				return nil, fmt.Errorf("%w: zstd output exceeds %d bytes", ErrTooLarge, limit)
			}
			return nil, fmt.Errorf("%w: %v", ErrCorruptZip, err)
		}
		if int64(len(out)) > limit {
			return nil, fmt.Errorf("%w: zstd output exceeds %d bytes", ErrTooLarge, limit)
		}
		return out, nil
	case CompLZ4:
		return readLimited(lz4.NewReader(bytes.NewReader(raw)), limit, "lz4")
	case CompBR:
		return readLimited(brotli.NewReader(bytes.NewReader(raw)), limit, "brotli")
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrCorruptZip, comp)
	}
}

func readLimited(r io.Reader, limit int64, name string) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptZip, name, err)
	}
	if int64(len(out)) > limit {
		return nil, fmt.Errorf("%w: %s output exceeds %d bytes", ErrTooLarge, name, limit)
	}
	return out, nil
}
