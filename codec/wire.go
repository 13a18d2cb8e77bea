package codec

import "encoding/binary"

// AppendU16LE appends v as a 2-byte little-endian value to dst.
func AppendU16LE(dst []byte, v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return append(dst, buf[:]...)
}

// AppendU32LE appends v as a 4-byte little-endian value to dst.
func AppendU32LE(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

// AppendU64LE appends v as an 8-byte little-endian value to dst.
func AppendU64LE(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

// Reader is a read position over a byte slice shared by every decoder that
// needs exact-width fields, CompactSize, or raw byte runs: tx parsing,
// witness-stack parsing, and script push-data decoding all go through one.
type Reader struct {
	b   []byte
	pos int
}

// NewReader wraps b for sequential decoding from offset 0.
func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

// Remaining reports how many bytes are left unread.
func (r *Reader) Remaining() int {
	if r.pos >= len(r.b) {
		return 0
	}
	return len(r.b) - r.pos
}

// Pos reports the current read offset.
func (r *Reader) Pos() int { return r.pos }

// ReadExact reads and returns the next n bytes.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, &Error{Code: ErrMalformedHex, Msg: "unexpected EOF"}
	}
	start := r.pos
	r.pos += n
	return r.b[start:r.pos], nil
}

// ReadU8 reads one byte.
func (r *Reader) ReadU8() (byte, error) {
	b, err := r.ReadExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16LE reads a 2-byte little-endian integer.
func (r *Reader) ReadU16LE() (uint16, error) {
	b, err := r.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32LE reads a 4-byte little-endian integer.
func (r *Reader) ReadU32LE() (uint32, error) {
	b, err := r.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadU64LE reads an 8-byte little-endian integer.
func (r *Reader) ReadU64LE() (uint64, error) {
	b, err := r.ReadExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadCompactSize reads one CompactSize-encoded unsigned integer.
func (r *Reader) ReadCompactSize() (uint64, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return 0, err
	}
	switch {
	case tag < 0xfd:
		return uint64(tag), nil
	case tag == 0xfd:
		v, err := r.ReadU16LE()
		return uint64(v), err
	case tag == 0xfe:
		v, err := r.ReadU32LE()
		return uint64(v), err
	default:
		return r.ReadU64LE()
	}
}
