package codec

// AppendCompactSize encodes n in Bitcoin's CompactSize varint form and
// appends it to dst: one byte for n <= 0xFC, else a 0xFD/0xFE/0xFF prefix
// followed by the minimal little-endian width that holds n.
func AppendCompactSize(dst []byte, n uint64) []byte {
	switch {
	case n <= 0xfc:
		return append(dst, byte(n))
	case n <= 0xffff:
		dst = append(dst, 0xfd)
		return AppendU16LE(dst, uint16(n))
	case n <= 0xffffffff:
		dst = append(dst, 0xfe)
		return AppendU32LE(dst, uint32(n))
	default:
		dst = append(dst, 0xff)
		return AppendU64LE(dst, n)
	}
}

// CompactSize encodes n as a standalone CompactSize byte slice.
func CompactSize(n uint64) []byte {
	return AppendCompactSize(nil, n)
}

// DecodeCompactSize decodes one CompactSize value from the front of buf and
// reports the number of bytes consumed.
func DecodeCompactSize(buf []byte) (uint64, int, error) {
	r := NewReader(buf)
	v, err := r.ReadCompactSize()
	if err != nil {
		return 0, 0, err
	}
	return v, r.Pos(), nil
}
