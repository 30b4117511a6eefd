package wire

import "encoding/binary"

// AppendUvarint appends v in varint form.
func AppendUvarint(dst []byte, v uint64) []byte { return binary.AppendUvarint(dst, v) }

// Reader walks a byte buffer with bounds checks. Every read reports ok=false
// once the buffer is exhausted or a value is malformed; the reader never
// panics on truncated input.
type Reader struct {
	buf []byte
	off int
}

func NewReader(b []byte) *Reader { return &Reader{buf: b} }

// Remaining reports the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

// ReadByte consumes a single byte.
func (r *Reader) ReadByte() (byte, bool) {
	if r.off >= len(r.buf) {
		return 0, false
	}
	b := r.buf[r.off]
	r.off++
	return b, true
}

// ReadUvarint consumes a varint. Truncated or over-long encodings fail.
func (r *Reader) ReadUvarint() (uint64, bool) {
	v, n := binary.Uvarint(r.buf[r.off:])
	if n <= 0 {
		return 0, false
	}
	r.off += n
	return v, true
}

// ReadBytes consumes exactly n bytes. The returned slice aliases the buffer.
func (r *Reader) ReadBytes(n int) ([]byte, bool) {
	if n < 0 || n > r.Remaining() {
		return nil, false
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, true
}
