// Package uulev1 encodes and decodes UULEv1 tokens, the variant that carries
// a canonical place name ("Queens County,New York,United States"). The wire
// body is a closed, fixed-order tagged byte sequence; the public token is the
// literal "w+" prefix followed by the base64url form of that body.
package uulev1

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/tomca32/uule-converter/internal/base64url"
	"github.com/tomca32/uule-converter/internal/wire"
	"github.com/tomca32/uule-converter/observability"
	"github.com/tomca32/uule-converter/uuleerrors"
)

// Prefix starts every UULEv1 token.
const Prefix = "w+"

// Default role and producer values observed in tokens emitted by location
// pickers; their precise meaning is undocumented upstream.
const (
	DefaultRole     uint8 = 2
	DefaultProducer uint8 = 32
)

// Wire tags, in the order they must appear.
const (
	tagRole     = 0x08
	tagProducer = 0x10
	tagName     = 0x22
)

// Data holds the fields carried by a UULEv1 token. Role and Producer occupy
// a single wire byte each, so uint8 is the full representable range.
type Data struct {
	Role          uint8  `json:"role"`
	Producer      uint8  `json:"producer"`
	CanonicalName string `json:"canonical_name"`
}

// New returns a Data for the given canonical place name with the default
// role and producer.
func New(canonicalName string) Data {
	return Data{Role: DefaultRole, Producer: DefaultProducer, CanonicalName: canonicalName}
}

// Encode renders the token. Encoding never fails: every Data value has a
// wire form.
func (d Data) Encode() string {
	name := []byte(d.CanonicalName)
	buf := make([]byte, 0, 8+len(name))
	buf = append(buf, tagRole)
	buf = wire.AppendUvarint(buf, uint64(d.Role))
	buf = append(buf, tagProducer)
	buf = wire.AppendUvarint(buf, uint64(d.Producer))
	buf = append(buf, tagName)
	buf = wire.AppendUvarint(buf, uint64(len(name)))
	buf = append(buf, name...)
	observability.Codec.Encode(observability.FormatV1)
	return Prefix + base64url.Encode(buf)
}

// Decode parses a UULEv1 token. It either reconstructs the exact Data that
// produced the token or fails with one of the uuleerrors sentinels; no
// partial result is ever returned.
func Decode(token string) (Data, error) {
	d, err := decode(token)
	observability.Codec.Decode(observability.FormatV1, uuleerrors.CodeOf(err))
	return d, err
}

func decode(token string) (Data, error) {
	body, ok := strings.CutPrefix(token, Prefix)
	if !ok {
		return Data{}, fmt.Errorf("uulev1: token must start with %q: %w", Prefix, uuleerrors.ErrInvalidPrefix)
	}
	buf, err := base64url.Decode(body)
	if err != nil {
		return Data{}, fmt.Errorf("uulev1: %w", uuleerrors.ErrInvalidBase64)
	}

	r := wire.NewReader(buf)
	role, err := readByteField(r, tagRole, "role")
	if err != nil {
		return Data{}, err
	}
	producer, err := readByteField(r, tagProducer, "producer")
	if err != nil {
		return Data{}, err
	}

	if tag, ok := r.ReadByte(); !ok || tag != tagName {
		return Data{}, malformed("canonical_name tag")
	}
	length, ok := r.ReadUvarint()
	if !ok || length > uint64(r.Remaining()) {
		return Data{}, malformed("canonical_name length")
	}
	name, ok := r.ReadBytes(int(length))
	if !ok {
		return Data{}, malformed("canonical_name")
	}
	if r.Remaining() != 0 {
		return Data{}, malformed("trailing bytes")
	}
	if !utf8.Valid(name) {
		return Data{}, malformed("canonical_name utf-8")
	}

	return Data{Role: role, Producer: producer, CanonicalName: string(name)}, nil
}

func readByteField(r *wire.Reader, tag byte, field string) (uint8, error) {
	got, ok := r.ReadByte()
	if !ok || got != tag {
		return 0, malformed(field + " tag")
	}
	v, ok := r.ReadUvarint()
	if !ok {
		return 0, malformed(field)
	}
	if v > math.MaxUint8 {
		return 0, fmt.Errorf("uulev1: %s out of range: %w", field, uuleerrors.ErrMalformedField)
	}
	return uint8(v), nil
}

func malformed(field string) error {
	return fmt.Errorf("uulev1: %s: %w", field, uuleerrors.ErrMalformedField)
}
