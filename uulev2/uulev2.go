// Package uulev2 encodes and decodes UULEv2 tokens, the variant that carries
// a coordinate pair plus request metadata. The wire body is a newline-
// separated key:value text block in fixed order; the public token is the
// literal "a+" prefix followed by the base64url form of that block.
package uulev2

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomca32/uule-converter/internal/base64url"
	"github.com/tomca32/uule-converter/latlong"
	"github.com/tomca32/uule-converter/observability"
	"github.com/tomca32/uule-converter/uuleerrors"
)

// Prefix starts every UULEv2 token.
const Prefix = "a+"

// Default role and producer values. The names come from the upstream wire
// samples; their deeper meaning is undocumented.
const (
	RoleUserSpecifiedForRequest   uint8 = 1
	ProducerLoggedInUserSpecified uint8 = 12
)

// RadiusUnspecified is the radius sentinel for "exact location".
const RadiusUnspecified int32 = -1

// Data holds the fields carried by a UULEv2 token. Lat and Long are degrees;
// the wire form stores them scaled to e7 integers, so seven fractional digits
// round-trip exactly. Timestamp is epoch microseconds.
type Data struct {
	Role       uint8   `json:"role"`
	Producer   uint8   `json:"producer"`
	Provenance int32   `json:"provenance"`
	Timestamp  int64   `json:"timestamp"`
	Lat        float64 `json:"lat"`
	Long       float64 `json:"long"`
	Radius     int32   `json:"radius"`
}

// Default returns a Data with the default role and producer, the current
// time, and an unspecified radius.
func Default() Data {
	return Data{
		Role:      RoleUserSpecifiedForRequest,
		Producer:  ProducerLoggedInUserSpecified,
		Timestamp: time.Now().UnixMicro(),
		Radius:    RadiusUnspecified,
	}
}

// WithLat returns a copy with the latitude set.
func (d Data) WithLat(lat float64) Data {
	d.Lat = lat
	return d
}

// WithLong returns a copy with the longitude set.
func (d Data) WithLong(long float64) Data {
	d.Long = long
	return d
}

// WithRadius returns a copy with the radius set.
func (d Data) WithRadius(radius int32) Data {
	d.Radius = radius
	return d
}

// String renders the intermediate text block, the exact bytes that get
// base64url-encoded. There is no trailing newline.
func (d Data) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "role:%d\n", d.Role)
	fmt.Fprintf(&b, "producer:%d\n", d.Producer)
	fmt.Fprintf(&b, "provenance:%d\n", d.Provenance)
	fmt.Fprintf(&b, "timestamp:%d\n", d.Timestamp)
	b.WriteString("latlng{\n")
	fmt.Fprintf(&b, "latitude_e7:%d\n", latlong.ToE7(d.Lat))
	fmt.Fprintf(&b, "longitude_e7:%d\n", latlong.ToE7(d.Long))
	b.WriteString("}\n")
	fmt.Fprintf(&b, "radius:%d", d.Radius)
	return b.String()
}

// Encode renders the token. Encoding never fails.
func (d Data) Encode() string {
	observability.Codec.Encode(observability.FormatV2)
	return Prefix + base64url.Encode([]byte(d.String()))
}

// Decode parses a UULEv2 token. Field order is strict: only the exact block
// layout produced by Encode is accepted, and decoding either fully succeeds
// or fails with one of the uuleerrors sentinels.
func Decode(token string) (Data, error) {
	d, err := decode(token)
	observability.Codec.Decode(observability.FormatV2, uuleerrors.CodeOf(err))
	return d, err
}

// knownKeys separates "key in the wrong place" from "key we never heard of"
// on decode.
var knownKeys = map[string]bool{
	"role":         true,
	"producer":     true,
	"provenance":   true,
	"timestamp":    true,
	"latitude_e7":  true,
	"longitude_e7": true,
	"radius":       true,
}

func decode(token string) (Data, error) {
	body, ok := strings.CutPrefix(token, Prefix)
	if !ok {
		return Data{}, fmt.Errorf("uulev2: token must start with %q: %w", Prefix, uuleerrors.ErrInvalidPrefix)
	}
	raw, err := base64url.Decode(body)
	if err != nil {
		return Data{}, fmt.Errorf("uulev2: %w", uuleerrors.ErrInvalidBase64)
	}
	if !utf8.Valid(raw) {
		return Data{}, fmt.Errorf("uulev2: body not utf-8: %w", uuleerrors.ErrMalformedField)
	}

	r := &lineReader{lines: strings.Split(string(raw), "\n")}

	role, err := r.uintField("role", 8)
	if err != nil {
		return Data{}, err
	}
	producer, err := r.uintField("producer", 8)
	if err != nil {
		return Data{}, err
	}
	provenance, err := r.intField("provenance", 32)
	if err != nil {
		return Data{}, err
	}
	timestamp, err := r.intField("timestamp", 64)
	if err != nil {
		return Data{}, err
	}
	if err := r.marker("latlng{"); err != nil {
		return Data{}, err
	}
	latE7, err := r.intField("latitude_e7", 64)
	if err != nil {
		return Data{}, err
	}
	longE7, err := r.intField("longitude_e7", 64)
	if err != nil {
		return Data{}, err
	}
	if err := r.marker("}"); err != nil {
		return Data{}, err
	}
	radius, err := r.intField("radius", 32)
	if err != nil {
		return Data{}, err
	}
	if !r.done() {
		return Data{}, fmt.Errorf("uulev2: trailing content: %w", uuleerrors.ErrStructure)
	}

	return Data{
		Role:       uint8(role),
		Producer:   uint8(producer),
		Provenance: int32(provenance),
		Timestamp:  timestamp,
		Lat:        latlong.FromE7(latE7),
		Long:       latlong.FromE7(longE7),
		Radius:     int32(radius),
	}, nil
}

// lineReader walks the decoded text block line by line, enforcing the closed
// schema as it goes.
type lineReader struct {
	lines []string
	off   int
}

func (r *lineReader) done() bool { return r.off >= len(r.lines) }

func (r *lineReader) next() (string, bool) {
	if r.done() {
		return "", false
	}
	line := r.lines[r.off]
	r.off++
	return line, true
}

// marker consumes a structural line ("latlng{" or "}") that must match
// exactly.
func (r *lineReader) marker(want string) error {
	line, ok := r.next()
	if !ok || line != want {
		return fmt.Errorf("uulev2: expected %q: %w", want, uuleerrors.ErrStructure)
	}
	return nil
}

// value consumes a key:value line for the given key.
func (r *lineReader) value(key string) (string, error) {
	line, ok := r.next()
	if !ok {
		return "", fmt.Errorf("uulev2: %s: %w", key, uuleerrors.ErrMissingField)
	}
	k, v, found := strings.Cut(line, ":")
	if !found {
		if line == "latlng{" || line == "}" {
			return "", fmt.Errorf("uulev2: %q where %q expected: %w", line, key, uuleerrors.ErrStructure)
		}
		return "", fmt.Errorf("uulev2: %s: no separator: %w", key, uuleerrors.ErrMalformedField)
	}
	if k != key {
		if knownKeys[k] {
			return "", fmt.Errorf("uulev2: %q where %q expected: %w", k, key, uuleerrors.ErrStructure)
		}
		return "", fmt.Errorf("uulev2: %q: %w", k, uuleerrors.ErrUnknownField)
	}
	return v, nil
}

func (r *lineReader) uintField(key string, bits int) (uint64, error) {
	v, err := r.value(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(v, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("uulev2: %s: %w", key, uuleerrors.ErrMalformedField)
	}
	return n, nil
}

func (r *lineReader) intField(key string, bits int) (int64, error) {
	v, err := r.value(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("uulev2: %s: %w", key, uuleerrors.ErrMalformedField)
	}
	return n, nil
}
