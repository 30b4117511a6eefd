package base64url

import (
	"bytes"
	"testing"
)

func TestEncodeOmitsPadding(t *testing.T) {
	for _, in := range [][]byte{nil, {0x01}, {0x01, 0x02}, {0x01, 0x02, 0x03}} {
		got := Encode(in)
		for _, c := range got {
			if c == '=' {
				t.Fatalf("Encode(%v) = %q contains padding", in, got)
			}
			if c == '+' || c == '/' {
				t.Fatalf("Encode(%v) = %q uses the standard alphabet", in, got)
			}
		}
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	in := []byte{0xfb, 0xff, 0x00, 0x7e, 0x3f}
	got, err := Decode(Encode(in))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(got, in) {
		t.Fatalf("round trip mismatch: got %v want %v", got, in)
	}
}

func TestDecodeAcceptsPaddedInput(t *testing.T) {
	// "ag" and "ag==" both decode to 'j'.
	unpadded, err := Decode("ag")
	if err != nil {
		t.Fatalf("unpadded decode failed: %v", err)
	}
	padded, err := Decode("ag==")
	if err != nil {
		t.Fatalf("padded decode failed: %v", err)
	}
	if !bytes.Equal(unpadded, padded) {
		t.Fatalf("padded/unpadded mismatch: %v vs %v", padded, unpadded)
	}
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	for _, in := range []string{"a", "ab cd", "a+b/", "====", "ab=c"} {
		if _, err := Decode(in); err == nil {
			t.Fatalf("Decode(%q) succeeded, want error", in)
		}
	}
}
