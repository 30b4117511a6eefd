package base64url

import (
	"encoding/base64"
)

// Encode encodes bytes as base64url without padding.
func Encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode decodes base64url. UULE tokens omit padding, but inputs carrying
// trailing '=' are accepted as well.
func Decode(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err == nil {
		return b, nil
	}
	if len(s)%4 == 0 {
		if b, perr := base64.URLEncoding.DecodeString(s); perr == nil {
			return b, nil
		}
	}
	return nil, err
}
