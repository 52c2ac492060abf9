package storage

import "encoding/base64"

// Obfuscator applies XOR-with-key plus base64. This is a placeholder to
// keep the blob from being casually readable; it is not encryption and
// must never be treated as such.
type Obfuscator struct {
	key []byte
}

// NewObfuscator builds an obfuscator. An empty key means pass-through.
func NewObfuscator(key string) *Obfuscator {
	return &Obfuscator{key: []byte(key)}
}

// Encode obfuscates raw bytes for storage.
func (o *Obfuscator) Encode(raw []byte) []byte {
	if len(o.key) == 0 {
		return raw
	}
	mixed := o.xor(raw)
	out := make([]byte, base64.StdEncoding.EncodedLen(len(mixed)))
	base64.StdEncoding.Encode(out, mixed)
	return out
}

// Decode reverses Encode.
func (o *Obfuscator) Decode(payload []byte) ([]byte, error) {
	if len(o.key) == 0 {
		return payload, nil
	}
	mixed := make([]byte, base64.StdEncoding.DecodedLen(len(payload)))
	n, err := base64.StdEncoding.Decode(mixed, payload)
	if err != nil {
		return nil, err
	}
	return o.xor(mixed[:n]), nil
}

func (o *Obfuscator) xor(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ o.key[i%len(o.key)]
	}
	return out
}
