// Package obfuscate implements the reversible byte transform applied to
// secret values before they are embedded in generated source.
//
// The transform XORs the UTF-8 bytes of a value against a keystream
// drawn from math/rand's seeded generator, one byte per position. The
// same stream is regenerated from the stored seed by the decode helper
// emitted into the generated package, so encode and decode must never
// use different generators. This hides values from casual inspection of
// compiled artifacts; it is not a cryptographic mechanism.
package obfuscate

import (
	"math/rand"
)

// Payload is the encoded form of one value: the seed that pins the
// keystream plus the ciphertext bytes.
type Payload struct {
	Seed   int64
	Cipher []byte
}

// Keystream produces n pseudo-random bytes from the seeded generator.
// It is a pure function of (seed, n).
func Keystream(seed int64, n int) []byte {
	r := rand.New(rand.NewSource(seed))
	ks := make([]byte, n)
	for i := range ks {
		ks[i] = byte(r.Intn(256))
	}
	return ks
}

// Encode obfuscates text under the given seed. Identical (text, seed)
// inputs yield byte-identical ciphertext.
func Encode(text string, seed int64) Payload {
	data := []byte(text)
	ks := Keystream(seed, len(data))
	cipher := make([]byte, len(data))
	for i, b := range data {
		cipher[i] = b ^ ks[i]
	}
	return Payload{Seed: seed, Cipher: cipher}
}

// Decode is the exact inverse of Encode.
func Decode(p Payload) string {
	ks := Keystream(p.Seed, len(p.Cipher))
	data := make([]byte, len(p.Cipher))
	for i, b := range p.Cipher {
		data[i] = b ^ ks[i]
	}
	return string(data)
}

// NewSeed picks a seed for fields that don't pin one. The choice is
// not stable across runs; the seed is emitted next to the ciphertext,
// so decoding stays self-contained either way.
func NewSeed() int64 {
	return rand.Int63()
}
