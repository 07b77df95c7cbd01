package gedcom

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest returns the hex-encoded BLAKE3-256 hash of the serialized file,
// as written by WriteTo. Like WriteTo it adds a missing header or trailer
// first. Two files with the same canonical text have the same digest.
func (f *File) Digest() (string, error) {
	h := blake3.New()
	if _, err := f.WriteTo(h); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
