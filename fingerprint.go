package main

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
)

// Fingerprint returns a hash identifying the geometry of a list of
// cables. Reconstructing the same file with the same configuration
// always yields the same fingerprint.
func Fingerprint(cables []*Cable) string {
	h := sha256.New()

	enc := gob.NewEncoder(h)
	for _, c := range cables {
		if err := enc.Encode(c); err != nil {
			panic("error encoding cable: " + err.Error())
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
