package utils

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// Fingerprinter produces stable content fingerprints for deduplication.
// Parts are lowercased, whitespace-collapsed and joined with a unit
// separator so ("ab", "c") and ("a", "bc") never collide.
type Fingerprinter struct{}

// NewFingerprinter creates a new fingerprinter instance
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{}
}

// Fingerprint returns the hex MD5 of the normalized parts. No parts, or
// only empty parts, yield an empty string.
func (f *Fingerprinter) Fingerprint(parts ...string) string {
	normalized := make([]string, len(parts))
	empty := true
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.Join(strings.Fields(p), " "))
		if normalized[i] != "" {
			empty = false
		}
	}
	if empty {
		return ""
	}

	hash := md5.Sum([]byte(strings.Join(normalized, "\x1f")))
	return fmt.Sprintf("%x", hash)
}

// Short returns the first 8 characters of the fingerprint, for logs.
func (f *Fingerprinter) Short(parts ...string) string {
	full := f.Fingerprint(parts...)
	if len(full) >= 8 {
		return full[:8]
	}
	return full
}

var globalFingerprinter = NewFingerprinter()

// Fingerprint is a convenience function that uses the global fingerprinter
func Fingerprint(parts ...string) string {
	return globalFingerprinter.Fingerprint(parts...)
}

// ShortFingerprint is a convenience function that uses the global fingerprinter
func ShortFingerprint(parts ...string) string {
	return globalFingerprinter.Short(parts...)
}
