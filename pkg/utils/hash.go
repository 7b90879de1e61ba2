package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// SumSHA256 returns the SHA-256 checksum of the provided data.
func SumSHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ChecksumHex returns the hex-encoded SHA-256 of s.
func ChecksumHex(s string) string {
	sum := SumSHA256([]byte(s))
	return hex.EncodeToString(sum[:])
}
