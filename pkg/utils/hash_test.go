package utils

import "testing"

func TestChecksumHex(t *testing.T) {
	got := ChecksumHex("")
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if ChecksumHex("Launch Friday.") == ChecksumHex("Launch Monday.") {
		t.Fatal("expected different checksums for different text")
	}
}
