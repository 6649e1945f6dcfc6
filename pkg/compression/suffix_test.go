package compression

import (
	"io"
	"path/filepath"
	"testing"
)

func TestDetectAlgorithm(t *testing.T) {
	tests := []struct {
		path string
		want Algorithm
	}{
		{"records.json.gz", Gzip},
		{"records.json.gzip", Gzip},
		{"collection.txt.zst", Zstd},
		{"collection.txt.zstd", Zstd},
		{"data.lz4", LZ4},
		{"data.s2", S2},
		{"p-026-MG-12-xs", None},
		{"records.json", None},
	}
	for _, tt := range tests {
		if got := DetectAlgorithm(tt.path); got != tt.want {
			t.Errorf("DetectAlgorithm(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestTrimSuffix(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"records.json.gz", "records.json"},
		{"collection.txt.zst", "collection.txt"},
		{"records.json", "records.json"},
		{"reactionlist.gz", "reactionlist"},
	}
	for _, tt := range tests {
		if got := TrimSuffix(tt.path); got != tt.want {
			t.Errorf("TrimSuffix(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestReaderWriterRoundTrip(t *testing.T) {
	payload := []byte("# Target Z    :   12\n# Quantity    : Cross section\n" +
		"repetitive content content content content for the ratio\n")

	for _, name := range []string{"data.txt", "data.txt.gz", "data.txt.zst", "data.txt.lz4", "data.txt.s2"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			wc, err := CreateWriter(path)
			if err != nil {
				t.Fatalf("CreateWriter: %v", err)
			}
			if _, err := wc.Write(payload); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if err := wc.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			rc, err := OpenReader(path)
			if err != nil {
				t.Fatalf("OpenReader: %v", err)
			}
			got, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if err := rc.Close(); err != nil {
				t.Fatalf("close reader: %v", err)
			}
			if string(got) != string(payload) {
				t.Errorf("round trip mismatch: got %q", string(got))
			}
		})
	}
}

func TestOpenReaderMissingFile(t *testing.T) {
	if _, err := OpenReader(filepath.Join(t.TempDir(), "absent.gz")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
