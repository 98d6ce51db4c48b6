package s3

import (
	"io"
	"strings"
	"testing"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "abc123/file-1", want: "abc123/file-1"},
		{name: "simple prefix", prefix: "root", key: "abc123/file-1", want: "root/abc123/file-1"},
		{name: "prefix trailing slash", prefix: "root/", key: "abc123/file-1", want: "root/abc123/file-1"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/abc123/file-1", want: "root/abc123/file-1"},
		{name: "nested prefix", prefix: "root/sub", key: "abc123/file-1", want: "root/sub/abc123/file-1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(normalizePrefix(tt.prefix), tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestCountingReaderTracksBytes(t *testing.T) {
	t.Parallel()

	counter := &countingReader{r: strings.NewReader("hello world")}
	data, err := io.ReadAll(counter)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello world" {
		t.Fatalf("unexpected data: %q", data)
	}
	if counter.n != 11 {
		t.Fatalf("expected 11 bytes counted, got %d", counter.n)
	}
}
