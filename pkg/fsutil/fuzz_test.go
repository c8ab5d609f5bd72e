package fsutil_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdxor/pkg/fsutil"
)

func FuzzWriteAtomicReadSource(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("hello"))
	f.Add([]byte("# Title\n\n<Note>{x}</Note>\n"))
	f.Add([]byte("line with trailing space  \n"))
	f.Add([]byte("\x00\x01\x02\x03"))
	f.Add(make([]byte, 1024))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "doc.md")

		if err := fsutil.WriteAtomic(t.Context(), path, content, 0o644); err != nil {
			t.Fatalf("WriteAtomic failed: %v", err)
		}

		got, err := fsutil.ReadSource(t.Context(), path, 0)
		if err != nil {
			t.Fatalf("ReadSource failed: %v", err)
		}

		if !bytes.Equal(got, content) {
			t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(content))
		}
	})
}
