package workingset

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"sync"

	digest "github.com/opencontainers/go-digest"
)

// fileEntry records one file appended to the session's file buffer: its
// name and the span of the growing buffer it occupies.
type fileEntry struct {
	filename string
	start    int
	end      int
	digest   digest.Digest
}

// fileBuffer is the working set's single, append-only, monotonically
// growing byte buffer (spec.md §3 "Span"). Every file ever read — the
// entry file plus every module/source/use target — is appended here, and
// spans are offsets into this one buffer so they remain valid for the
// session's lifetime (invariant I1) no matter how many files get added
// afterwards.
//
// Adapted from the teacher's pkg/filebuffer.FileBuffer, which tracked one
// buffer per file; here one FileBuffer backs the whole session, and the
// offsets slice lets us still answer "what line is offset N on" cheaply.
type fileBuffer struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	offsets []int // byte offset of every '\n' seen so far, in buffer order
	files   []fileEntry
}

func newFileBuffer() *fileBuffer {
	return &fileBuffer{}
}

// append writes data to the buffer and returns the span it now occupies,
// plus the content digest it records for filename (read back through
// WorkingSet.FileDigest).
func (fb *fileBuffer) append(filename string, data []byte) (start, end int, dgst digest.Digest) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	start = fb.buf.Len()
	fb.buf.Write(data)
	end = fb.buf.Len()

	base := start
	rest := data
	idx := bytes.IndexByte(rest, '\n')
	for idx >= 0 {
		fb.offsets = append(fb.offsets, base+idx)
		rest = rest[idx+1:]
		base += idx + 1
		idx = bytes.IndexByte(rest, '\n')
	}

	dgst = digest.FromBytes(data)
	fb.files = append(fb.files, fileEntry{filename: filename, start: start, end: end, digest: dgst})
	return start, end, dgst
}

func (fb *fileBuffer) bytes() []byte {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.buf.Bytes()
}

// segment returns the bytes in [start, end).
func (fb *fileBuffer) segment(start, end int) []byte {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	b := fb.buf.Bytes()
	if start < 0 {
		start = 0
	}
	if end > len(b) {
		end = len(b)
	}
	if start >= end {
		return nil
	}
	return b[start:end]
}

// filenameFor returns the filename whose appended span contains offset.
func (fb *fileBuffer) filenameFor(offset int) string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, f := range fb.files {
		if offset >= f.start && offset < f.end {
			return f.filename
		}
	}
	return "<unknown>"
}

// digestFor returns the content digest recorded when filename was most
// recently appended, or "" if it was never appended.
func (fb *fileBuffer) digestFor(filename string) (digest.Digest, bool) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for i := len(fb.files) - 1; i >= 0; i-- {
		if fb.files[i].filename == filename {
			return fb.files[i].digest, true
		}
	}
	return "", false
}

// line returns the 1-indexed line's bytes, read against the session
// buffer (used by diagnostic rendering).
func (fb *fileBuffer) line(n int) ([]byte, error) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if n < 1 {
		return nil, fmt.Errorf("line %d out of range", n)
	}
	start := 0
	if n > 1 {
		if n-2 >= len(fb.offsets) {
			return nil, io.EOF
		}
		start = fb.offsets[n-2] + 1
	}
	end := fb.buf.Len()
	if n-1 < len(fb.offsets) {
		end = fb.offsets[n-1]
	}
	b := fb.buf.Bytes()
	if start > len(b) {
		return nil, io.EOF
	}
	if end > len(b) {
		end = len(b)
	}
	return b[start:end], nil
}

// lineCol converts a byte offset into a 1-indexed (line, column) pair.
func (fb *fileBuffer) lineCol(offset int) (line, col int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	idx := sort.SearchInts(fb.offsets, offset)
	line = idx + 1
	lineStart := 0
	if idx > 0 {
		lineStart = fb.offsets[idx-1] + 1
	}
	col = offset - lineStart + 1
	return
}
