package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

// maxLineSize bounds a single JSON Lines record.
const maxLineSize = 64 * 1024 * 1024

type lineReader struct {
	src     io.Reader
	scanner *bufio.Scanner
	line    int
}

func newLineReader(r io.Reader) *lineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineReader{src: r, scanner: scanner}
}

func (r *lineReader) Next() (record.Record, error) {
	for r.scanner.Scan() {
		r.line++
		data := bytes.TrimSpace(r.scanner.Bytes())
		if len(data) == 0 {
			continue
		}

		rec, err := record.Unmarshal(data)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.line, err)
		}
		return rec, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", r.line+1, err)
	}
	return nil, io.EOF
}

func (r *lineReader) Close() error { return closeIfCloser(r.src) }
