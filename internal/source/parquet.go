package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/segmentio/parquet-go"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

// parquetReader reads parquet rows as records.
//
// It holds both the OS file handle and the parquet handle so that Close
// releases the file.
type parquetReader struct {
	file *os.File
	rows *parquet.Reader
}

func openParquet(path string) (*parquetReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &parquetReader{file: file, rows: parquet.NewReader(pqFile)}, nil
}

func (r *parquetReader) Next() (record.Record, error) {
	row := make(map[string]any)
	if err := r.rows.Read(&row); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	// Byte arrays without a string annotation come back as []byte.
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
	return record.Normalize(record.Record(row)), nil
}

func (r *parquetReader) Close() error {
	err := r.rows.Close()
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	return err
}
