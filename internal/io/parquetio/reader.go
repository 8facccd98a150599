package parquetio

import (
	"errors"
	"io"
	"os"

	"github.com/segmentio/parquet-go"
)

// File holds a fully read parquet file: rows in file order plus the
// column names from the file schema. The whole file is loaded into
// memory, which matches how exports are produced.
type File struct {
	columns []string
	rows    []map[string]any
}

// Read loads all rows of a parquet file. Values decode to the Go
// scalars of their parquet types; a null column is a missing key.
func Read(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, ReadError(path, err)
	}
	pq, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, ReadError(path, err)
	}

	var columns []string
	for _, field := range pq.Schema().Fields() {
		columns = append(columns, field.Name())
	}

	reader := parquet.NewReader(pq)
	defer func() { _ = reader.Close() }()

	var rows []map[string]any
	for {
		row := make(map[string]any)
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, ReadError(path, err)
		}
		for name, v := range row {
			if v == nil {
				delete(row, name)
			}
		}
		rows = append(rows, row)
	}

	return &File{columns: columns, rows: rows}, nil
}

// Columns returns the column names in file schema order.
func (f *File) Columns() []string {
	return f.columns
}

// Rows returns the rows in file order.
func (f *File) Rows() []map[string]any {
	return f.rows
}
