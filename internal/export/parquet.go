// Package export writes arena results to Parquet for offline analysis.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// ResultRow is one arena game. Solo runs leave Opponent, Winner and the
// per-side counts empty.
type ResultRow struct {
	BatchID     string `parquet:"batch_id,dict"`
	Mode        string `parquet:"mode,dict"` // "solo" or "match"
	BoardSize   int32  `parquet:"board_size"`
	Strategy    string `parquet:"strategy,dict"`
	Opponent    string `parquet:"opponent,dict"`
	Seed        int64  `parquet:"seed"`
	Moves       int32  `parquet:"moves"`
	Sunk        bool   `parquet:"sunk"`
	Winner      string `parquet:"winner,dict"`
	Aborted     bool   `parquet:"aborted"`
	PlayerMoves int32  `parquet:"player_moves"`
	AIMoves     int32  `parquet:"ai_moves"`
}

// ResultWriter streams rows into outDir/tmp and moves the finished file
// into outDir on Finalize.
type ResultWriter struct {
	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[ResultRow]

	rows int
}

func NewResultWriter(outDir string) (*ResultWriter, error) {
	if outDir == "" {
		return nil, fmt.Errorf("outDir is required")
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		absOut = outDir
	}
	tmpDir := filepath.Join(absOut, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("results_%d.parquet", time.Now().UnixNano())
	tmpPath := filepath.Join(tmpDir, name)

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tmp parquet: %w", err)
	}

	w := parquet.NewGenericWriter[ResultRow](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", "result_row_v1")

	return &ResultWriter{
		tmpPath: tmpPath,
		outPath: filepath.Join(absOut, name),
		file:    f,
		writer:  w,
	}, nil
}

func (w *ResultWriter) OutPath() string { return w.outPath }
func (w *ResultWriter) Rows() int       { return w.rows }

func (w *ResultWriter) Write(rows ...ResultRow) error {
	if w.writer == nil {
		return fmt.Errorf("result writer is closed")
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := w.writer.Write(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	w.rows += len(rows)
	return nil
}

// Finalize closes the file and renames it into place. With no rows the
// temp file is removed and the returned path is empty.
func (w *ResultWriter) Finalize() (string, error) {
	if w.writer == nil {
		return "", nil
	}

	closeErr := w.writer.Close()
	w.writer = nil
	_ = w.file.Sync()
	fileErr := w.file.Close()
	w.file = nil
	if closeErr != nil {
		return "", fmt.Errorf("close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		return "", fmt.Errorf("close parquet file: %w", fileErr)
	}

	if w.rows == 0 {
		_ = os.Remove(w.tmpPath)
		return "", nil
	}
	if err := os.Rename(w.tmpPath, w.outPath); err != nil {
		return "", fmt.Errorf("rename parquet: %w", err)
	}
	return w.outPath, nil
}
