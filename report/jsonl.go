package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/ragmark/codec"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the stream codec for JSONL artifacts.
type Compression uint8

const (
	// CompressionNone writes plain JSONL.
	CompressionNone Compression = iota
	// CompressionZstd wraps the stream in zstd. Good ratio, fast decode.
	CompressionZstd
	// CompressionLZ4 wraps the stream in lz4. Fastest, lighter ratio.
	CompressionLZ4
)

// String returns the configuration name of the compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// Ext returns the extension suffix appended to .jsonl artifacts.
func (c Compression) Ext() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCompression parses a compression name as it appears in
// configuration. The empty string means none.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

// DetectCompression infers the compression from a file extension, so
// readers need no configuration.
func DetectCompression(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// WriteJSONL writes one JSON object per record to path, wrapping the
// stream in the given compression.
func WriteJSONL(path string, records []Record, compression Compression) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w, closeCompressor, err := compressWriter(f, compression)
	if err != nil {
		return err
	}

	for _, rec := range records {
		line, err := codec.Default.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode record %q: %w", rec.ID, err)
		}
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("write %q: %w", path, err)
		}
	}

	return closeCompressor()
}

// ReadJSONL reads records back from path, detecting compression from
// the extension. Blank lines are skipped.
func ReadJSONL(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	r, closeDecompressor, err := decompressReader(f, DetectCompression(path))
	if err != nil {
		return nil, err
	}
	defer closeDecompressor()

	var records []Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var rec Record
		if err := codec.Default.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("decode %q: %w", path, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	return records, nil
}

func compressWriter(f io.Writer, c Compression) (io.Writer, func() error, error) {
	switch c {
	case CompressionNone:
		return f, func() error { return nil }, nil
	case CompressionZstd:
		zw, err := zstd.NewWriter(f)
		if err != nil {
			return nil, nil, err
		}
		return zw, zw.Close, nil
	case CompressionLZ4:
		lw := lz4.NewWriter(f)
		return lw, lw.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown compression: %v", c)
	}
}

func decompressReader(f io.Reader, c Compression) (io.Reader, func(), error) {
	switch c {
	case CompressionNone:
		return f, func() {}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	case CompressionLZ4:
		return lz4.NewReader(f), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown compression: %v", c)
	}
}
