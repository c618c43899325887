package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression задаёт кодирование выходного файла
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// ParseCompression разбирает имя кодирования; пустая строка означает без сжатия
func ParseCompression(s string) (Compression, error) {
	switch Compression(strings.ToLower(strings.TrimSpace(s))) {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionGzip:
		return CompressionGzip, nil
	case CompressionZstd:
		return CompressionZstd, nil
	default:
		return "", fmt.Errorf("unknown compression %q (expected none, gzip or zstd)", s)
	}
}

// Extension возвращает суффикс, который принято добавлять к имени файла
func (c Compression) Extension() string {
	switch c {
	case CompressionGzip:
		return ".gz"
	case CompressionZstd:
		return ".zst"
	default:
		return ""
	}
}

// OutputPath добавляет к path суффикс сжатия, если его там ещё нет,
// чтобы сжатый поток не оказался в файле с именем *.json
func (c Compression) OutputPath(path string) string {
	ext := c.Extension()
	if ext == "" || strings.HasSuffix(path, ext) {
		return path
	}
	return path + ext
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// wrap оборачивает w в кодировщик. Close кодировщика не закрывает w.
func (c Compression) wrap(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case CompressionNone, "":
		return nopWriteCloser{w}, nil
	case CompressionGzip:
		return gzip.NewWriterLevel(w, gzip.DefaultCompression)
	case CompressionZstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	default:
		return nil, fmt.Errorf("unknown compression %q", string(c))
	}
}
