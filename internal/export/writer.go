package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/annel0/roomgen/internal/scene"
)

// Indent — отступ одного уровня в выходном JSON
const Indent = "  "

// Result описывает записанный файл
type Result struct {
	Path        string
	Objects     int
	RawBytes    int64  // размер JSON до сжатия
	FileBytes   int64  // размер на диске
	Checksum    uint64 // xxhash64 от несжатого JSON
	Compression Compression
}

// Writer сериализует сцену в JSON-массив с отступом в два пробела
type Writer struct {
	compression Compression
}

// NewWriter создаёт сериализатор с заданным сжатием
func NewWriter(c Compression) *Writer {
	if c == "" {
		c = CompressionNone
	}
	return &Writer{compression: c}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Encode пишет объекты в dst (с учётом сжатия) и возвращает размер и контрольную сумму несжатого JSON
func (w *Writer) Encode(dst io.Writer, objects []scene.SceneObject) (int64, uint64, error) {
	if objects == nil {
		objects = []scene.SceneObject{}
	}

	enc, err := w.compression.wrap(dst)
	if err != nil {
		return 0, 0, err
	}

	digest := xxhash.New()
	raw := &countingWriter{w: io.MultiWriter(enc, digest)}

	encoder := json.NewEncoder(raw)
	encoder.SetIndent("", Indent)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(objects); err != nil {
		enc.Close()
		return raw.n, 0, fmt.Errorf("ошибка сериализации сцены: %w", err)
	}

	if err := enc.Close(); err != nil {
		return raw.n, 0, fmt.Errorf("ошибка завершения сжатия: %w", err)
	}
	return raw.n, digest.Sum64(), nil
}

// WriteFile создаёт или перезаписывает path. При ошибке посреди записи
// содержимое файла не определено.
func (w *Writer) WriteFile(path string, objects []scene.SceneObject) (res Result, err error) {
	file, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("не удалось создать %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("не удалось закрыть %s: %w", path, cerr)
		}
	}()

	onDisk := &countingWriter{w: file}
	buffered := bufio.NewWriter(onDisk)

	rawBytes, sum, err := w.Encode(buffered, objects)
	if err != nil {
		return Result{}, fmt.Errorf("запись %s: %w", path, err)
	}
	if err := buffered.Flush(); err != nil {
		return Result{}, fmt.Errorf("запись %s: %w", path, err)
	}

	return Result{
		Path:        path,
		Objects:     len(objects),
		RawBytes:    rawBytes,
		FileBytes:   onDisk.n,
		Checksum:    sum,
		Compression: w.compression,
	}, nil
}

// Marshal возвращает несжатый JSON в том же виде, что и WriteFile
func Marshal(objects []scene.SceneObject) ([]byte, error) {
	var buf bytes.Buffer
	if _, _, err := NewWriter(CompressionNone).Encode(&buf, objects); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
