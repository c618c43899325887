package export

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/roomgen/internal/scene"
)

func buildScene(t *testing.T, count int) []scene.SceneObject {
	t.Helper()
	g, err := scene.NewGenerator(scene.DefaultCatalog(), scene.Options{Jitter: scene.DefaultJitter, Seed: 2024})
	require.NoError(t, err)
	objects, err := scene.Build(g, count)
	require.NoError(t, err)
	return objects
}

func TestParseCompression(t *testing.T) {
	for in, want := range map[string]Compression{
		"":      CompressionNone,
		"none":  CompressionNone,
		"GZIP":  CompressionGzip,
		" zstd": CompressionZstd,
	} {
		got, err := ParseCompression(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCompression("brotli")
	assert.Error(t, err)

	assert.Equal(t, ".gz", CompressionGzip.Extension())
	assert.Equal(t, ".zst", CompressionZstd.Extension())
	assert.Equal(t, "", CompressionNone.Extension())
}

func TestCompression_OutputPath(t *testing.T) {
	assert.Equal(t, "room.json", CompressionNone.OutputPath("room.json"))
	assert.Equal(t, "room.json.gz", CompressionGzip.OutputPath("room.json"))
	assert.Equal(t, "room.json.gz", CompressionGzip.OutputPath("room.json.gz"))
	assert.Equal(t, "room.json.zst", CompressionZstd.OutputPath("room.json"))
}

func TestWriteFile_PlainIndentedArray(t *testing.T) {
	objects := buildScene(t, 1000)
	path := filepath.Join(t.TempDir(), "huge_room_data.json")

	res, err := NewWriter(CompressionNone).WriteFile(path, objects)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, res.Path)
	assert.Equal(t, 1006, res.Objects)
	assert.Equal(t, int64(len(data)), res.FileBytes)
	assert.Equal(t, res.RawBytes, res.FileBytes)
	assert.Equal(t, xxhash.Sum64(data), res.Checksum)

	assert.True(t, strings.HasPrefix(string(data), "[\n  {\n    \"type\": \"box\",\n    \"width\": 30,\n"),
		"ожидался массив с отступом в два пробела")

	var decoded []scene.SceneObject
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, objects, decoded)

	// Схема каждого объекта сохраняется и в нетипизированном виде
	var generic []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &generic))
	require.Len(t, generic, 1006)
	for _, obj := range generic {
		assert.Contains(t, obj, "type")
		assert.Contains(t, obj, "position")
		assert.Contains(t, obj, "rotation")
		if obj["type"] == "box" {
			assert.Len(t, obj, 7)
		} else {
			assert.Len(t, obj, 5)
			assert.Equal(t, false, obj["selected"])
			assert.Equal(t, map[string]interface{}{"size": 1.0}, obj["properties"])
		}
	}
}

func TestWriteFile_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 1<<16)), 0644))

	res, err := NewWriter("").WriteFile(path, scene.Fixtures())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, res.FileBytes, info.Size())
	assert.Equal(t, 6, res.Objects)
}

func TestWriteFile_Compressed(t *testing.T) {
	objects := buildScene(t, 200)
	plain, err := Marshal(objects)
	require.NoError(t, err)

	cases := []struct {
		compression Compression
		open        func(io.Reader) (io.Reader, error)
	}{
		{CompressionGzip, func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) }},
		{CompressionZstd, func(r io.Reader) (io.Reader, error) { return zstd.NewReader(r) }},
	}

	for _, tc := range cases {
		t.Run(string(tc.compression), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "room.json"+tc.compression.Extension())
			res, err := NewWriter(tc.compression).WriteFile(path, objects)
			require.NoError(t, err)

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()

			r, err := tc.open(f)
			require.NoError(t, err)
			data, err := io.ReadAll(r)
			require.NoError(t, err)

			assert.Equal(t, plain, data)
			assert.Equal(t, xxhash.Sum64(plain), res.Checksum)
			assert.Equal(t, int64(len(plain)), res.RawBytes)
			assert.Less(t, res.FileBytes, res.RawBytes)
			assert.Equal(t, tc.compression, res.Compression)
		})
	}
}

func TestWriteFile_EmptyScene(t *testing.T) {
	data, err := Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteFile_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "room.json")
	_, err := NewWriter(CompressionNone).WriteFile(path, scene.Fixtures())
	assert.Error(t, err)
}
