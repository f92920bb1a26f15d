package seed

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productLine = `{"likes":3,"urls":{"regular":"r","small":"s","thumb":"t"},"links":{"self":"a","html":"b"},"user":{"id":"u1","first_name":"Ada","username":"ada"},"tags":[{"title":"dogs"}]}`

// createTestSeedFile writes lines to a seed file, gzipping it when the name
// ends in .gz.
func createTestSeedFile(t *testing.T, filename string, lines []string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), filename)

	file, err := os.Create(filePath)
	require.NoError(t, err)
	defer file.Close()

	content := []byte(strings.Join(lines, "\n") + "\n")
	if strings.HasSuffix(filename, ".gz") {
		gzipWriter := gzip.NewWriter(file)
		_, err = gzipWriter.Write(content)
		require.NoError(t, err)
		require.NoError(t, gzipWriter.Close())
		return filePath
	}

	_, err = file.Write(content)
	require.NoError(t, err)
	return filePath
}

func TestFileLoader_Load(t *testing.T) {
	tests := []struct {
		name          string
		filename      string
		lines         []string
		expectedCount int
	}{
		{
			name:          "Plain NDJSON",
			filename:      "products.ndjson",
			lines:         []string{productLine, productLine},
			expectedCount: 2,
		},
		{
			name:          "Gzipped NDJSON",
			filename:      "products.ndjson.gz",
			lines:         []string{productLine, productLine, productLine},
			expectedCount: 3,
		},
		{
			name:          "Blank and malformed lines are skipped",
			filename:      "products.ndjson",
			lines:         []string{productLine, "", "   ", "{not json", productLine},
			expectedCount: 2,
		},
		{
			name:          "Empty file",
			filename:      "empty.ndjson",
			lines:         []string{},
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewFileLoader(zerolog.Nop())
			path := createTestSeedFile(t, tt.filename, tt.lines)

			products, err := loader.Load(context.Background(), path)

			require.NoError(t, err)
			assert.Len(t, products, tt.expectedCount)
			for _, p := range products {
				require.NotNil(t, p.Likes)
				assert.Equal(t, 3, *p.Likes)
				assert.True(t, p.HasTag("dogs"))
			}
		})
	}
}

func TestFileLoader_Load_MissingFile(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.ndjson"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open seed file")
}

func TestFileLoader_Load_NotGzip(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "broken.ndjson.gz")
	require.NoError(t, os.WriteFile(path, []byte(productLine), 0o644))

	_, err := loader.Load(context.Background(), path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gzip")
}

func TestFileLoader_Load_CancelledContext(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	path := createTestSeedFile(t, "products.ndjson", []string{productLine})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, path)

	assert.ErrorIs(t, err, context.Canceled)
}
