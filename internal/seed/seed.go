package seed

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"snapshop/internal/model"

	"github.com/rs/zerolog"
)

// maxLineBytes bounds a single NDJSON record.
const maxLineBytes = 1 << 20

// Loader reads a catalogue file of newline-delimited JSON products.
type Loader interface {
	// Load returns the products stored at path. Files ending in .gz are
	// decompressed first.
	Load(ctx context.Context, path string) ([]model.Product, error)
}

// decodeProducts parses one product per line. Blank lines are ignored and
// lines that are not valid JSON are logged and skipped.
func decodeProducts(ctx context.Context, r io.Reader, path string, logger zerolog.Logger) ([]model.Product, error) {
	if strings.HasSuffix(path, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", path, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var products []model.Product
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var p model.Product
		if err := json.Unmarshal(line, &p); err != nil {
			logger.Warn().Err(err).Str("file", path).Int("line", lineNo).Msg("skipping malformed product line")
			continue
		}
		products = append(products, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file %s: %w", path, err)
	}

	return products, nil
}
