package seed

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"snapshop/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockObjectGetter serves a fixed object body.
type mockObjectGetter struct {
	body []byte
	err  error
	key  string
}

func (m *mockObjectGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.key = aws.ToString(params.Key)
	if m.err != nil {
		return nil, m.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(m.body))}, nil
}

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) ([]model.Product, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) ([]model.Product, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, path)
	}
	return nil, errors.New("not implemented")
}

func TestS3Loader_Load(t *testing.T) {
	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	_, err := w.Write([]byte(productLine + "\n" + productLine + "\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	tests := []struct {
		name          string
		key           string
		body          []byte
		getErr        error
		expectedCount int
		expectError   bool
	}{
		{
			name:          "Plain object",
			key:           "seed/products.ndjson",
			body:          []byte(productLine + "\n"),
			expectedCount: 1,
		},
		{
			name:          "Gzipped object",
			key:           "seed/products.ndjson.gz",
			body:          gz.Bytes(),
			expectedCount: 2,
		},
		{
			name:        "GetObject fails",
			key:         "seed/products.ndjson",
			getErr:      errors.New("NoSuchKey"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockObjectGetter{body: tt.body, err: tt.getErr}
			loader := NewS3LoaderWithClient(client, "snapshop-seed", zerolog.Nop())

			products, err := loader.Load(context.Background(), tt.key)

			assert.Equal(t, tt.key, client.key)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "snapshop-seed")
				return
			}
			require.NoError(t, err)
			assert.Len(t, products, tt.expectedCount)
		})
	}
}

func TestFallbackLoader_S3Success(t *testing.T) {
	remote := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			assert.Equal(t, "seed/products.ndjson", path, "S3 key should have prefix")
			return []model.Product{{ID: "from-s3"}}, nil
		},
	}
	file := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			t.Error("file loader should not be called when S3 succeeds")
			return nil, errors.New("should not be called")
		},
	}

	loader := NewFallbackLoader(remote, file, "seed/", zerolog.Nop())
	products, err := loader.Load(context.Background(), "products.ndjson")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "from-s3", products[0].ID)
}

func TestFallbackLoader_S3FailsFallsBackToLocal(t *testing.T) {
	remote := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	file := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			assert.Equal(t, "products.ndjson", path, "local path should not have prefix")
			return []model.Product{{ID: "from-disk"}}, nil
		},
	}

	loader := NewFallbackLoader(remote, file, "seed/", zerolog.Nop())
	products, err := loader.Load(context.Background(), "products.ndjson")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "from-disk", products[0].ID)
}

func TestFallbackLoader_NoS3(t *testing.T) {
	called := false
	file := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			called = true
			return nil, nil
		},
	}

	loader := NewFallbackLoader(nil, file, "seed/", zerolog.Nop())
	_, err := loader.Load(context.Background(), "products.ndjson")

	require.NoError(t, err)
	assert.True(t, called)
}

func TestFallbackLoader_BothFail(t *testing.T) {
	failing := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			return nil, errors.New("unavailable: " + strings.ToUpper(path))
		},
	}

	loader := NewFallbackLoader(failing, failing, "seed/", zerolog.Nop())
	_, err := loader.Load(context.Background(), "products.ndjson")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "PRODUCTS.NDJSON")
}
