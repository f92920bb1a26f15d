package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"snapshop/internal/model"
)

// generateSampleProducts writes a small catalogue for SEED_FILE, both as
// plain NDJSON and gzipped:
//
//	data/products.ndjson
//	data/products.ndjson.gz
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := sampleProducts()

	plain := filepath.Join(dataDir, "products.ndjson")
	if err := writeFile(plain, products, false); err != nil {
		log.Fatalf("Failed to create %s: %v", plain, err)
	}
	fmt.Printf("Created %s with %d products\n", plain, len(products))

	gzipped := plain + ".gz"
	if err := writeFile(gzipped, products, true); err != nil {
		log.Fatalf("Failed to create %s: %v", gzipped, err)
	}
	fmt.Printf("Created %s with %d products\n", gzipped, len(products))
}

func sampleProducts() []model.Product {
	subjects := []struct {
		description string
		tags        []string
	}{
		{"golden retriever on a beach", []string{"dogs", "beach", "summer"}},
		{"city skyline at night", []string{"city", "night"}},
		{"misty pine forest", []string{"forest", "nature"}},
		{"espresso on a marble table", []string{"coffee", "food"}},
		{"puppy asleep on a sofa", []string{"dogs", "home"}},
		{"snowy mountain ridge", []string{"mountains", "winter", "nature"}},
		{"red door in an old town", []string{"architecture", "city"}},
		{"surfer riding a wave", []string{"beach", "sport", "summer"}},
	}

	products := make([]model.Product, 0, len(subjects))
	for i, s := range subjects {
		likes := (i * 37) % 100
		description := s.description
		photoID := fmt.Sprintf("photo-%03d", i+1)

		p := model.Product{
			Description: &description,
			Likes:       &likes,
			URLs: model.ProductURLs{
				Regular: fmt.Sprintf("https://images.example.com/%s?w=1080", photoID),
				Small:   fmt.Sprintf("https://images.example.com/%s?w=400", photoID),
				Thumb:   fmt.Sprintf("https://images.example.com/%s?w=200", photoID),
			},
			Links: model.ProductLinks{
				Self: "https://api.example.com/photos/" + photoID,
				HTML: "https://example.com/photos/" + photoID,
			},
			User: model.ProductUser{
				ID:        fmt.Sprintf("user-%d", i%3+1),
				FirstName: []string{"Ada", "Grace", "Linus"}[i%3],
				Username:  []string{"ada", "grace", "linus"}[i%3],
			},
		}
		for _, tag := range s.tags {
			p.Tags = append(p.Tags, model.Tag{Title: tag})
		}
		products = append(products, p)
	}
	return products
}

func writeFile(filePath string, products []model.Product, compress bool) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	var w io.Writer = file
	if compress {
		gzipWriter := gzip.NewWriter(file)
		defer gzipWriter.Close()
		w = gzipWriter
	}

	enc := json.NewEncoder(w)
	for _, p := range products {
		if err := enc.Encode(p); err != nil {
			return err
		}
	}
	return nil
}
