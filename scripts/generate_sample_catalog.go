package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

type sampleProduct struct {
	Name  string  `csv:"name"`
	Price float64 `csv:"price"`
	Image string  `csv:"image"`
}

// main writes a sample seed file for CATALOG_SEED_FILES.
func main() {
	dataDir := "data/catalog"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := []sampleProduct{
		{Name: "Mug", Price: 12.5, Image: "https://images.example.com/mug.png"},
		{Name: "T-Shirt", Price: 19.99, Image: "https://images.example.com/tshirt.png"},
		{Name: "Notebook", Price: 4.75, Image: "https://images.example.com/notebook.png"},
		{Name: "Sticker Pack", Price: 2, Image: "https://images.example.com/stickers.png"},
		{Name: "Water Bottle", Price: 15, Image: "https://images.example.com/bottle.png"},
	}

	filePath := filepath.Join(dataDir, "products.csv.gz")
	if err := writeCatalogFile(filePath, products); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d products\n", filePath, len(products))
	fmt.Printf("\nSeed the server with:\n  CATALOG_SEED_FILES=%s go run ./cmd/api\n", filePath)
}

func writeCatalogFile(path string, products []sampleProduct) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	if err := gocsv.Marshal(products, gzipWriter); err != nil {
		gzipWriter.Close()
		return err
	}

	return gzipWriter.Close()
}
