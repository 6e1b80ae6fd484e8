//go:build ignore

// Package main generates a synthetic feedback response for benchmarking and
// for pointing feedlens at a local endpoint.
// Usage: go run scripts/generate-feedback.go -items 20000 -output testdata/bench/apidemo.json
//
// Serve the result with any static file server, then:
//
//	feedlens --endpoint http://localhost:8000/apidemo.json list
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	numItems   = flag.Int("items", 1000, "Number of feedback items to generate")
	outputFile = flag.String("output", "testdata/bench/apidemo.json", "Output file")
	seed       = flag.Int64("seed", 42, "Random seed for reproducibility")
)

// Word pools for comments. Mixed case and punctuation keep the fuzzy search
// honest about case folding and skipped characters.
var (
	subjects = []string{
		"The checkout button", "Search", "The login form", "This page", "Navigation",
		"The new design", "Payment", "The mobile menu", "Image upload", "The newsletter popup",
	}
	verdicts = []string{
		"doesn't work", "is really slow", "looks great", "is confusing", "crashed twice",
		"is much better now", "keeps logging me out", "is hard to find", "works fine", "is broken on Safari",
	}
	extras = []string{
		"", "", "!", " :(", " - please fix", ", thanks!", "... again", " since yesterday",
	}
	browsers = []struct{ name, version, platform, device string }{
		{"Chrome", "32.0", "MacOSX", "Desktop"},
		{"Firefox", "26.0", "Linux", "Desktop"},
		{"Safari", "7.0", "iOS", "iPhone"},
		{"IE", "10.0", "WinNT", "Desktop"},
		{"Chrome", "31.0", "Android", "Nexus 5"},
	}
	places = []struct {
		country, city string
		lat, lon      float64
	}{
		{"NL", "Amsterdam", 52.35, 4.9167},
		{"DE", "Berlin", 52.5167, 13.4},
		{"US", "San Francisco", 37.7749, -122.4194},
		{"JP", "Tokyo", 35.685, 139.7514},
		{"BR", "Sao Paulo", -23.5475, -46.6361},
	}
)

type item struct {
	ID              string         `json:"id"`
	Rating          int            `json:"rating"`
	Comment         string         `json:"comment"`
	ComputedBrowser map[string]any `json:"computed_browser"`
	CreationDate    int64          `json:"creation_date"`
	Email           string         `json:"email"`
	URL             string         `json:"url"`
	Viewport        map[string]int `json:"viewport"`
	Screen          map[string]int `json:"screen"`
	Geo             map[string]any `json:"geo"`
}

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(filepath.Dir(*outputFile), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating %d feedback items in %s...\n", *numItems, *outputFile)

	start := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	items := make([]item, *numItems)
	for i := range items {
		items[i] = generateItem(rng, i, start)
	}

	f, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(map[string]any{"items": items}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *outputFile, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d items successfully.\n", len(items))
}

func pick[T any](rng *rand.Rand, pool []T) T {
	return pool[rng.Intn(len(pool))]
}

func generateItem(rng *rand.Rand, index int, start int64) item {
	b := pick(rng, browsers)
	p := pick(rng, places)

	comment := pick(rng, subjects) + " " + pick(rng, verdicts) + pick(rng, extras)
	if rng.Intn(20) == 0 {
		comment = ""
	}

	screenW := pick(rng, []int{1280, 1440, 1920, 375, 414})
	screenH := screenW * 10 / 16
	if b.device != "Desktop" {
		screenH = screenW * 16 / 9
	}
	vpW := screenW - rng.Intn(screenW/4+1)
	vpH := screenH - rng.Intn(screenH/4+1)

	return item{
		ID:      fmt.Sprintf("%08x%04d", rng.Uint32(), index%10000),
		Rating:  1 + rng.Intn(5),
		Comment: comment,
		ComputedBrowser: map[string]any{
			"Browser":  b.name,
			"Version":  b.version,
			"Platform": b.platform,
			"Device":   b.device,
		},
		CreationDate: start + rng.Int63n(365*24*3600),
		Email:        fmt.Sprintf("user%d@example.com", index),
		URL:          "https://shop.example.com/" + strings.ToLower(strings.ReplaceAll(pick(rng, subjects), " ", "-")),
		Viewport:     map[string]int{"width": vpW, "height": vpH},
		Screen: map[string]int{
			"availTop":    0,
			"availLeft":   0,
			"availWidth":  screenW,
			"availHeight": screenH,
		},
		Geo: map[string]any{
			"country": p.country,
			"city":    p.city,
			"lat":     p.lat,
			"lon":     p.lon,
		},
	}
}
