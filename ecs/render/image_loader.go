package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/catcollector/assets"
)

// LoadImage resolves a sprite key to an image, loading key.png from the
// embedded assets or the assets directory on disk and caching the result.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("empty image key")
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	img, err := loadImageFromAssetsOrFS(key + ".png")
	if err != nil {
		return nil, err
	}
	RegisterImage(key, img)
	return img, nil
}

// Preload loads every key up front. Keys that fail get a flat placeholder
// in fallback so drawing never has to check.
func Preload(fallback color.Color, keys ...string) {
	for _, key := range keys {
		if _, err := LoadImage(key); err != nil {
			log.Printf("render: %v; using placeholder", err)
			img := ebiten.NewImage(8, 8)
			img.Fill(fallback)
			RegisterImage(key, img)
		}
	}
}

func loadImageFromAssetsOrFS(path string) (*ebiten.Image, error) {
	if img, err := assets.LoadImage(path); err == nil {
		return img, nil
	}
	tried := []string{path, filepath.Join("assets", path), filepath.Base(path)}
	for _, p := range tried {
		if b, err := os.ReadFile(p); err == nil {
			if im, _, err := image.Decode(bytes.NewReader(b)); err == nil {
				return ebiten.NewImageFromImage(im), nil
			}
		}
	}
	return nil, fmt.Errorf("failed to load image %s", path)
}
