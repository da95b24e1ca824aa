package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

//go:embed *.png sounds/*.wav
var assetsFS embed.FS

// Dir is checked before the embedded files, so assets can be swapped without
// rebuilding.
var Dir = "assets"

// LoadFile loads an asset by assets-relative path, preferring a copy on disk.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	data, err := assetsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("assets: load %s: %w", path, err)
	}
	return data, nil
}

// LoadImage decodes a PNG, BMP or WebP asset.
func LoadImage(path string) (image.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return img, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "./")
	return strings.TrimPrefix(s, "assets/")
}
