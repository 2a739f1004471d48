package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/xfmoulet/qoi"

	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

// ImageResult carries an operation result for transport.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	SavedTo     string `json:"saved_to,omitempty"`
}

// EncodeResult encodes g as a base64 PNG.
func EncodeResult(g *raster.Grid) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, g.NRGBA()); err != nil {
		return nil, fmt.Errorf("failed to encode result image: %w", err)
	}

	return &ImageResult{
		Width:       g.Width,
		Height:      g.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Save writes g to path. The format follows the file extension: anything
// disintegration/imaging can encode (png, jpg, gif, tif, bmp) plus qoi.
// Missing parent directories are created.
func Save(g *raster.Grid, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if strings.EqualFold(filepath.Ext(path), ".qoi") {
		return saveQOI(g, path)
	}

	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("cannot save %s: %w", filepath.Base(path), err)
	}
	if err := imaging.Save(g.NRGBA(), path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

func saveQOI(g *raster.Grid, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", filepath.Base(path), cerr)
		}
	}()

	if err := qoi.Encode(f, g.NRGBA()); err != nil {
		return fmt.Errorf("failed to encode qoi: %w", err)
	}
	return nil
}

// OutputPath names the result of applying opName to source inside dir, e.g.
// OutputPath("out", "in/photo.jpg", "sobel", ".png") is out/photo_sobel.png.
func OutputPath(dir, source, opName, ext string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return filepath.Join(dir, base+"_"+opName+ext)
}
