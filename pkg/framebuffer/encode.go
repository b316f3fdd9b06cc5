package framebuffer

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies an output file format
type Format string

const (
	FormatPPM Format = "ppm"
	FormatBMP Format = "bmp"
	FormatPNG Format = "png"
)

// FormatError reports an output path whose extension has no encoder
type FormatError struct {
	Path string
	Ext  string
}

func (e *FormatError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("framebuffer: unknown image format for %q: missing file extension", e.Path)
	}
	return fmt.Sprintf("framebuffer: unknown image format %q for %q (supported: .ppm, .bmp, .png)", e.Ext, e.Path)
}

// FormatFromPath selects an output format from the file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".ppm":
		return FormatPPM, nil
	case ".bmp":
		return FormatBMP, nil
	case ".png":
		return FormatPNG, nil
	default:
		return "", &FormatError{Path: path, Ext: ext}
	}
}

// Encode writes the buffer to w in the given format
func (b *Buffer) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatPPM:
		return b.EncodePPM(w)
	case FormatBMP:
		return b.EncodeBMP(w)
	case FormatPNG:
		return png.Encode(w, b.ToRGBA())
	default:
		return &FormatError{Ext: string(format)}
	}
}

// Save encodes the buffer to a file, selecting the format by extension.
// The file is not created when the extension is unknown.
func (b *Buffer) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	w := bufio.NewWriter(file)
	if err := b.Encode(w, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write image file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close image file: %w", err)
	}
	return nil
}
