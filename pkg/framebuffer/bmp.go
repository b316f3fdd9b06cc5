package framebuffer

import (
	"io"

	"golang.org/x/image/bmp"
)

// EncodeBMP writes an uncompressed 24-bit bitmap. Rows are stored bottom to
// top in B, G, R order and zero-padded to a multiple of 4 bytes.
func (b *Buffer) EncodeBMP(w io.Writer) error {
	// ToRGBA is fully opaque, so the encoder selects 24 bits per pixel
	return bmp.Encode(w, b.ToRGBA())
}
