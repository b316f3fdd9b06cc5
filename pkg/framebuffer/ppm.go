package framebuffer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/df07/sphere-pathtracer/pkg/core"
)

// EncodePPM writes a binary portable pixmap: the header "P6 <w> <h> 255\n"
// followed by RGB bytes, top row first.
func (b *Buffer) EncodePPM(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "P6 %d %d 255\n", b.width, b.height); err != nil {
		return err
	}

	row := make([]byte, 3*b.width)
	for y := 0; y < b.height; y++ {
		for x, rgb := range b.Row(y) {
			row[3*x], row[3*x+1], row[3*x+2] = quantize(rgb)
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Limits applied by DecodePPM before the pixel buffer is allocated
const (
	maxPPMDimension = 1 << 16
	maxPPMPixels    = 1 << 26
)

// ErrInvalidPPM is returned for input that is not a binary 8-bit pixmap
var ErrInvalidPPM = errors.New("framebuffer: invalid P6 pixmap")

// DecodePPM reads a binary portable pixmap with a maxval of 255. Each byte is
// mapped back to linear radiance as byte/255.
func DecodePPM(r io.Reader) (*Buffer, error) {
	br := bufio.NewReader(r)

	magic, err := readPPMToken(br)
	if err != nil {
		return nil, err
	}
	if magic != "P6" {
		return nil, fmt.Errorf("%w: magic %q", ErrInvalidPPM, magic)
	}

	var header [3]int
	for i := range header {
		token, err := readPPMToken(br)
		if err != nil {
			return nil, err
		}
		header[i], err = strconv.Atoi(token)
		if err != nil || header[i] <= 0 {
			return nil, fmt.Errorf("%w: bad header field %q", ErrInvalidPPM, token)
		}
	}
	width, height, maxVal := header[0], header[1], header[2]
	if maxVal != 255 {
		return nil, fmt.Errorf("%w: unsupported maxval %d", ErrInvalidPPM, maxVal)
	}
	if width > maxPPMDimension || height > maxPPMDimension || width > maxPPMPixels/height {
		return nil, fmt.Errorf("%w: image size %dx%d too large", ErrInvalidPPM, width, height)
	}

	buf := New(width, height)
	row := make([]byte, 3*width)
	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, fmt.Errorf("%w: short pixel data: %v", ErrInvalidPPM, err)
		}
		pixels := buf.Row(y)
		for x := range pixels {
			pixels[x] = core.NewVec3(
				float32(row[3*x])/255,
				float32(row[3*x+1])/255,
				float32(row[3*x+2])/255,
			)
		}
	}
	return buf, nil
}

// readPPMToken returns the next whitespace-delimited header token, skipping
// '#' comments, and consumes exactly one whitespace byte after it
func readPPMToken(br *bufio.Reader) (string, error) {
	var token []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(token) > 0 {
				return string(token), nil
			}
			return "", fmt.Errorf("%w: truncated header: %v", ErrInvalidPPM, err)
		}

		switch {
		case c == '#' && len(token) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", fmt.Errorf("%w: truncated comment: %v", ErrInvalidPPM, err)
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if len(token) > 0 {
				return string(token), nil
			}
		default:
			token = append(token, c)
		}
	}
}
