package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/framebuffer"
)

// Band is a horizontal strip of image rows rendered as one unit of work
type Band struct {
	ID      int                 // Unique band identifier, top band is 0
	Bounds  image.Rectangle     // Pixel bounds (x0,y0,x1,y1)
	Sampler *core.RandomSampler // Band-specific sampler for deterministic results
}

// NewBand creates a band whose sampler is seeded with seed+id. Random state
// belongs to the band, so a frame renders identically on any number of workers.
func NewBand(id int, bounds image.Rectangle, seed int64) *Band {
	return &Band{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewSeededSampler(seed + int64(id)),
	}
}

// NewBandGrid splits the image into bands of bandHeight rows, top to bottom.
// The last band may be shorter.
func NewBandGrid(width, height, bandHeight int, seed int64) []*Band {
	var bands []*Band
	bandID := 0

	for y0 := 0; y0 < height; y0 += bandHeight {
		y1 := min(y0+bandHeight, height) // Don't exceed image bounds
		bands = append(bands, NewBand(bandID, image.Rect(0, y0, width, y1), seed))
		bandID++
	}

	return bands
}

// renderBand fills the band's rows of buffer. Context cancellation is checked
// before every row.
func (rt *Raytracer) renderBand(ctx context.Context, band *Band, buffer *framebuffer.Buffer) (BandStats, error) {
	start := time.Now()
	stats := BandStats{
		BandID: band.ID,
		MinY:   band.Bounds.Min.Y,
		MaxY:   band.Bounds.Max.Y,
	}

	for y := band.Bounds.Min.Y; y < band.Bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			stats.RenderTime = time.Since(start)
			return stats, fmt.Errorf("%w: band %d row %d: %w", ErrInterrupted, band.ID, y, err)
		}

		row := buffer.Row(y)
		for x := band.Bounds.Min.X; x < band.Bounds.Max.X; x++ {
			row[x] = rt.SamplePixel(x, y, band.Sampler)
		}
		stats.Samples += band.Bounds.Dx() * rt.config.SamplesPerPixel
	}

	stats.RenderTime = time.Since(start)
	return stats, nil
}
