package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

// BandStats contains statistics about a single rendered band
type BandStats struct {
	BandID     int           // Band identifier
	MinY       int           // First row of the band
	MaxY       int           // One past the last row of the band
	Samples    int           // Primary samples traced
	RenderTime time.Duration // Wall time spent on the band
}

// FrameStats contains statistics about a complete frame
type FrameStats struct {
	Width           int
	Height          int
	SamplesPerPixel int
	NumWorkers      int
	Bands           []BandStats   // Ordered by band ID
	RenderTime      time.Duration // Wall time for the whole frame
}

// TotalSamples returns the number of primary samples traced across all bands
func (fs FrameStats) TotalSamples() int {
	total := 0
	for _, band := range fs.Bands {
		total += band.Samples
	}
	return total
}

// WriteTable renders the per-band statistics as a text table
func (fs FrameStats) WriteTable(w io.Writer) {
	frameSamples := fs.Width * fs.Height * fs.SamplesPerPixel

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Band", "Rows", "Samples", "% of frame", "Render time"})
	for _, band := range fs.Bands {
		percent := 0.0
		if frameSamples > 0 {
			percent = 100 * float64(band.Samples) / float64(frameSamples)
		}
		table.Append([]string{
			fmt.Sprintf("%d", band.BandID),
			fmt.Sprintf("%d-%d", band.MinY, band.MaxY-1),
			fmt.Sprintf("%d", band.Samples),
			fmt.Sprintf("%02.1f %%", percent),
			band.RenderTime.String(),
		})
	}
	table.SetFooter([]string{
		fmt.Sprintf("workers: %d", fs.NumWorkers),
		fmt.Sprintf("%dx%d", fs.Width, fs.Height),
		fmt.Sprintf("%d", fs.TotalSamples()),
		"TOTAL",
		fs.RenderTime.String(),
	})

	table.Render()
}
