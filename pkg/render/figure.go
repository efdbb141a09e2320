package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// writeStacked renders each panel chart to PNG and stacks the results
// vertically into a single figure. go-chart has no subplot support, so the
// composition happens at the image level.
func writeStacked(charts []chart.Chart, w io.Writer) error {
	images := make([]image.Image, 0, len(charts))
	width, height := 0, 0
	for i := range charts {
		var buf bytes.Buffer
		if err := charts[i].Render(chart.PNG, &buf); err != nil {
			return fmt.Errorf("render: panel %d: %w", i, err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			return fmt.Errorf("render: decode panel %d: %w", i, err)
		}
		bounds := img.Bounds()
		if bounds.Dx() > width {
			width = bounds.Dx()
		}
		height += bounds.Dy()
		images = append(images, img)
	}

	figure := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(figure, figure.Bounds(), image.White, image.Point{}, draw.Src)
	y := 0
	for _, img := range images {
		bounds := img.Bounds()
		rect := image.Rect(0, y, bounds.Dx(), y+bounds.Dy())
		draw.Draw(figure, rect, img, bounds.Min, draw.Src)
		y += bounds.Dy()
	}
	return png.Encode(w, figure)
}
