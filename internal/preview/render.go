package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/inamate/flyinout/internal/engine"
)

const (
	pathSegments = 96
	// maxImageSize bounds both edges of a rendered image.
	maxImageSize = 4096
)

// ErrImageTooLarge is returned when a render would exceed maxImageSize.
var ErrImageTooLarge = errors.New("image too large")

var (
	backgroundColor = color.RGBA{0x1a, 0x1a, 0x2e, 0xff}
	pathColor       = color.RGBA{0x53, 0x5c, 0x91, 0xff}
	boxColor        = color.RGBA{0xe9, 0x45, 0x60, 0xff}
)

// RenderOptions controls Render. Zero fields take defaults.
type RenderOptions struct {
	Width   int     `json:"width,omitempty"`   // output width in pixels
	Boxes   int     `json:"boxes,omitempty"`   // target boxes drawn along the path
	BoxSize float64 `json:"boxSize,omitempty"` // box edge in viewport pixels
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.Width <= 0 {
		o.Width = 640
	}
	if o.Boxes < 2 {
		o.Boxes = 9
	}
	if o.BoxSize <= 0 {
		o.BoxSize = 48
	}
	return o
}

// imageSize returns the output size for a viewport of the given size, keeping
// its aspect ratio.
func (o RenderOptions) imageSize(vpWidth, vpHeight float64) (int, int) {
	w := o.Width
	return w, max(1, int(math.Round(vpHeight*float64(w)/vpWidth)))
}

// Check reports ErrImageTooLarge when rendering a viewport of the given size
// would produce an edge longer than maxImageSize.
func (o RenderOptions) Check(vpWidth, vpHeight float64) error {
	o = o.withDefaults()
	if o.Width > maxImageSize {
		return fmt.Errorf("%w: width %d exceeds %d", ErrImageTooLarge, o.Width, maxImageSize)
	}
	if vpWidth <= 0 || vpHeight/vpWidth > float64(maxImageSize)/float64(o.Width) {
		return fmt.Errorf("%w: viewport %vx%v at width %d", ErrImageTooLarge, vpWidth, vpHeight, o.Width)
	}
	return nil
}

// Render draws the trajectory of a sampled run over its viewport: the path
// of the box centre and the box itself at evenly spaced progress values,
// each faded by its opacity. Callers bound opts with Check first.
func Render(run *Run, opts RenderOptions) *image.RGBA {
	opts = opts.withDefaults()
	vp := run.viewport
	frames := run.triggers.Frames

	s := float64(opts.Width) / vp.Width
	w, h := opts.imageSize(vp.Width, vp.Height)

	// Curve space has the rest position at the origin.
	view := engine.Scale(s, s).Multiply(engine.Translate(vp.Origin.X, vp.Origin.Y))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Over

	var prevX, prevY float64
	for i := 0; i <= pathSegments; i++ {
		f := frames(float64(i) / pathSegments)
		x, y := view.TransformPoint(f.X, f.Y)
		if i > 0 {
			strokeSegment(r, prevX, prevY, x, y, 1.5)
		}
		prevX, prevY = x, y
	}
	r.Draw(img, img.Bounds(), image.NewUniform(pathColor), image.Point{})

	half := opts.BoxSize / 2
	local := engine.Rect{X: -half, Y: -half, Width: opts.BoxSize, Height: opts.BoxSize}
	for i := 0; i < opts.Boxes; i++ {
		f := frames(float64(i) / float64(opts.Boxes-1))
		box := view.Multiply(engine.FrameMatrix(f)).TransformRect(local)

		r.Reset(w, h)
		fillRect(r, box)
		c := color.NRGBA{boxColor.R, boxColor.G, boxColor.B, uint8(math.Round(f.Opacity * 255))}
		r.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
	}

	return img
}

func fillRect(r *vector.Rasterizer, box engine.Rect) {
	x0, y0 := float32(box.X), float32(box.Y)
	x1, y1 := float32(box.X+box.Width), float32(box.Y+box.Height)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.ClosePath()
}

// strokeSegment adds a quad of the given width around the segment.
func strokeSegment(r *vector.Rasterizer, ax, ay, bx, by, width float64) {
	dx, dy := bx-ax, by-ay
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2

	r.MoveTo(float32(ax+nx), float32(ay+ny))
	r.LineTo(float32(bx+nx), float32(by+ny))
	r.LineTo(float32(bx-nx), float32(by-ny))
	r.LineTo(float32(ax-nx), float32(ay-ny))
	r.ClosePath()
}
