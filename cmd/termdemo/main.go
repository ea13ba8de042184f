package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/inamate/flyinout/internal/document"
	"github.com/inamate/flyinout/internal/engine"
	"github.com/inamate/flyinout/internal/layout"
	"github.com/inamate/flyinout/internal/transition"
)

// Terminal cells are mapped onto a pixel viewport of this size each.
const (
	cellWidth  = 8
	cellHeight = 16

	boxCols = 12
	boxRows = 5
)

// Shade glyphs from transparent to opaque.
var shades = []rune{' ', '░', '▒', '▓', '█'}

type demo struct {
	screen   tcell.Screen
	loop     *engine.FrameLoop
	triggers *transition.Triggers
	element  *layout.Element
	preset   string
	status   atomic.Value
}

func main() {
	preset := flag.String("preset", "default", "catalog preset to play")
	catalogPath := flag.String("catalog", "", "optional catalog override file")
	fps := flag.Int("fps", 60, "frame rate")
	flag.Parse()

	// The screen owns stdout.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := run(*preset, *catalogPath, *fps); err != nil {
		fmt.Fprintf(os.Stderr, "termdemo: %v\n", err)
		os.Exit(1)
	}
}

func run(preset, catalogPath string, fps int) error {
	catalog, err := document.LoadCatalog(catalogPath)
	if err != nil {
		return err
	}
	doc, err := catalog.Resolve(preset, nil)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := engine.NewFrameLoop(fps)
	go loop.Run(ctx)

	cols, rows := screen.Size()
	vp := layout.NewViewport(float64(cols*cellWidth), float64(rows*cellHeight), cellHeight)

	triggers, err := transition.Setup(ctx, vp, loop, doc.ToOptions())
	if err != nil {
		return err
	}

	d := &demo{
		screen:   screen,
		loop:     loop,
		triggers: triggers,
		element:  layout.NewElement(),
		preset:   preset,
	}
	// Start hidden at the far end of the path.
	d.play(triggers.Leave, "hidden")

	d.run()
	return nil
}

func (d *demo) play(trigger engine.Trigger, doneStatus string) {
	d.status.Store("playing")
	trigger(d.element, func() {
		d.status.Store(doneStatus)
	})
}

func (d *demo) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'e':
				d.play(d.triggers.Enter, "entered")
			case 'l':
				d.play(d.triggers.Leave, "left")
			}
		}
	case *tcell.EventResize:
		d.screen.Sync()
	}
	return true
}

func (d *demo) run() {
	ticker := time.NewTicker(d.loop.Interval())
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !d.handleInput(ev) {
				return
			}
		case <-ticker.C:
			d.draw()
		}
	}
}

func (d *demo) draw() {
	d.screen.Clear()
	cols, rows := d.screen.Size()

	frame, err := d.element.Frame()
	if err != nil {
		slog.Warn("bad transform", "error", err)
		return
	}

	// Box centre sits at the screen centre plus the element's translation.
	cx := float64(cols)/2 + frame.X/cellWidth
	cy := float64(rows)/2 + frame.Y/cellHeight
	w := boxCols * frame.Scale
	h := boxRows * frame.Scale

	glyph := shades[int(math.Round(frame.Opacity*float64(len(shades)-1)))]
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xe9, 0x45, 0x60))

	for y := int(math.Round(cy - h/2)); y < int(math.Round(cy+h/2)); y++ {
		for x := int(math.Round(cx - w/2)); x < int(math.Round(cx+w/2)); x++ {
			if x >= 0 && x < cols && y >= 0 && y < rows {
				d.screen.SetContent(x, y, glyph, nil, style)
			}
		}
	}

	line := fmt.Sprintf("preset %s  %s  %s  opacity %.2f   [e]nter [l]eave [q]uit",
		d.preset, d.status.Load(), d.element.Transform(), frame.Opacity)
	for i, r := range line {
		if i >= cols {
			break
		}
		d.screen.SetContent(i, rows-1, r, nil, tcell.StyleDefault)
	}
	d.screen.Show()
}
