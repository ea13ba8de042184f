//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"sync"
	"syscall/js"
	"time"

	"github.com/inamate/flyinout/internal/document"
	"github.com/inamate/flyinout/internal/engine"
	"github.com/inamate/flyinout/internal/geometry"
	"github.com/inamate/flyinout/internal/layout"
	"github.com/inamate/flyinout/internal/transition"
)

var sched = newRAFScheduler()

func main() {
	js.Global().Set("fancyInOut", js.FuncOf(fancyInOut))

	// Signal that WASM is ready
	js.Global().Set("fancyInOutReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// fancyInOut(options?) returns a Promise of {triggerEnter, triggerLeave}.
func fancyInOut(this js.Value, args []js.Value) interface{} {
	var doc document.OptionsDoc
	if len(args) > 0 && args[0].Type() == js.TypeObject {
		raw := js.Global().Get("JSON").Call("stringify", args[0]).String()
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return rejected(err)
		}
	}
	opts := doc.ToOptions()

	executor := js.FuncOf(func(this js.Value, p []js.Value) interface{} {
		resolve, reject := p[0], p[1]
		// Setup waits for a frame, which only arrives once this callback returns.
		go func() {
			triggers, err := transition.Setup(context.Background(), domSurface{}, sched, opts)
			if err != nil {
				reject.Invoke(jsError(err))
				return
			}
			result := js.Global().Get("Object").New()
			result.Set("triggerEnter", jsTrigger(triggers.Enter))
			result.Set("triggerLeave", jsTrigger(triggers.Leave))
			resolve.Invoke(result)
		}()
		return nil
	})
	defer executor.Release()

	return js.Global().Get("Promise").New(executor)
}

// jsTrigger wraps a trigger as trigger(element, onDone?).
func jsTrigger(trigger engine.Trigger) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) < 1 || args[0].Type() != js.TypeObject {
			panic(jsError(transition.ErrInvalidOptions))
		}
		var onDone func()
		if len(args) > 1 && args[1].Type() == js.TypeFunction {
			cb := args[1]
			onDone = func() { cb.Invoke() }
		}
		trigger(domTarget{style: args[0].Get("style")}, onDone)
		return nil
	})
}

func rejected(err error) js.Value {
	return js.Global().Get("Promise").Call("reject", jsError(err))
}

func jsError(err error) js.Value {
	return js.Global().Get("Error").New(err.Error())
}

// --- DOM probe and target ---

type domSurface struct{}

// NewProbe adds a hidden zero-size fixed element at the top of the body.
func (domSurface) NewProbe() layout.Probe {
	doc := js.Global().Get("document")
	el := doc.Call("createElement", "div")
	style := el.Get("style")
	style.Set("width", "0")
	style.Set("height", "0")
	style.Set("position", "fixed")
	style.Set("visibility", "hidden")
	doc.Get("body").Call("prepend", el)
	return &domProbe{el: el}
}

type domProbe struct {
	el js.Value
}

func (p *domProbe) Position() geometry.Vec2 {
	rect := p.el.Call("getBoundingClientRect")
	return geometry.Vec2{X: rect.Get("left").Float(), Y: rect.Get("top").Float()}
}

func (p *domProbe) SetOffset(x, y string) error {
	p.el.Get("style").Set("transform", "translate("+x+", "+y+")")
	return nil
}

func (p *domProbe) Remove() {
	p.el.Call("remove")
}

type domTarget struct {
	style js.Value
}

func (t domTarget) SetTransform(transform string) {
	t.style.Set("transform", transform)
}

func (t domTarget) SetOpacity(opacity float64) {
	t.style.Set("opacity", opacity)
}

// --- requestAnimationFrame scheduler ---

type rafScheduler struct {
	queue engine.FrameQueue

	mu      sync.Mutex
	armed   bool
	onFrame js.Func
}

func newRAFScheduler() *rafScheduler {
	s := &rafScheduler{}
	s.onFrame = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		s.mu.Lock()
		s.armed = false
		s.mu.Unlock()

		if s.queue.RunFrame(time.Now()) > 0 {
			s.arm()
		}
		return nil
	})
	return s
}

func (s *rafScheduler) Now() time.Time {
	return time.Now()
}

func (s *rafScheduler) Schedule(task engine.Task) {
	s.queue.Push(task)
	s.arm()
}

// arm requests one animation frame unless one is already pending.
func (s *rafScheduler) arm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.armed {
		return
	}
	s.armed = true
	js.Global().Call("requestAnimationFrame", s.onFrame)
}
