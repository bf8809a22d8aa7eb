package main

import (
	"context"
	"fmt"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/blockfield/pkg/config"
	"github.com/taigrr/blockfield/pkg/math3d"
)

const (
	orbitStep = 0.08 // radians per key press
	zoomStep  = 5    // degrees of FOV per key press
)

// runViewer draws the scene on the terminal until Esc or ctx is done.
func runViewer(ctx context.Context, cfg config.Config, fps int) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	// Each terminal row holds two framebuffer rows.
	s, err := newScene(cfg, width, height*2)
	if err != nil {
		return err
	}

	center := s.camera.Position.Add(s.camera.Forward().Scale(10))
	if cfg.Camera.Target != nil {
		t := *cfg.Camera.Target
		center = math3d.V3(t[0], t[1], t[2])
	}
	orbit := NewOrbit(fps, s.camera, center)

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1000h") // Enable click tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1000l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Events are handed to the render loop so all state stays on one goroutine.
	events := make(chan uv.Event, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	handle := func(ev uv.Event) {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			s.resize(width, height*2)

		case uv.KeyPressEvent:
			n := s.world.Len()
			switch {
			case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
				cancel()
			case ev.MatchString("a", "left"):
				orbit.Nudge(-orbitStep, 0)
			case ev.MatchString("d", "right"):
				orbit.Nudge(orbitStep, 0)
			case ev.MatchString("w", "up"):
				orbit.Nudge(0, orbitStep)
			case ev.MatchString("s", "down"):
				orbit.Nudge(0, -orbitStep)
			case ev.MatchString("+", "="):
				s.camera.Zoom(-zoomStep)
			case ev.MatchString("-", "_"):
				s.camera.Zoom(zoomStep)
			case ev.MatchString("0"):
				s.camera.SetFOV(cfg.Camera.FOV)
			case ev.MatchString("shift+tab"):
				s.world.Selection.CyclePrimary(n, -1)
			case ev.MatchString("tab"):
				s.world.Selection.CyclePrimary(n, 1)
			case ev.MatchString("n"):
				s.world.Selection.CycleSecondary(n)
			case ev.MatchString("c"):
				s.world.Selection.Clear()
			case ev.MatchString("space"):
				s.world.Spin = !s.world.Spin
			case ev.MatchString("x"):
				s.world.Reset()
			}

		case uv.MouseClickEvent:
			s.world.PlaceBlock(float32(ev.X), float32(ev.Y*2), float32(s.fb.Width), float32(s.fb.Height))

		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				orbit.Dolly(-1)
			case uv.MouseWheelDown:
				orbit.Dolly(1)
			}
		}
	}

	targetDuration := time.Second / time.Duration(fps)
	lastFrame := time.Now()

	for {
	drain:
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-events:
				handle(ev)
			default:
				break drain
			}
		}

		now := time.Now()
		dt := min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		s.world.Update(float32(dt))
		orbit.Update()
		orbit.Apply(s.camera)

		if err := s.draw(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		s.fb.Draw(term, uv.Rect(0, 0, width, height))
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
