// blockfield - Instanced cuboid renderer
// Draws a field of cubes in your terminal, or headless to PNG.
//
// Controls:
//
//	Arrows/WASD   - Orbit the camera
//	+/-           - Zoom (field of view)
//	0             - Reset the zoom
//	Tab/Shift+Tab - Cycle the primary selection
//	N             - Cycle the secondary selection
//	C             - Clear the selection
//	Space         - Toggle spin
//	X             - Remove every cube
//	Click         - Place a block
//	Esc           - Quit
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		stop()
		os.Exit(1)
	}
}
