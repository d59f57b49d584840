// Command pixfx applies pixel effects to image files.
//
// Usage:
//
//	pixfx apply -e grayscale -e smooth -e threshold:cutoff=100 photo.png
//	pixfx apply -e invert --format jpg --out-dir out/ *.png
//	pixfx list
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
