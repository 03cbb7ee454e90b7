// Texhash computes texture content checksums from image files and raw
// memory dumps.
//
// Usage:
//
//	texhash sum [--format rgba8] [--resize WxH] [--manifest] FILE...
//	texhash raw --width W --height H --size S [--stride N] [--offset N] [--palette-offset N] FILE
//	texhash bench [--count N] [--width W] [--height H]
//	texhash version
//
// Settings are read from texhash.yaml (current directory, then
// $HOME/.config/texhash), TEXHASH_* environment variables and flags.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
