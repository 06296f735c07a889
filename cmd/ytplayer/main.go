// Command ytplayer drives an embedded video player from the terminal.
package main

import (
	"os"

	"github.com/go-drift/ytplayer/cmd/ytplayer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
