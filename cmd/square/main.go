//go:build !android

// Command square shows a red square that can be dragged with the mouse.
package main

import (
	"flag"

	"github.com/golang/glog"

	"square/internal/host"
)

func main() {
	configPath := flag.String("config", "", "path to square.yaml (default $SQUARE_CONFIG or ./square.yaml)")
	flag.Parse()
	defer glog.Flush()

	host.RunDesktop(*configPath)
}
