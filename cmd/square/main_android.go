//go:build android

package main

import (
	"flag"

	"github.com/golang/glog"

	"square/internal/host"
)

func main() {
	// No command line on Android; log to logcat through stderr.
	flag.Set("logtostderr", "true")
	flag.Parse()
	defer glog.Flush()

	host.RunAndroid()
}
