package main

import (
	"context"
	"os"

	"github.com/seysony91-ship-it/product-images/cmd"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	os.Exit(cmd.Execute(context.Background(), version, os.Args[1:]))
}
