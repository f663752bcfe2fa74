package main

import (
	"fmt"
	"log/slog"
	"os"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for static builds
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// xbar only shows stdout, so the error chain is printed there as the menu title.
		fmt.Println(err)
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}
