// Package version reports build information for /info and the CLI.
//
//	go build -ldflags "-X github.com/kbukum/aigateway/version.Version=1.2.0"
package version
