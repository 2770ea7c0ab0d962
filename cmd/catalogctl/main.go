// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Command catalogctl inspects and maintains the catalogue from a terminal.

It reads the same environment as the API server, so browsing here shows the
exact pages the API would serve.

Usage:

	catalogctl browse --q "blue" --sort rating-desc --page 2
	catalogctl show jojolands
	catalogctl categories
	catalogctl plans
	catalogctl export --format json > catalog.json
	catalogctl import catalog.yaml
	catalogctl migrate up
*/
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout, loadConfig).Execute(); err != nil {
		os.Exit(1)
	}
}
