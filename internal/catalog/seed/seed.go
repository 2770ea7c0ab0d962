// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package seed bundles the default catalogue served when no external source
// is configured.
package seed

import _ "embed"

// Catalog is the YAML catalogue document compiled into the binary.
//
//go:embed catalog.yaml
var Catalog []byte
