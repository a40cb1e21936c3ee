// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version holds the application version, overridable at build time
// with -ldflags "-X github.com/olegiv/showcase-go/internal/version.Version=v1.2.3".
package version

// Version is the application version string.
var Version = "dev"
