// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package version

// Version is overridden at build time via ldflags.
var Version = "0.0.0-dev"
