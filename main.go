// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package main

import "github.com/jegasolutions/provisioning-service/cmd"

func main() {
	cmd.Execute()
}
