// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Show or initialize the configuration.
//
// Command: config
// Short:   Print the effective configuration
//
// Subcommands:
//   (none)   Print effective config
//   init     Write the default config file if missing
//   path     Print the config file location
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/wuchat-tui/internal/config"
)

// HandleConfig runs the config command.
func HandleConfig(args Args) int {
	sub := ""
	if len(args.Raw) > 0 {
		sub = args.Raw[0]
	}

	switch sub {
	case "":
		fmt.Print(config.Global().String())
		return 0
	case "path":
		fmt.Println(config.DefaultPath())
		return 0
	case "init":
		path := config.DefaultPath()
		if _, err := os.Stat(path); err == nil {
			fmt.Println("config already exists at", path)
			return 0
		}
		if err := config.Default().Save(path); err != nil {
			Fail(err)
		}
		fmt.Println("wrote", path)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "wuchat: unknown config subcommand %q\n", sub)
		return 1
	}
}
