// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command responder serves LS and DOWNLOAD requests from an asset
// directory over a raw link-layer transport, the Go equivalent of
// original_source/server/src/main.c.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/brineloop/l2xfer/pkg/asset"
	"github.com/brineloop/l2xfer/pkg/session"
	"github.com/brineloop/l2xfer/pkg/transport"
)

func main() {
	app := &cli.App{
		Name:      "responder",
		Usage:     "serve files over a raw Ethernet link",
		ArgsUsage: "<network-interface>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "assets",
				Value: asset.DefaultRoot,
				Usage: "directory served to requesters",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: responder <network-interface>", 1)
	}
	iface := c.Args().Get(0)

	conn, err := transport.Open(iface)
	if err != nil {
		return cli.Exit(fmt.Errorf("failed to open socket: %w", err), 1)
	}
	defer conn.Close()

	root := asset.Root(c.String("assets"))
	log.Printf("serving %s on %s", root, iface)

	return session.ServeForever(conn, root)
}
