// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command requester issues LS and DOWNLOAD requests over a raw link-layer
// transport, the Go equivalent of original_source/client/src/main.c.
package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/urfave/cli/v2"

	"github.com/brineloop/l2xfer/pkg/session"
	"github.com/brineloop/l2xfer/pkg/transport"
)

func main() {
	app := &cli.App{
		Name:  "requester",
		Usage: "list or download files from a raw Ethernet link",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "i", Required: true, Usage: "network interface"},
			&cli.BoolFlag{Name: "list", Usage: "list available files"},
			&cli.StringFlag{Name: "download", Usage: "name of the file to download"},
			&cli.StringFlag{Name: "exec", Usage: "program to run with the downloaded file's path on success"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	list := c.Bool("list")
	download := c.String("download")
	if list == (download != "") {
		return cli.Exit("exactly one of --list or --download <name> is required", 1)
	}

	conn, err := transport.Open(c.String("i"))
	if err != nil {
		return cli.Exit(fmt.Errorf("failed to open socket: %w", err), 1)
	}
	defer conn.Close()

	var (
		typ  session.Type
		sink session.Sink
		name string
	)
	if list {
		typ = session.TypeLS
		sink = session.NewListSink()
	} else {
		typ = session.TypeDownload
		name = download
		fileSink, err := session.NewFileSink(name)
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to create %s: %w", name, err), 1)
		}
		defer fileSink.Close()
		sink = fileSink
	}

	req := session.NewRequester(conn, typ, name, sink)
	if typ == session.TypeDownload {
		req.WithDiskSpaceChecker(hasDiskSpace)
	}

	out, err := req.Run()
	if err != nil {
		return cli.Exit(err, 1)
	}
	if out.ServerError != "" {
		fmt.Fprintln(os.Stderr, out.ServerError)
		return nil
	}

	if typ == session.TypeDownload && out.Completed {
		if program := c.String("exec"); program != "" {
			if err := exec.Command(program, name).Run(); err != nil {
				log.Printf("error running %s: %v", program, err)
			}
		}
	}
	return nil
}
