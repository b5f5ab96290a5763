// offerctl builds offer summaries from the command line.
//
// Usage:
//
//	offerctl build --input input.json [--group-by KEY] [--template T]
//	offerctl fetch --offer-id ID [--group-by KEY] [--template T]
//	offerctl keys
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "offerctl",
		Usage:   "Build offer summaries from JSON input or straight from the CRM",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "pretty",
				Value: true,
				Usage: "Indent JSON output",
			},
		},
		Commands: []*cli.Command{
			buildCommand(),
			fetchCommand(),
			keysCommand(),
		},
	}
}
