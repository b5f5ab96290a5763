package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"offer_summary_backend/internal/adapters"
	"offer_summary_backend/internal/offers"
	"offer_summary_backend/internal/offers/service"
	"offer_summary_backend/internal/offers/transport"
	"offer_summary_backend/internal/offersummary"
	"offer_summary_backend/internal/raynet"
	"offer_summary_backend/platform/config"
	"offer_summary_backend/platform/logger"

	"github.com/urfave/cli/v2"
)

func presentationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "group-by",
			Aliases: []string{"g"},
			Usage:   "Grouping key (see offerctl keys)",
		},
		&cli.StringFlag{
			Name:    "template",
			Aliases: []string{"t"},
			Usage:   "Overview template (withQuantity, noQuantity)",
		},
	}
}

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Build a summary from a JSON build input",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Path to the build input JSON (- for stdin)",
				Required: true,
			},
		}, presentationFlags()...),
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.NewWithWriter(cfg.Env, c.App.ErrWriter)

			in, err := readInput(c.String("input"), c.App.Reader)
			if err != nil {
				return err
			}

			// Build never touches the CRM, so no source is wired.
			svc, err := offers.NewService(nil, cfg, 1, log)
			if err != nil {
				return err
			}
			result, err := svc.BuildFromInput(c.Context, in, options(c))
			if err != nil {
				return err
			}
			return writeResult(c.App.Writer, result, c.Bool("pretty"))
		},
	}
}

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Load an offer from the CRM and build its summary",
		Flags: append([]cli.Flag{
			&cli.Int64Flag{
				Name:     "offer-id",
				Usage:    "CRM offer id",
				Required: true,
			},
		}, presentationFlags()...),
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.RequireRaynet(); err != nil {
				return err
			}
			log := logger.NewWithWriter(cfg.Env, c.App.ErrWriter)

			source := adapters.NewRaynetSource(raynet.New(cfg, log))
			svc, err := offers.NewService(source, cfg, cfg.GetRaynetMaxConcurrency(), log)
			if err != nil {
				return err
			}
			result, err := svc.Summary(c.Context, c.Int64("offer-id"), options(c))
			if err != nil {
				return err
			}
			return writeResult(c.App.Writer, result, c.Bool("pretty"))
		},
	}
}

func keysCommand() *cli.Command {
	return &cli.Command{
		Name:  "keys",
		Usage: "List the recognized grouping keys",
		Action: func(c *cli.Context) error {
			return writeKeys(c.App.Writer)
		},
	}
}

func options(c *cli.Context) service.Options {
	return service.Options{
		GroupBy:  c.String("group-by"),
		Template: c.String("template"),
	}
}

func readInput(path string, stdin io.Reader) (offersummary.BuildInput, error) {
	var in offersummary.BuildInput

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return in, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return in, fmt.Errorf("decode input: %w", err)
	}
	return in, nil
}

func writeResult(w io.Writer, result *service.Result, pretty bool) error {
	resp := transport.SummaryResponse{Status: transport.StatusNotReady}
	if result.Ready {
		overview := result.Overview
		resp = transport.SummaryResponse{
			Status:      transport.StatusReady,
			Fingerprint: result.Fingerprint,
			Summary:     result.Summary,
			Overview:    &overview,
		}
	}

	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(resp)
}

func writeKeys(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tLABEL")
	for _, k := range offersummary.GroupingKeys() {
		fmt.Fprintf(tw, "%s\t%s\n", k.Key, k.Label)
	}
	return tw.Flush()
}
