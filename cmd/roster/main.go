package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/infrastructure/roster"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "roster",
		Usage: "generate and check competitor rosters",
		Commands: []*cli.Command{
			newGenerateCommand(),
			newCheckCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newGenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "invent a roster of fake competitors",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 8, Usage: "number of competitors"},
			&cli.Int64Flag{Name: "seed", Usage: "generator seed, 0 for random"},
			&cli.StringFlag{Name: "format", Value: "yaml", Usage: "yaml or xlsx"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file, stdout when empty"},
		},
		Action: func(c *cli.Context) error {
			g := roster.NewFakeGenerator(c.Int64("seed"))
			competitors, err := g.Generate(c.Context, c.Int("count"))
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if path := c.String("out"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			switch c.String("format") {
			case "yaml":
				err = roster.WriteYAML(w, competitors)
			case "xlsx":
				err = roster.WriteXLSX(w, competitors)
			default:
				return fmt.Errorf("unknown format %q", c.String("format"))
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Generated %d competitors (seed %d)\n", len(competitors), g.Seed())
			return nil
		},
	}
}

func newCheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "validate a roster file and list its competitors",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Value: "file", Usage: "file or xlsx"},
		},
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("roster path is required")
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			parse := roster.ParseYAML
			switch c.String("source") {
			case "file":
			case "xlsx":
				parse = roster.ParseXLSX
			default:
				return fmt.Errorf("unknown roster source %q", c.String("source"))
			}

			competitors, err := parse(data)
			if err != nil {
				return fmt.Errorf("roster %q: %w", path, err)
			}
			for i, comp := range competitors {
				fmt.Printf("%2d. %s (%s)\n", i+1, comp.Name(), comp.Team.Name)
			}
			fmt.Printf("%d competitors OK\n", len(competitors))
			return nil
		},
	}
}
