package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/sshdeck/internal/core/entry"
	"github.com/hay-kot/sshdeck/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	filter     string
	long       bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List hosts without opening the browser",
		UsageText: "sshdeck ls [--filter QUERY] [--json | --long]",
		Description: `Prints every Host from the configured ssh_config files in file order.

--filter applies the same case-insensitive match as the browser's search:
the query must appear in the host or in its HostName.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "filter",
				Aliases:     []string{"f"},
				Usage:       "only list hosts matching `QUERY`",
				Destination: &cmd.filter,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "long",
				Aliases:     []string{"l"},
				Usage:       "print every option and comment of each host",
				Destination: &cmd.long,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(_ context.Context, c *cli.Command) error {
	store, err := cmd.flags.LoadStore()
	if err != nil {
		return fmt.Errorf("load hosts: %w", err)
	}

	all := store.Entries()
	matched := entry.Filter(all, cmd.filter)

	if len(matched) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No hosts found\n")
		}
		return nil
	}

	out := c.Root().Writer

	switch {
	case cmd.jsonOutput:
		for _, i := range matched {
			if err := iojson.WriteLine(out, all[i]); err != nil {
				return fmt.Errorf("encode host: %w", err)
			}
		}
		return nil
	case cmd.long:
		for _, i := range matched {
			_, _ = fmt.Fprint(out, all[i].Display())
		}
		return nil
	default:
		return writeTable(out, all, matched)
	}
}

func writeTable(out io.Writer, all []entry.Entry, matched []int) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "HOST\tHOSTNAME\tUSER\tTAG")

	for _, i := range matched {
		e := all[i]
		user, _ := e.Lookup("user")
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Host, dash(e.Hostname()), dash(user), dash(e.Tag))
	}

	return w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
