// Command skills runs the skill aggregation over a projects file from the
// command line.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/okian/portfolio/internal/adapters/repository"
	"github.com/okian/portfolio/internal/domain/model"
	"github.com/okian/portfolio/internal/domain/skills"
	"github.com/spf13/cobra"
)

// Output formats.
const (
	formatJSON  = "json"
	formatTable = "table"
)

var errFormat = errors.New("unknown output format")

type options struct {
	dataFile string
	now      string
	format   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "skills",
		Short:        "Derive a skill inventory from portfolio projects",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.dataFile, "data", "", "projects.json to read (default: embedded data set)")
	root.PersistentFlags().StringVar(&opts.now, "now", "", "reference time, RFC 3339 or YYYY-MM-DD (default: current time)")
	root.PersistentFlags().StringVar(&opts.format, "format", formatTable, "output format: json or table")

	root.AddCommand(
		newAggregateCmd(opts),
		newStatsCmd(opts),
		newCategorizeCmd(opts),
	)
	return root
}

func newAggregateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "aggregate",
		Short: "Group technologies into categories with proficiency levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, now, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			result := skills.Aggregate(projects, now)
			switch opts.format {
			case formatJSON:
				return writeJSON(cmd.OutOrStdout(), result)
			case formatTable:
				return writeSkillsTable(cmd.OutOrStdout(), result)
			default:
				return fmt.Errorf("%w: %q", errFormat, opts.format)
			}
		},
	}
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the headline statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, now, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			stats := skills.CalculateStats(projects, now)
			switch opts.format {
			case formatJSON:
				return writeJSON(cmd.OutOrStdout(), stats)
			case formatTable:
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(tw, "Years experience\t%s\n", stats.YearsExperience)
				fmt.Fprintf(tw, "Projects completed\t%s\n", stats.ProjectsCompleted)
				fmt.Fprintf(tw, "Technologies\t%s\n", stats.Technologies)
				fmt.Fprintf(tw, "Client satisfaction\t%s\n", stats.ClientSatisfaction)
				return tw.Flush()
			default:
				return fmt.Errorf("%w: %q", errFormat, opts.format)
			}
		},
	}
}

func newCategorizeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categorize TECH...",
		Short: "Show the category each technology falls into",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			type row struct {
				Technology string `json:"technology"`
				Category   string `json:"category"`
			}
			rows := make([]row, len(args))
			for i, tech := range args {
				rows[i] = row{Technology: tech, Category: skills.Categorize(tech)}
			}
			switch opts.format {
			case formatJSON:
				return writeJSON(cmd.OutOrStdout(), rows)
			case formatTable:
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, r := range rows {
					fmt.Fprintf(tw, "%s\t%s\n", r.Technology, r.Category)
				}
				return tw.Flush()
			default:
				return fmt.Errorf("%w: %q", errFormat, opts.format)
			}
		},
	}
}

// load returns the projects to aggregate and the reference time.
func (o *options) load(ctx context.Context) ([]model.Project, time.Time, error) {
	now := time.Now().UTC()
	if o.now != "" {
		ts, err := model.ParseTimestamp(o.now)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("--now: %w", err)
		}
		now = ts.Time
	}

	if o.dataFile == "" {
		store, err := repository.Load(ctx)
		if err != nil {
			return nil, time.Time{}, err
		}
		return store.All(), now, nil
	}

	f, err := os.Open(o.dataFile)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("open %s: %w", o.dataFile, err)
	}
	defer f.Close()
	projects, err := repository.ReadProjects(f)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%s: %w", o.dataFile, err)
	}
	return projects, now, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSkillsTable(w io.Writer, result skills.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, cat := range result.Categories {
		fmt.Fprintf(tw, "%s\n", cat.Name)
		for _, s := range cat.Skills {
			fmt.Fprintf(tw, "  %s\t%s\t%d\n", s.Name, s.Level, s.ProjectCount)
		}
	}
	fmt.Fprintf(tw, "\n%d technologies in %d categories\n", result.Technologies, len(result.Categories))
	return tw.Flush()
}
