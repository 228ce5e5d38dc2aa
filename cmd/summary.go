package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/statboard/internal/analysis"
	"github.com/KaramelBytes/statboard/internal/chartdata"
	"github.com/KaramelBytes/statboard/internal/dataset"
	"github.com/KaramelBytes/statboard/internal/utils"
)

var (
	sumGroupBy  string
	sumMeasure  string
	sumSort     string
	sumGroups   []string
	sumFormat   string
	sumWhiskers bool
	sumJSON     bool
	sumOutput   string
)

var summaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Group a CSV/TSV/XLSX file by a column and summarize one measure",
	Long: `Group rows by --group-by and compute n, min, quartiles, max, mean, population
standard deviation and standard error of --measure for each group. Quartiles use
the lower nearest rank sorted[floor(n*p)]. Rows whose measure does not parse are
dropped and counted.

The measure may carry a kind suffix: weight, height:height ("6-9" feet-inches),
year_start:int.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := parseMeasure(sumMeasure)
		if err != nil {
			return err
		}
		policy, err := analysis.ParsePolicy(sumSort)
		if err != nil {
			return fmt.Errorf("invalid --sort: %w", err)
		}
		format, err := chartdata.ParseFormat(sumFormat)
		if err != nil {
			return fmt.Errorf("invalid --format: %w", err)
		}
		d, err := loadFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		opt := analysis.DefaultOptions()
		opt.GroupBy = sumGroupBy
		opt.Measure = field
		opt.Sort = policy
		opt.Groups = sumGroups
		rep, err := analysis.Analyze(d, opt)
		if err != nil {
			return err
		}

		var out []byte
		if sumJSON {
			if out, err = utils.PrettyJSON(rep); err != nil {
				return err
			}
		} else {
			out = []byte(rep.Markdown(format.Apply, sumWhiskers))
		}
		if sumOutput != "" {
			if err := utils.SafeWriteFile(sumOutput, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote summary to %s\n", sumOutput)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(&sumGroupBy, "group-by", "", "categorical column to group by (empty: one group)")
	summaryCmd.Flags().StringVar(&sumMeasure, "measure", "", "numeric column to summarize, optionally column:kind (float|int|height)")
	summaryCmd.Flags().StringVar(&sumSort, "sort", "median:desc", "group order: mean|median|count|key|key-numeric[:asc|desc]")
	summaryCmd.Flags().StringSliceVar(&sumGroups, "groups", nil, "only report these groups")
	summaryCmd.Flags().StringVar(&sumFormat, "format", "raw", "value format: raw|height|currency")
	summaryCmd.Flags().BoolVar(&sumWhiskers, "whiskers", false, "show Tukey whiskers instead of min/max")
	summaryCmd.Flags().BoolVar(&sumJSON, "json", false, "print JSON instead of Markdown")
	summaryCmd.Flags().StringVarP(&sumOutput, "output", "o", "", "write to file instead of stdout")
	_ = summaryCmd.MarkFlagRequired("measure")
}

// parseMeasure reads "column" or "column:kind".
func parseMeasure(s string) (analysis.Field, error) {
	col, kind, _ := strings.Cut(strings.TrimSpace(s), ":")
	col = strings.TrimSpace(col)
	if col == "" {
		return analysis.Field{}, errors.New("--measure is required")
	}
	k, err := analysis.ParseFieldKind(kind)
	if err != nil {
		return analysis.Field{}, err
	}
	return analysis.Field{Column: col, Measure: col, Kind: k}, nil
}

// loadFile loads an ad hoc dataset from a path or URL, bounded by the
// configured timeout.
func loadFile(ctx context.Context, location string) (*dataset.Dataset, error) {
	var timeout time.Duration
	if cfg != nil {
		timeout = cfg.LoadTimeout()
	}
	return dataset.LoadPath(ctx, location, timeout)
}
