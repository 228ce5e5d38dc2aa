package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/statboard/internal/dashboard"
	"github.com/KaramelBytes/statboard/internal/utils"
)

var chartOutput string

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "List the dashboard charts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, s := range dashboard.Catalog() {
			fmt.Fprintf(out, "%-22s %-8s %-10s %s\n", s.ID, s.Kind, s.Source, s.Title)
		}
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart <id>",
	Short: "Build one chart and print its data as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := dashboard.Lookup(args[0])
		if err != nil {
			return err
		}
		c, err := requireConfig()
		if err != nil {
			return err
		}
		in, err := loadInput(cmd.Context(), c, spec.Source)
		if err != nil {
			return err
		}
		ch, err := dashboard.Build(spec.ID, in, dashboardOptions(c))
		if err != nil {
			return err
		}
		if chartOutput != "" {
			if err := utils.WriteJSON(chartOutput, ch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s to %s\n", spec.ID, chartOutput)
			return nil
		}
		b, err := utils.PrettyJSON(ch)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "", "write JSON to this file instead of stdout")
}
