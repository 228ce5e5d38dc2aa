package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/statboard/internal/dashboard"
	"github.com/KaramelBytes/statboard/internal/render"
	"github.com/KaramelBytes/statboard/internal/utils"
)

var (
	buildOutDir string
	buildImages string
)

// indexEntry describes one written chart in index.json.
type indexEntry struct {
	ID      dashboard.ChartID `json:"id"`
	Title   string            `json:"title"`
	Kind    dashboard.Kind    `json:"kind"`
	File    string            `json:"file"`
	Image   string            `json:"image,omitempty"`
	Rows    int               `json:"rows"`
	Dropped int               `json:"dropped"`
	Warning string            `json:"warning,omitempty"`
}

type index struct {
	Datasets []dashboard.DatasetInfo `json:"datasets"`
	Charts   []indexEntry            `json:"charts"`
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build every chart and write one JSON file per chart plus index.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ext := strings.ToLower(strings.TrimPrefix(buildImages, "."))
		switch ext {
		case "", "svg", "png":
		default:
			return fmt.Errorf("unsupported --images: %s (use svg|png)", buildImages)
		}
		c, err := requireConfig()
		if err != nil {
			return err
		}
		in, err := loadInput(cmd.Context(), c, dashboard.Players, dashboard.Education)
		if err != nil {
			return err
		}
		res, err := dashboard.Run(in, dashboardOptions(c))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		idx := index{Datasets: res.Datasets}
		for i := range res.Charts {
			ch := &res.Charts[i]
			file := string(ch.ID) + ".json"
			if err := utils.WriteJSON(filepath.Join(buildOutDir, file), ch); err != nil {
				return fmt.Errorf("write %s: %w", file, err)
			}
			entry := indexEntry{ID: ch.ID, Title: ch.Title, Kind: ch.Kind, File: file, Rows: ch.Rows, Dropped: ch.Dropped, Warning: ch.Warning}
			if ch.Empty() {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s is empty: %s\n", ch.ID, ch.Warning)
			} else if ext != "" {
				entry.Image = string(ch.ID) + "." + ext
				if err := render.WriteFile(ch, filepath.Join(buildOutDir, entry.Image), render.Options{}); err != nil {
					return err
				}
			}
			if ch.Dropped > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s dropped %d/%d rows with missing or malformed values\n", ch.ID, ch.Dropped, ch.Rows)
			}
			idx.Charts = append(idx.Charts, entry)
		}
		if err := utils.WriteJSON(filepath.Join(buildOutDir, "index.json"), idx); err != nil {
			return fmt.Errorf("write index: %w", err)
		}
		fmt.Fprintf(out, "✓ Wrote %d charts to %s\n", len(idx.Charts), buildOutDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOutDir, "output", "o", "charts", "output directory")
	buildCmd.Flags().StringVar(&buildImages, "images", "", "also render each chart as svg or png")
}
