// Package main: tooltip corpus report command.
package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"salesdesk/cmd/salesdesk/ui"
)

var tooltipsJSON bool

// tooltipsCmd reports tooltip corpus statistics
var tooltipsCmd = &cobra.Command{
	Use:   "tooltips",
	Short: "Report statistics over the menu tooltips",
	Args:  cobra.NoArgs,
	RunE:  runTooltips,
}

func runTooltips(cmd *cobra.Command, args []string) error {
	g, closeFn, err := newGateway()
	if err != nil {
		return err
	}
	defer closeFn()

	stats := g.Tooltips.Report()
	if stats.Total == 0 {
		fmt.Println("No tooltips cached. Run 'salesdesk init' after logging in.")
		return nil
	}

	if tooltipsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	styles := ui.DefaultStyles()
	fmt.Println(styles.Title.Render("Tooltips"))
	fmt.Printf("total %d, distinct %d, average length %.1f\n",
		stats.Total, stats.Distinct, stats.AverageLength)
	fmt.Printf("longest:  %s\n", stats.Longest)
	fmt.Printf("shortest: %s\n", stats.Shortest)

	categories := make([]string, 0, len(stats.ByCategory))
	for name := range stats.ByCategory {
		categories = append(categories, name)
	}
	sort.Strings(categories)
	for _, name := range categories {
		fmt.Printf("  %-14s %d\n", name, stats.ByCategory[name])
	}
	return nil
}

func init() {
	tooltipsCmd.Flags().BoolVar(&tooltipsJSON, "json", false, "emit the report as JSON")
}
