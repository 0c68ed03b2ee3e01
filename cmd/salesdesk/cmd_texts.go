// Package main: UI text lookup commands.
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"salesdesk/cmd/salesdesk/ui"
)

var textParams []string

// textsCmd looks up UI texts
var textsCmd = &cobra.Command{
	Use:   "texts [name]",
	Short: "Look up cached UI texts",
	Long: `With a name argument, resolves that text (applying --param
substitutions). Without one, lists all cached texts.

Parameters are NAME=value pairs; placeholders in the text look like
##NAME##.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTexts,
}

func runTexts(cmd *cobra.Command, args []string) error {
	g, closeFn, err := newGateway()
	if err != nil {
		return err
	}
	defer closeFn()

	if len(args) == 1 {
		params := make(map[string]string, len(textParams))
		for _, p := range textParams {
			name, value, ok := strings.Cut(p, "=")
			if !ok {
				return fmt.Errorf("invalid --param %q, want NAME=value", p)
			}
			params[name] = value
		}
		fmt.Println(g.Texts.Get(args[0], "", params))
		return nil
	}

	entries := g.Texts.Entries()
	if len(entries) == 0 {
		fmt.Println("No cached texts. Run 'salesdesk init' after logging in.")
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	table := ui.NewSimpleTable("UI texts", []string{"Name", "Caption"})
	for _, e := range entries {
		table.AddRow(e.Name, e.Caption)
	}
	printTable(ui.DefaultStyles(), table, len(entries))
	return nil
}

func init() {
	textsCmd.Flags().StringArrayVar(&textParams, "param", nil, "placeholder substitution, NAME=value (repeatable)")
}
