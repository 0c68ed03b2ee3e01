// Package main: menu rendering command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"salesdesk/cmd/salesdesk/ui"
)

var menuRefresh bool

// menuCmd renders the menu tree
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show the menu tree",
	Long: `Renders the hierarchical menu as a tree. By default the cached
snapshot is shown; --refresh re-runs the init fetch first.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, args []string) error {
	g, closeFn, err := newGateway()
	if err != nil {
		return err
	}
	defer closeFn()

	if menuRefresh || g.Menu.Count() == 0 {
		if err := g.AppInit(cmd.Context()); err != nil {
			if g.Menu.Count() == 0 {
				return err
			}
			fmt.Println(ui.DefaultStyles().Warning.Render("⚠ refresh failed, showing cached menu"))
		}
	}

	roots := g.Menu.Roots()
	if len(roots) == 0 {
		fmt.Println("Menu is empty. Run 'salesdesk init' after logging in.")
		return nil
	}

	fmt.Print(ui.RenderMenuTree(ui.DefaultStyles(), roots))
	fmt.Printf("\n%d menu items\n", g.Menu.Count())
	return nil
}

func init() {
	menuCmd.Flags().BoolVar(&menuRefresh, "refresh", false, "re-fetch the menu before rendering")
}
