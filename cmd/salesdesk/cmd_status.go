// Package main: session and cache status command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"salesdesk/cmd/salesdesk/ui"
)

// statusCmd shows session and cache state
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session and cache status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	g, closeFn, err := newGateway()
	if err != nil {
		return err
	}
	defer closeFn()

	styles := ui.DefaultStyles()
	fmt.Println(styles.Title.Render("salesdesk status"))
	fmt.Printf("endpoint: %s\n", cfg.Backend.Endpoint)

	if g.IsAuthenticated() {
		name := g.DisplayName()
		if name == "" {
			name = "(session restored)"
		}
		fmt.Println("session:  " + styles.Success.Render("logged in") + "  " + name)
		printPermissions(styles, g.Permissions())
	} else {
		fmt.Println("session:  " + styles.Muted.Render("logged out"))
	}

	fmt.Printf("cache:    %d menu items, %d texts, %d images, %d tooltips\n",
		g.Menu.Count(), g.Texts.Len(), g.Images.Len(), g.Tooltips.Report().Total)
	return nil
}
