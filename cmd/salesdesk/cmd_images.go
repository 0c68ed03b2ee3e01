// Package main: image resolution commands.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"salesdesk/cmd/salesdesk/ui"
)

var imagesRefresh bool

// imagesCmd resolves image identifiers
var imagesCmd = &cobra.Command{
	Use:   "images [identifier]",
	Short: "Resolve an image identifier",
	Long: `With an identifier, resolves it through the layered lookup (cache
variants, then the asset path convention) and prints the result. Without
one, prints the cache size. --refresh re-fetches the image catalog
first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImages,
}

func runImages(cmd *cobra.Command, args []string) error {
	g, closeFn, err := newGateway()
	if err != nil {
		return err
	}
	defer closeFn()

	if imagesRefresh {
		if _, err := g.ImageCatalog(cmd.Context()); err != nil {
			return err
		}
	}

	styles := ui.DefaultStyles()
	if len(args) == 0 {
		fmt.Printf("%d cached images\n", g.Images.Len())
		return nil
	}

	identifier := args[0]
	resolved := g.Images.Resolve(identifier)
	if resolved == "" {
		fmt.Println(styles.Warning.Render("no image for " + identifier))
		return nil
	}
	if len(resolved) > 64 {
		// Data URLs are long; show the payload size instead.
		fmt.Printf("%s → inline image (%d bytes)\n", identifier, len(resolved))
		return nil
	}
	fmt.Printf("%s → %s\n", identifier, resolved)
	return nil
}

func init() {
	imagesCmd.Flags().BoolVar(&imagesRefresh, "refresh", false, "re-fetch the image catalog first")
}
