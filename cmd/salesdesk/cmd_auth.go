// Package main: authentication and startup commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"salesdesk/cmd/salesdesk/ui"
	"salesdesk/internal/types"
)

var (
	loginPassword     string
	loginShowTemplate bool
)

// loginCmd authenticates against the backend
var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in to the backend",
	Long: `Authenticates against the backend and stores the session token in
the local cache for later commands.

The password is taken from --password or the SALESDESK_PASSWORD
environment variable. With --template, only the login mask fields are
fetched and printed; no credentials are sent.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

// logoutCmd ends the session
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear cached session state",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

// initCmd warms the caches after login
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Fetch menu, texts, permissions and images",
	Long: `Runs the application bootstrap: the init fetch (menu, texts,
permissions) and the image catalog fetch in parallel, then persists the
results as the last-known-good snapshot.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runLogin(cmd *cobra.Command, args []string) error {
	g, closeFn, err := newGateway()
	if err != nil {
		return err
	}
	defer closeFn()

	if loginShowTemplate {
		fields, err := g.LoginTemplate(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(ui.DefaultStyles().Title.Render("Login fields"))
		for _, f := range fields {
			fmt.Printf("  %s  %s\n", f.Name, f.Caption)
		}
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("username required")
	}
	username := args[0]
	password := loginPassword
	if password == "" {
		password = os.Getenv("SALESDESK_PASSWORD")
	}
	if password == "" {
		return fmt.Errorf("no password given: use --password or SALESDESK_PASSWORD")
	}

	// Pre-init texts carry pre-auth captions (error messages, mask
	// labels); their absence never blocks the login itself.
	if _, err := g.PreInitCaptions(cmd.Context()); err != nil {
		logger.Debug("pre-init captions unavailable", zap.Error(err))
	}

	res, err := g.Login(cmd.Context(), username, password)
	if err != nil {
		return err
	}

	styles := ui.DefaultStyles()
	fmt.Println(styles.Success.Render("✅ Logged in as " + res.DisplayName))
	if res.IsSupplier {
		fmt.Println(styles.Muted.Render("   supplier account"))
	}
	for _, m := range res.Messages {
		fmt.Println(styles.Info.Render("   " + m.Caption))
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	g, closeFn, err := newGateway()
	if err != nil {
		return err
	}
	defer closeFn()

	if !g.IsAuthenticated() {
		fmt.Println("Not logged in.")
		return nil
	}

	if err := g.Logout(cmd.Context()); err != nil {
		// Local state is cleared regardless; the backend call failing is
		// worth a warning, not a failed exit.
		logger.Warn("backend logout failed", zap.Error(err))
	}
	fmt.Println(ui.DefaultStyles().Success.Render("✅ Logged out"))
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	g, closeFn, err := newGateway()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := g.Bootstrap(cmd.Context()); err != nil {
		return err
	}

	styles := ui.DefaultStyles()
	fmt.Println(styles.Success.Render("✅ Initialized"))
	fmt.Printf("   %d menu items, %d texts, %d images\n",
		g.Menu.Count(), g.Texts.Len(), g.Images.Len())
	printPermissions(styles, g.Permissions())
	return nil
}

func printPermissions(styles ui.Styles, p types.Permissions) {
	onOff := func(b bool) string {
		if b {
			return styles.Success.Render("on")
		}
		return styles.Muted.Render("off")
	}
	fmt.Printf("   activity %s  order %s  pos %s\n",
		onOff(p.ShowActivity), onOff(p.ShowOrder), onOff(p.ShowPOS))
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prefer SALESDESK_PASSWORD)")
	loginCmd.Flags().BoolVar(&loginShowTemplate, "template", false, "fetch and print the login mask fields only")
}
