package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/spatialshot/spatialshot/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in and out of your Google account",
	Long: `Sign in with Google through your browser and manage the stored profile.

Examples:
  # Sign in (opens the browser)
  spatialshot auth login

  # Show who is signed in
  spatialshot auth status

  # Sign out, keeping stored API keys
  spatialshot auth logout`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with Google",
	Long: `Opens Google's consent page in your browser and waits for the redirect
on http://localhost:3456. The command returns once the browser tab shows
the result, or when the wait times out (see 'spatialshot settings').`,
	Args: cobra.NoArgs,
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored profile",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the signed-in profile",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

var authWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the profile whenever it changes",
	Long: `Watches profile.json and prints the profile each time another process
signs in or out. Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runAuthWatch,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authWatchCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	cmd.Println(mutedStyle.Render("Opening your browser to sign in..."))

	if err := authService.StartAuth(cmd.Context()); err != nil {
		if errors.Is(err, domain.ErrAuthInProgress) {
			return errors.New("a sign-in is already in progress")
		}
		return fmt.Errorf("sign-in could not start: %w", err)
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	if err := authService.Logout(); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}

	cmd.Println("Signed out.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	profile := authService.GetProfile()
	if profile.IsGuest() {
		cmd.Println("Not signed in (" + domain.GuestName + ").")
		cmd.Println(mutedStyle.Render("Sign in with: spatialshot auth login"))
		return nil
	}

	printProfile(cmd, profile)
	return nil
}

func runAuthWatch(cmd *cobra.Command, _ []string) error {
	if profileWatcher == nil {
		return errors.New("profile watcher not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cmd.Println(mutedStyle.Render("Watching for sign-in changes. Press Ctrl+C to stop."))
	return profileWatcher.Watch(ctx, func(profile domain.UserProfile) {
		if profile.IsGuest() {
			cmd.Println("Signed out.")
			return
		}
		cmd.Printf("%s %s\n", successStyle.Render("Signed in as"), describeProfile(profile))
	})
}

func printProfile(cmd *cobra.Command, profile domain.UserProfile) {
	cmd.Println(titleStyle.Render("Signed in"))
	cmd.Printf("  Name:   %s\n", valueOrUnset(profile.Name))
	cmd.Printf("  Email:  %s\n", valueOrUnset(profile.Email))
	cmd.Printf("  Avatar: %s\n", valueOrUnset(profile.AvatarURL))
}

func valueOrUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
