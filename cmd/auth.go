package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/vibe-coding/vibedocs/internal/auth"
)

var (
	authPassword string
	authName     string
	authTheme    string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in to the portal (mock authentication)",
	Long: `Manage the signed-in profile. Any email and password are accepted;
the profile is derived from the email and kept in local storage.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in with an email address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSignIn(cmd, args[0], false)
	},
}

var authSignupCmd = &cobra.Command{
	Use:   "signup <email>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSignIn(cmd, args[0], true)
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.auth.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		u, ok := a.auth.Current()
		if !ok {
			fmt.Println("Not signed in. Run `vibedocs auth login <email>`.")
			return nil
		}
		printUser(u)
		return nil
	},
}

var authProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update the signed-in profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		var patch auth.ProfilePatch
		if cmd.Flags().Changed("name") {
			patch.Name = &authName
		}
		if cmd.Flags().Changed("theme") {
			u, ok := a.auth.Current()
			if !ok {
				return auth.ErrNotSignedIn
			}
			prefs := u.Preferences
			prefs.Theme = authTheme
			patch.Preferences = &prefs
		}
		u, err := a.auth.UpdateProfile(cmd.Context(), patch)
		if err != nil {
			return err
		}
		printUser(u)
		return nil
	},
}

func runSignIn(cmd *cobra.Command, email string, signup bool) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	password := authPassword
	if password == "" {
		prompt := promptui.Prompt{Label: "Password", Mask: '*'}
		if password, err = prompt.Run(); err != nil {
			return fmt.Errorf("password: %w", err)
		}
	}

	var u auth.User
	if signup {
		u, err = a.auth.Signup(cmd.Context(), email, password, authName)
	} else {
		u, err = a.auth.Login(cmd.Context(), email, password)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s.\n\n", u.Name)
	printUser(u)
	return nil
}

func printUser(u auth.User) {
	fmt.Printf("Name:   %s\n", u.Name)
	fmt.Printf("Email:  %s\n", u.Email)
	fmt.Printf("ID:     %s\n", u.ID)
	fmt.Printf("Avatar: %s\n", u.Avatar)
	fmt.Printf("Theme:  %s   Language: %s   Notifications: %t\n",
		u.Preferences.Theme, u.Preferences.Language, u.Preferences.Notifications)
	fmt.Printf("Progress: %d tutorials completed, %d snippets saved, %d searches\n",
		u.Progress.CompletedTutorials, u.Progress.SavedSnippets, u.Progress.SearchQueries)
}

func init() {
	for _, c := range []*cobra.Command{authLoginCmd, authSignupCmd} {
		c.Flags().StringVar(&authPassword, "password", "", "Password (prompted when omitted)")
	}
	authSignupCmd.Flags().StringVar(&authName, "name", "", "Display name (defaults to the email's local part)")
	authProfileCmd.Flags().StringVar(&authName, "name", "", "New display name")
	authProfileCmd.Flags().StringVar(&authTheme, "theme", "", "Theme preference (light or dark)")

	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd, authSignupCmd, authLogoutCmd, authWhoamiCmd, authProfileCmd)
}
