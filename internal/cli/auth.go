package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/app"
	"github.com/taskdeck/taskdeck/internal/infra/token"
)

// newLoginCommand creates the login command.
func newLoginCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Username    string
		Password    string
		GoogleToken string
	}

	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Log in to the task service",
		GroupID: groupAuth,
		Long: `Log in with a username (or email) and password, or with a Google
ID token obtained from your identity provider.

Examples:
  taskdeck login --username demo@example.com --password demo123
  taskdeck login --google-token "$ID_TOKEN"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.GoogleToken != "" {
				session, err := c.Sessions.GoogleLogin(cmd.Context(), opts.GoogleToken)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", session.Identity.DisplayName())
				return nil
			}

			if opts.Username == "" || opts.Password == "" {
				return fmt.Errorf("required flag(s) \"username\", \"password\" not set")
			}
			session, err := c.Sessions.Login(cmd.Context(), opts.Username, opts.Password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", session.Identity.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Username, "username", "u", "", "Username or email")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "Password")
	cmd.Flags().StringVar(&opts.GoogleToken, "google-token", "", "Google ID token for federated login")

	return cmd
}

// newRegisterCommand creates the register command.
func newRegisterCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name     string
		Email    string
		Password string
	}

	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Create an account and log in",
		GroupID: groupAuth,
		Long: `Create a new account. On success you are logged in immediately
with the same credentials.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Email == "" || opts.Password == "" {
				return fmt.Errorf("required flag(s) \"email\", \"password\" not set")
			}
			session, err := c.Sessions.Register(cmd.Context(), opts.Name, opts.Email, opts.Password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s\n", session.Identity.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Display name (optional)")
	cmd.Flags().StringVar(&opts.Email, "email", "", "Email address (used as the login identifier)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "Password")

	return cmd
}

// newLogoutCommand creates the logout command.
func newLogoutCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "logout",
		Short:   "Log out and forget the stored session",
		GroupID: groupAuth,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.Sessions.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// newWhoamiCommand creates the whoami command.
func newWhoamiCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Short:   "Show the current session",
		GroupID: groupAuth,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, ok := c.Sessions.Current()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Username: %s\n", session.Identity.Username)
			fmt.Fprintf(out, "Email:    %s\n", session.Identity.Email)
			if session.Identity.Name != "" {
				fmt.Fprintf(out, "Name:     %s\n", session.Identity.Name)
			}
			if exp, ok := token.Expiry(session.Token); ok {
				fmt.Fprintf(out, "Token expires: %s\n", exp.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
