package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"seatrade/internal/config"
	"seatrade/internal/database"
	"seatrade/internal/services"
	"seatrade/internal/util"
)

// CreateAdminOptions holds flags for the create-admin command.
type CreateAdminOptions struct {
	*RootOptions
	Username string
	Email    string
	Password string
}

// NewCreateAdminCommand creates the create-admin command. It writes to the database
// configured by DATABASE_URL rather than going through the API.
func NewCreateAdminCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateAdminOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account in the configured database",
		Long: `Create an admin account in the configured database.

The database is selected by DATABASE_URL, as for the API server. Nothing is
changed when the username already exists.

Example:
  seatradectl create-admin --email ops@seatrade.example --password 'long-secret'`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return createAdmin(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Username, "username", "admin", "admin username")
	cmd.Flags().StringVar(&opts.Email, "email", "", "admin email address")
	cmd.Flags().StringVar(&opts.Password, "password", "", "admin password (at least 8 characters)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func createAdmin(cmd *cobra.Command, opts *CreateAdminOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close(db)

	auth := services.NewAuthService(db, util.NewTokenIssuer(cfg.Auth))
	created, err := auth.EnsureAdmin(cmd.Context(), opts.Username, opts.Email, opts.Password)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(cmd.OutOrStdout(), "Admin user %q already exists\n", opts.Username)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Admin user %q created\n", opts.Username)
	return nil
}

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	Username string
	Password string
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a bearer token",
		Long: `Log in and print a bearer token.

Example:
  export SEATRADE_TOKEN=$(seatradectl login --username admin --password 'long-secret')`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Username == "" || opts.Password == "" {
				return errors.New("--username and --password are required")
			}
			res, err := opts.api().Login(cmd.Context(), opts.Username, opts.Password)
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.AccessToken)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Username, "username", "", "admin username")
	cmd.Flags().StringVar(&opts.Password, "password", "", "admin password")

	return cmd
}
