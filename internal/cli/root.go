// Package cli implements seatradectl, the admin command line for the Seatrade API.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"seatrade/internal/client"
)

const defaultAPIURL = "http://localhost:8000"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	APIURL string
	Token  string
	Format string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for seatradectl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "seatradectl",
		Short: "Manage the Seatrade site from the command line",
		Long:  "Submit inquiries and testimonials, and manage inquiries as an admin, through the Seatrade API.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", envOr("SEATRADE_API_URL", defaultAPIURL), "API base URL (env SEATRADE_API_URL)")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", os.Getenv("SEATRADE_TOKEN"), "bearer token (env SEATRADE_TOKEN)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewCreateAdminCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewInquiriesCommand(opts))
	cmd.AddCommand(NewTestimonialsCommand(opts))

	return cmd
}

func (o *RootOptions) api() *client.API {
	if o.Token == "" {
		return client.NewAPI(o.APIURL)
	}
	return client.NewAPI(o.APIURL, client.WithToken(o.Token))
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid inquiry id %q", raw)
	}
	return uint(id), nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
