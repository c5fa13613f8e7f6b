package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"seatrade/internal/client"
	"seatrade/internal/validation"
)

// NewTestimonialsCommand groups the testimonial commands.
func NewTestimonialsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testimonials",
		Short: "Submit testimonials",
	}
	cmd.AddCommand(newTestimonialsSubmitCommand(rootOpts))
	return cmd
}

func newTestimonialsSubmitCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		values  validation.TestimonialInput
		company string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a testimonial for review",
		Long: `Submit a testimonial for review. It appears on the site once an admin
approves it.

Example:
  seatradectl testimonials submit --name "Ana Lima" --rating 5 \
    --content "Excellent frozen squid, always on time."`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := client.NewTestimonialForm(rootOpts.api(), client.NewCache())
			form.Values = values
			form.Values.Company = optional(company)

			if err := form.Submit(cmd.Context()); err != nil {
				var fieldErrs validation.Errors
				if errors.As(err, &fieldErrs) {
					for _, fe := range fieldErrs {
						fmt.Fprintf(cmd.ErrOrStderr(), "  --%s: %s\n", fe.Field, fe.Message)
					}
					return errors.New("testimonial is invalid")
				}
				return errors.New(form.ErrorMessage)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Thank you! Your testimonial will appear once it has been reviewed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&values.Name, "name", "", "your name")
	cmd.Flags().StringVar(&company, "company", "", "your company")
	cmd.Flags().StringVar(&values.Content, "content", "", "testimonial text (at least 10 characters)")
	cmd.Flags().IntVar(&values.Rating, "rating", 0, "rating from 1 to 5")

	return cmd
}
