package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"seatrade/internal/client"
	"seatrade/internal/domain"
	"seatrade/internal/validation"
)

// NewInquiriesCommand groups the inquiry commands.
func NewInquiriesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inquiries",
		Short: "Submit and manage contact inquiries",
	}

	cmd.AddCommand(newInquiriesListCommand(rootOpts))
	cmd.AddCommand(newInquiriesShowCommand(rootOpts))
	cmd.AddCommand(newInquiriesSetStatusCommand(rootOpts))
	cmd.AddCommand(newInquiriesDeleteCommand(rootOpts))
	cmd.AddCommand(newInquiriesSubmitCommand(rootOpts))

	return cmd
}

func (o *RootOptions) manager(cmd *cobra.Command, confirmer client.Confirmer) *client.InquiryManager {
	notifier := client.WriterNotifier{Out: cmd.OutOrStdout()}
	return client.NewInquiryManager(o.api(), client.NewCache(), notifier, confirmer)
}

// InquiriesListOptions holds flags for the inquiries list command.
type InquiriesListOptions struct {
	*RootOptions
	Status string
	Search string
	Sort   string
}

func newInquiriesListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InquiriesListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inquiries",
		Long: `List inquiries, optionally filtered by status and a search term.

The search term matches first name, last name, email, company and message,
ignoring case.

Example:
  seatradectl inquiries list --status new --search shrimp --sort oldest`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listInquiries(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", client.StatusAll, "status filter (all|new|replied|resolved)")
	cmd.Flags().StringVar(&opts.Search, "search", "", "free-text search")
	cmd.Flags().StringVar(&opts.Sort, "sort", string(client.SortNewest), "sort order (newest|oldest|name)")

	return cmd
}

func listInquiries(cmd *cobra.Command, opts *InquiriesListOptions) error {
	if opts.Status != client.StatusAll {
		if msg := validation.StatusProblem(opts.Status); msg != "" {
			return fmt.Errorf("--status %s or all", msg)
		}
	}
	order, err := client.ParseSortOrder(opts.Sort)
	if err != nil {
		return err
	}

	m := opts.manager(cmd, nil)
	if _, err := m.Load(cmd.Context()); err != nil {
		return err
	}
	visible := m.Visible(client.Filter{Status: opts.Status, Search: opts.Search}, order)

	if opts.Format == "json" {
		return printJSON(cmd.OutOrStdout(), visible)
	}
	if len(visible) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No inquiries found.")
		return nil
	}
	return writeInquiryTable(cmd.OutOrStdout(), visible)
}

func writeInquiryTable(w io.Writer, list []domain.Inquiry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRECEIVED\tNAME\tEMAIL\tTOPIC\tSTATUS")
	for _, inq := range list {
		topic := "-"
		if inq.Topic != nil {
			topic = string(*inq.Topic)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			inq.ID, inq.CreatedAt.Format("2006-01-02 15:04"), inq.FullName(), inq.Email, topic, inq.Status)
	}
	return tw.Flush()
}

func newInquiriesShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "show <id>",
		Short:        "Show one inquiry in full",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			m := rootOpts.manager(cmd, nil)
			if _, err := m.Load(cmd.Context()); err != nil {
				return err
			}
			if !m.Open(id) {
				return fmt.Errorf("inquiry %d not found", id)
			}
			inq, _ := m.Detail()
			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), inq)
			}
			writeInquiryDetail(cmd.OutOrStdout(), inq)
			return nil
		},
	}
}

func writeInquiryDetail(w io.Writer, inq domain.Inquiry) {
	fmt.Fprintf(w, "Inquiry #%d (%s)\n", inq.ID, inq.Status)
	fmt.Fprintf(w, "Received: %s\n", inq.CreatedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(w, "From:     %s <%s>\n", inq.FullName(), inq.Email)
	if inq.Phone != nil {
		fmt.Fprintf(w, "Phone:    %s\n", *inq.Phone)
	}
	if inq.Company != nil {
		fmt.Fprintf(w, "Company:  %s\n", *inq.Company)
	}
	if inq.Topic != nil {
		fmt.Fprintf(w, "Topic:    %s\n", *inq.Topic)
	}
	fmt.Fprintf(w, "\n%s\n", inq.Message)
}

func newInquiriesSetStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "set-status <id> <new|replied|resolved>",
		Short:        "Change the status of an inquiry",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return rootOpts.manager(cmd, nil).SetStatus(cmd.Context(), id, strings.ToLower(args[1]))
		},
	}
}

func newInquiriesDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:          "delete <id>",
		Short:        "Delete an inquiry permanently",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var confirmer client.Confirmer = client.PromptConfirmer{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			if yes {
				confirmer = client.ConfirmFunc(func(string) bool { return true })
			}
			deleted, err := rootOpts.manager(cmd, confirmer).Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

// InquirySubmitOptions holds flags for the inquiries submit command.
type InquirySubmitOptions struct {
	*RootOptions
	Values  validation.InquiryInput
	Phone   string
	Company string
	Topic   string
	Product string
}

func newInquiriesSubmitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InquirySubmitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send a contact inquiry",
		Long: `Send a contact inquiry as a site visitor would.

With --product the topic is set to "product" and the message defaults to a
request for pricing and availability of that product.

Example:
  seatradectl inquiries submit --first-name Jane --last-name Doe \
    --email jane@example.com --product "Yellowfin Tuna"`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return submitInquiry(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Values.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&opts.Values.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&opts.Values.Email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.Values.Message, "message", "", "message")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&opts.Company, "company", "", "company")
	cmd.Flags().StringVar(&opts.Topic, "topic", "", "topic ("+strings.Join(topicNames(), "|")+")")
	cmd.Flags().StringVar(&opts.Product, "product", "", "product the inquiry is about")

	return cmd
}

func submitInquiry(cmd *cobra.Command, opts *InquirySubmitOptions) error {
	notifier := client.WriterNotifier{Out: cmd.OutOrStdout()}
	api := opts.api()

	form := client.NewInquiryForm(api, notifier)
	if opts.Product != "" {
		form = client.NewProductInquiryForm(api, notifier, opts.Product)
	}
	if opts.Values.Message == "" {
		opts.Values.Message = form.Values.Message
	}
	if opts.Topic == "" && form.Values.Topic != nil {
		opts.Topic = *form.Values.Topic
	}
	form.Values = opts.Values
	form.Values.Phone = optional(opts.Phone)
	form.Values.Company = optional(opts.Company)
	form.Values.Topic = optional(opts.Topic)

	created, err := form.Submit(cmd.Context())
	if err != nil {
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				fmt.Fprintf(cmd.ErrOrStderr(), "  --%s: %s\n", flagName(fe.Field), fe.Message)
			}
			return errors.New("inquiry is invalid")
		}
		return err
	}

	if opts.Format == "json" {
		return printJSON(cmd.OutOrStdout(), created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Inquiry #%d received\n", created.ID)
	return nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// flagName converts a camelCase field name to its kebab-case flag.
func flagName(field string) string {
	var b strings.Builder
	for _, r := range field {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func topicNames() []string {
	names := make([]string, len(domain.Topics))
	for i, t := range domain.Topics {
		names[i] = string(t)
	}
	return names
}
