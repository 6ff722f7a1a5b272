package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/portfolio/internal/lib/email"
)

func newEmailPreviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "email-preview [template]",
		Short: "Render an e-mail template with sample data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := email.TemplateRecordChanged
			if len(args) == 1 {
				name = email.Template(args[0])
			}

			body, err := email.Preview(name)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), body)
			return err
		},
	}
}
