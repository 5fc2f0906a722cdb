package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/family"
	kio "github.com/matzehuels/kintree/pkg/io"
)

// importCommand replaces the stored tree with a JSON or YAML file.
func (c *CLI) importCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the tree with members from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			td, err := kio.Import(args[0])
			if err != nil {
				return err
			}
			return c.mutate(cmd.Context(), func(s *session) error {
				q := fmt.Sprintf("Replace %d members with %d from %s?", s.tree.Len(), len(td.Members), args[0])
				if err := c.confirm(yes, q); err != nil {
					return err
				}
				s.tree = family.NewTree(td)
				printSuccess("Imported %d members", len(td.Members))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// exportCommand writes the tree to a JSON or YAML file, or stdout.
func (c *CLI) exportCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the tree to a JSON or YAML file (stdout if omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()
			td := s.tree.Data()

			if len(args) == 0 {
				if format == kio.FormatYAML {
					return kio.WriteYAML(td, stdout)
				}
				return kio.WriteJSON(td, stdout)
			}
			if err := kio.Export(td, args[0]); err != nil {
				return err
			}
			printSuccess("Exported %d members", len(td.Members))
			printFile(args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", kio.FormatJSON, "stdout format: json or yaml")
	return cmd
}
