package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/layout"
)

// listCommand creates the flat table view.
func (c *CLI) listCommand() *cobra.Command {
	var gender string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all members as a table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter family.Gender
			if gender != "" {
				g, err := family.ParseGender(gender)
				if err != nil {
					return err
				}
				filter = g
			}
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			members := s.tree.Members()
			if filter != "" {
				members = filterMembers(members, func(m family.Member) bool { return m.Gender == filter })
			}
			if len(members) == 0 {
				printInfo("No members")
				return nil
			}
			fmt.Fprintln(stdout, memberTable(s.tree, members))
			printDetail("%d of %d members", len(members), s.tree.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&gender, "gender", "", "only list members of this gender (male, female, other)")
	return cmd
}

// timelineCommand lists members by birth date.
func (c *CLI) timelineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "List members ordered by birth date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			for _, m := range family.Timeline(s.tree.Members()) {
				born := m.BirthDate
				if born == "" {
					born = "----------"
				}
				fmt.Fprintln(stdout, StyleDim.Render(born)+"  "+memberLabel(m))
			}
			return nil
		},
	}
}

// rootsCommand lists the members the diagram starts from.
func (c *CLI) rootsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "roots",
		Short: "List the top-level members of the diagram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			for _, m := range family.Roots(s.tree.Members()) {
				fmt.Fprintln(stdout, memberLabel(m))
			}
			return nil
		},
	}
}

// treeCommand prints the diagram structure as an indented outline.
func (c *CLI) treeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the family diagram as an outline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			forest, _ := layout.Compute(cmd.Context(), s.tree.Members(), s.cfg.Layout)
			for _, root := range forest.Roots {
				fmt.Fprintln(stdout, outline(root).String())
			}
			if len(forest.Unplaced) > 0 {
				printWarning("%d members are not reachable from any root: %s",
					len(forest.Unplaced), strings.Join(forest.Unplaced, ", "))
			}
			return nil
		},
	}
}

// outline converts a layout node into a lipgloss tree.
func outline(n *layout.Node) *tree.Tree {
	t := tree.Root(coupleLabel(n)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)
	for _, child := range n.Children {
		t.Child(outline(child))
	}
	return t
}

func coupleLabel(n *layout.Node) string {
	label := memberLabel(n.Member)
	if n.Spouse != nil {
		label += StyleDim.Render(" ⚭ ") + memberLabel(*n.Spouse)
	}
	return label
}

// memberTable renders members as a bordered table.
func memberTable(t *family.Tree, members []family.Member) string {
	name := func(id string) string {
		if id == "" {
			return ""
		}
		if m, ok := t.Get(id); ok {
			return m.FullName()
		}
		return "? " + id
	}

	rows := make([][]string, len(members))
	for i, m := range members {
		rows[i] = []string{m.ShortID(), m.FullName(), string(m.Gender), m.Lifespan(),
			name(m.FatherID), name(m.MotherID), name(m.SpouseID)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Gender", "Life", "Father", "Mother", "Spouse").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case row >= len(members):
				return base
			case col == 0:
				return base.Foreground(colorDim)
			case col == 1:
				return base.Inherit(genderStyle(members[row].Gender))
			}
			return base
		}).
		String()
}

func filterMembers(members []family.Member, keep func(family.Member) bool) []family.Member {
	var out []family.Member
	for _, m := range members {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
