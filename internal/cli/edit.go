package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
)

// memberFlags are the per-field flags shared by add and edit commands.
// Only flags given on the command line are applied; an empty value clears
// the field.
type memberFlags struct {
	first, last, gender string
	born, died          string
	bio, avatar         string
	father, mother      string
	spouse              string
}

func (f *memberFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.first, "first", "", "first name")
	fl.StringVar(&f.last, "last", "", "last name")
	fl.StringVar(&f.gender, "gender", "", "gender: male, female or other")
	fl.StringVar(&f.born, "born", "", "birth date (YYYY-MM-DD)")
	fl.StringVar(&f.died, "died", "", "death date (YYYY-MM-DD)")
	fl.StringVar(&f.bio, "bio", "", "free-text biography")
	fl.StringVar(&f.avatar, "avatar", "", "avatar image URL")
	fl.StringVar(&f.father, "father", "", "father id or id prefix")
	fl.StringVar(&f.mother, "mother", "", "mother id or id prefix")
	fl.StringVar(&f.spouse, "spouse", "", "spouse id or id prefix")
}

// apply copies every changed flag onto m, resolving relationship refs
// against t.
func (f *memberFlags) apply(cmd *cobra.Command, t *family.Tree, m family.Member) (family.Member, error) {
	changed := cmd.Flags().Changed
	set := func(name string, dst *string, v string) {
		if changed(name) {
			*dst = v
		}
	}
	set("first", &m.FirstName, f.first)
	set("last", &m.LastName, f.last)
	set("born", &m.BirthDate, f.born)
	set("died", &m.DeathDate, f.died)
	set("bio", &m.Bio, f.bio)
	set("avatar", &m.Avatar, f.avatar)

	if changed("gender") {
		g, err := family.ParseGender(f.gender)
		if err != nil {
			return m, err
		}
		m.Gender = g
	}

	for _, rel := range []struct {
		flag string
		ref  string
		dst  *string
	}{
		{"father", f.father, &m.FatherID},
		{"mother", f.mother, &m.MotherID},
		{"spouse", f.spouse, &m.SpouseID},
	} {
		if !changed(rel.flag) {
			continue
		}
		if rel.ref == "" {
			*rel.dst = ""
			continue
		}
		r, err := t.Find(rel.ref)
		if err != nil {
			return m, err
		}
		*rel.dst = r.ID
	}
	return m, nil
}

// mutate opens a session, runs fn against the tree and saves the result.
func (c *CLI) mutate(ctx context.Context, fn func(s *session) error) error {
	s, err := c.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	if err := fn(s); err != nil {
		return err
	}
	return s.save(ctx)
}

// create is the shared body of the add commands: make a member with mk,
// apply field flags, and print it.
func (c *CLI) create(cmd *cobra.Command, flags *memberFlags, mk func(t *family.Tree) (family.Member, error)) error {
	return c.mutate(cmd.Context(), func(s *session) error {
		m, err := mk(s.tree)
		if err != nil {
			return err
		}
		if m, err = flags.apply(cmd, s.tree, m); err != nil {
			return err
		}
		if err := s.tree.Save(m); err != nil {
			return err
		}
		printSuccess("Added %s", memberLabel(m))
		printNextStep("Edit details", appName+" edit "+m.ShortID()+" --first NAME")
		return nil
	})
}

// addCommand creates an unrelated member.
func (c *CLI) addCommand() *cobra.Command {
	var flags memberFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new member with no relatives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.create(cmd, &flags, func(t *family.Tree) (family.Member, error) {
				return t.AddRoot(), nil
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

// addChildCommand creates a child of an existing member.
func (c *CLI) addChildCommand() *cobra.Command {
	var flags memberFlags
	cmd := &cobra.Command{
		Use:   "add-child <parent>",
		Short: "Add a child to a member (and their spouse)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.create(cmd, &flags, func(t *family.Tree) (family.Member, error) {
				p, err := t.Find(args[0])
				if err != nil {
					return family.Member{}, err
				}
				return t.AddChild(p.ID)
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

// addParentCommand creates add-father or add-mother.
func (c *CLI) addParentCommand(g family.Gender) *cobra.Command {
	word := "father"
	add := (*family.Tree).AddFather
	if g == family.Female {
		word = "mother"
		add = (*family.Tree).AddMother
	}

	var flags memberFlags
	cmd := &cobra.Command{
		Use:   "add-" + word + " <child>",
		Short: "Add a " + word + " to a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.create(cmd, &flags, func(t *family.Tree) (family.Member, error) {
				child, err := t.Find(args[0])
				if err != nil {
					return family.Member{}, err
				}
				return add(t, child.ID)
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

// editCommand changes fields of an existing member.
func (c *CLI) editCommand() *cobra.Command {
	var flags memberFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a member's fields and relationships",
		Long: `Edit a member. Only the flags you pass are changed; pass an empty value
(e.g. --spouse "") to clear a field. Without flags the member is printed.

Setting --spouse also links the spouse back and unlinks any previous partners.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().NFlag() == 0 {
				s, err := c.openSession(cmd.Context())
				if err != nil {
					return err
				}
				defer s.close()
				m, err := s.tree.Find(args[0])
				if err != nil {
					return err
				}
				printMember(s.tree, m)
				return nil
			}
			return c.mutate(cmd.Context(), func(s *session) error {
				m, err := s.tree.Find(args[0])
				if err != nil {
					return err
				}
				if m, err = flags.apply(cmd, s.tree, m); err != nil {
					return err
				}
				if err := s.tree.Save(m); err != nil {
					return err
				}
				printSuccess("Saved %s", memberLabel(m))
				return nil
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

// deleteCommand removes a member after confirmation.
func (c *CLI) deleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a member and unlink everyone who referenced them",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutate(cmd.Context(), func(s *session) error {
				m, err := s.tree.Find(args[0])
				if err != nil {
					return err
				}
				if err := c.confirm(yes, "Delete "+m.FullName()+"?"); err != nil {
					return err
				}
				if err := s.tree.Delete(m.ID); err != nil {
					return err
				}
				printSuccess("Deleted %s", memberLabel(m))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// resetCommand replaces the stored tree with the built-in seed.
func (c *CLI) resetCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the stored tree and start over from the sample family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openSession(ctx)
			if err != nil {
				return err
			}
			defer s.close()

			if err := c.confirm(yes, fmt.Sprintf("Discard all %d members?", s.tree.Len())); err != nil {
				return err
			}
			if err := s.store.Reset(ctx); err != nil {
				return err
			}
			printSuccess("Reset to the sample family")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// confirm asks question unless yes is set. A declined or impossible prompt
// returns an ErrCodeDeclined error.
func (c *CLI) confirm(yes bool, question string) error {
	if yes {
		return nil
	}
	if !c.interactive() {
		return errors.New(errors.ErrCodeDeclined, "%s pass --yes to confirm in non-interactive mode", question)
	}
	ok, err := c.prompt(question)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(errors.ErrCodeDeclined, "cancelled")
	}
	return nil
}
