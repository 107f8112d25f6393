package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/toybox/pkg/store"
	"github.com/mesh-intelligence/toybox/pkg/toybox"
	"github.com/mesh-intelligence/toybox/pkg/types"
)

// kindView tells the shared list, show, and delete commands how to reach and
// render one entity kind.
type kindView[T types.Entity] struct {
	noun    string
	pick    func(*toybox.Shop) *store.Store[T]
	header  []string
	row     func(T) []string
	details func(T) [][2]string
}

// checkSaved surfaces a failed write after a mutation. The store itself
// keeps going on a failed write; the CLI reports it.
func checkSaved[T types.Entity](s *store.Store[T]) error {
	if err := s.Err(); err != nil {
		return sysError(err)
	}
	return nil
}

// lookup returns the entity with the given ID or a user error.
func lookup[T types.Entity](s *store.Store[T], noun, id string) (T, error) {
	e, ok := s.Get(id)
	if !ok {
		return e, userError(fmt.Errorf("%s %q: %w", noun, id, types.ErrNotFound))
	}
	return e, nil
}

func newListCmd[T types.Entity](a *app, v kindView[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List all %ss in the order they were added", v.noun),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withShop(func(shop *toybox.Shop) error {
				items := v.pick(shop).All()
				if a.jsonMode {
					return printJSON(cmd.OutOrStdout(), items)
				}
				rows := make([][]string, len(items))
				for i, e := range items {
					rows[i] = append([]string{strconv.Itoa(i + 1)}, v.row(e)...)
				}
				return printTable(cmd.OutOrStdout(), append([]string{"#"}, v.header...), rows)
			})
		},
	}
}

func newShowCmd[T types.Entity](a *app, v kindView[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: fmt.Sprintf("Show one %s", v.noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withShop(func(shop *toybox.Shop) error {
				e, err := lookup(v.pick(shop), v.noun, args[0])
				if err != nil {
					return err
				}
				if a.jsonMode {
					return printJSON(cmd.OutOrStdout(), e)
				}
				return printFields(cmd.OutOrStdout(), v.details(e))
			})
		},
	}
}

// newDeleteCmd removes by ID (toybox <kind> delete <id>) or by list position
// (toybox <kind> delete --at 2 --at 3), the two removal paths of the store.
func newDeleteCmd[T types.Entity](a *app, v kindView[T]) *cobra.Command {
	var positions []int

	cmd := &cobra.Command{
		Use:   "delete [<id>]",
		Short: fmt.Sprintf("Delete a %s by ID or by list position", v.noun),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == (len(positions) > 0) {
				return userError(fmt.Errorf("give either an id or --at, not both"))
			}
			return a.withShop(func(shop *toybox.Shop) error {
				s := v.pick(shop)
				if len(args) == 1 {
					e, err := lookup(s, v.noun, args[0])
					if err != nil {
						return err
					}
					s.Delete(e)
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", v.noun, e.EntityID())
					return checkSaved(s)
				}

				// List positions are 1-based; the store counts from 0.
				n := s.Len()
				offsets := make([]int, len(positions))
				for i, p := range positions {
					if p < 1 || p > n {
						return userError(fmt.Errorf("position %d: %w (have %d %ss)", p, types.ErrPositionInvalid, n, v.noun))
					}
					offsets[i] = p - 1
				}
				before := n
				s.DeleteAt(offsets...)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d %s(s)\n", before-s.Len(), v.noun)
				return checkSaved(s)
			})
		},
	}

	cmd.Flags().IntSliceVar(&positions, "at", nil, "list position(s) to delete, as shown by list (1-based)")
	return cmd
}
