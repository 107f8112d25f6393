package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/toybox/pkg/store"
	"github.com/mesh-intelligence/toybox/pkg/toybox"
	"github.com/mesh-intelligence/toybox/pkg/types"
)

var (
	errNegativePrice    = errors.New("price must not be negative")
	errNegativeQuantity = errors.New("quantity must not be negative")
)

// toyFlags holds the editable toy fields.
type toyFlags struct {
	name        string
	category    string
	price       string
	quantity    int
	description string
}

func (f *toyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "toy name")
	cmd.Flags().StringVar(&f.category, "category", "", "category")
	cmd.Flags().StringVar(&f.price, "price", "0", "unit price, e.g. 29.99")
	cmd.Flags().IntVar(&f.quantity, "quantity", 0, "quantity in stock")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
}

// apply copies the flags the user set onto t.
func (f *toyFlags) apply(cmd *cobra.Command, t *types.Toy) error {
	changed := cmd.Flags().Changed
	if changed("name") {
		t.Name = f.name
	}
	if changed("category") {
		t.Category = f.category
	}
	if changed("price") {
		p, err := parsePrice(f.price)
		if err != nil {
			return err
		}
		t.Price = p
	}
	if changed("quantity") {
		t.Quantity = f.quantity
	}
	if changed("description") {
		t.Description = f.description
	}
	return checkToy(*t)
}

func parsePrice(s string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, userError(fmt.Errorf("invalid price %q", s))
	}
	if p.IsNegative() {
		return decimal.Decimal{}, userError(errNegativePrice)
	}
	return p, nil
}

// checkToy is the input gating the toy form performed.
func checkToy(t types.Toy) error {
	if err := t.Validate(); err != nil {
		return userError(err)
	}
	if t.Quantity < 0 {
		return userError(errNegativeQuantity)
	}
	return nil
}

var toyView = kindView[types.Toy]{
	noun:   "toy",
	pick:   func(s *toybox.Shop) *store.Store[types.Toy] { return s.Toys },
	header: []string{"ID", "NAME", "CATEGORY", "PRICE", "QTY"},
	row: func(t types.Toy) []string {
		return []string{t.ID, t.Name, t.Category, t.Price.StringFixed(2), strconv.Itoa(t.Quantity)}
	},
	details: func(t types.Toy) [][2]string {
		return [][2]string{
			{"ID", t.ID},
			{"Name", t.Name},
			{"Category", t.Category},
			{"Price", t.Price.StringFixed(2)},
			{"Quantity", strconv.Itoa(t.Quantity)},
			{"Description", t.Description},
		}
	},
}

func (a *app) newToyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toy",
		Short: "Manage the toy inventory",
	}
	cmd.AddCommand(a.newToyAddCmd())
	cmd.AddCommand(newListCmd(a, toyView))
	cmd.AddCommand(newShowCmd(a, toyView))
	cmd.AddCommand(a.newToyUpdateCmd())
	cmd.AddCommand(newDeleteCmd(a, toyView))
	return cmd
}

func (a *app) newToyAddCmd() *cobra.Command {
	var f toyFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a toy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := parsePrice(f.price)
			if err != nil {
				return err
			}
			toy := types.NewToy(f.name, f.category, price, f.quantity, f.description)
			if err := checkToy(toy); err != nil {
				return err
			}

			return a.withShop(func(shop *toybox.Shop) error {
				shop.Toys.Add(toy)
				if err := checkSaved(shop.Toys); err != nil {
					return err
				}
				if a.jsonMode {
					return printJSON(cmd.OutOrStdout(), toy)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added toy %s\n", toy.ID)
				return nil
			})
		},
	}
	f.register(cmd)
	cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) newToyUpdateCmd() *cobra.Command {
	var f toyFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a toy; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withShop(func(shop *toybox.Shop) error {
				toy, err := lookup(shop.Toys, "toy", args[0])
				if err != nil {
					return err
				}
				if err := f.apply(cmd, &toy); err != nil {
					return err
				}
				shop.Toys.Update(toy)
				if err := checkSaved(shop.Toys); err != nil {
					return err
				}
				if a.jsonMode {
					return printJSON(cmd.OutOrStdout(), toy)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated toy %s\n", toy.ID)
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}
