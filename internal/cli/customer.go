package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/toybox/pkg/store"
	"github.com/mesh-intelligence/toybox/pkg/toybox"
	"github.com/mesh-intelligence/toybox/pkg/types"
)

// customerFlags holds the editable customer fields.
type customerFlags struct {
	name    string
	contact string
	address string
}

func (f *customerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "customer name")
	cmd.Flags().StringVar(&f.contact, "contact", "", "phone number or email")
	cmd.Flags().StringVar(&f.address, "address", "", "postal address")
}

func (f *customerFlags) apply(cmd *cobra.Command, c *types.Customer) error {
	changed := cmd.Flags().Changed
	if changed("name") {
		c.Name = f.name
	}
	if changed("contact") {
		c.ContactInfo = f.contact
	}
	if changed("address") {
		c.Address = f.address
	}
	if err := c.Validate(); err != nil {
		return userError(err)
	}
	return nil
}

var customerView = kindView[types.Customer]{
	noun:   "customer",
	pick:   func(s *toybox.Shop) *store.Store[types.Customer] { return s.Customers },
	header: []string{"ID", "NAME", "CONTACT", "ADDRESS"},
	row: func(c types.Customer) []string {
		return []string{c.ID, c.Name, c.ContactInfo, c.Address}
	},
	details: func(c types.Customer) [][2]string {
		return [][2]string{
			{"ID", c.ID},
			{"Name", c.Name},
			{"Contact", c.ContactInfo},
			{"Address", c.Address},
		}
	},
}

func (a *app) newCustomerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}
	cmd.AddCommand(a.newCustomerAddCmd())
	cmd.AddCommand(newListCmd(a, customerView))
	cmd.AddCommand(newShowCmd(a, customerView))
	cmd.AddCommand(a.newCustomerUpdateCmd())
	cmd.AddCommand(newDeleteCmd(a, customerView))
	return cmd
}

func (a *app) newCustomerAddCmd() *cobra.Command {
	var f customerFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := types.NewCustomer(f.name, f.contact, f.address)
			if err := c.Validate(); err != nil {
				return userError(err)
			}

			return a.withShop(func(shop *toybox.Shop) error {
				shop.Customers.Add(c)
				if err := checkSaved(shop.Customers); err != nil {
					return err
				}
				if a.jsonMode {
					return printJSON(cmd.OutOrStdout(), c)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added customer %s\n", c.ID)
				return nil
			})
		},
	}
	f.register(cmd)
	cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) newCustomerUpdateCmd() *cobra.Command {
	var f customerFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a customer; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withShop(func(shop *toybox.Shop) error {
				c, err := lookup(shop.Customers, "customer", args[0])
				if err != nil {
					return err
				}
				if err := f.apply(cmd, &c); err != nil {
					return err
				}
				shop.Customers.Update(c)
				if err := checkSaved(shop.Customers); err != nil {
					return err
				}
				if a.jsonMode {
					return printJSON(cmd.OutOrStdout(), c)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated customer %s\n", c.ID)
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}
