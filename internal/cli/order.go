package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/toybox/pkg/store"
	"github.com/mesh-intelligence/toybox/pkg/toybox"
	"github.com/mesh-intelligence/toybox/pkg/types"
)

// orderFlags holds the editable order fields. The order date is fixed at
// creation and has no flag.
type orderFlags struct {
	toy      string
	customer string
	quantity int
	status   string
	payment  string
}

func (f *orderFlags) register(cmd *cobra.Command, withStatus bool) {
	cmd.Flags().StringVar(&f.toy, "toy", "", "toy name")
	cmd.Flags().StringVar(&f.customer, "customer", "", "customer name")
	cmd.Flags().IntVar(&f.quantity, "quantity", 1, "number of items")
	if withStatus {
		cmd.Flags().StringVar(&f.status, "status", "", "Pending or Completed")
		cmd.Flags().StringVar(&f.payment, "payment", "", "Unpaid or Paid")
	}
}

func (f *orderFlags) apply(cmd *cobra.Command, o *types.Order) error {
	changed := cmd.Flags().Changed
	if changed("toy") {
		o.ToyName = f.toy
	}
	if changed("customer") {
		o.CustomerName = f.customer
	}
	if changed("quantity") {
		o.SetQuantity(f.quantity)
	}
	if changed("status") {
		if err := o.SetStatus(types.OrderStatus(f.status)); err != nil {
			return userError(fmt.Errorf("%w %q", err, f.status))
		}
	}
	if changed("payment") {
		if err := o.SetPaymentStatus(types.PaymentStatus(f.payment)); err != nil {
			return userError(fmt.Errorf("%w %q", err, f.payment))
		}
	}
	return checkOrder(*o)
}

// checkOrder is the input gating the order form performed.
func checkOrder(o types.Order) error {
	if err := o.Validate(); err != nil {
		return userError(err)
	}
	if o.Quantity < 1 {
		return userError(types.ErrInvalidQuantity)
	}
	return nil
}

var orderView = kindView[types.Order]{
	noun:   "order",
	pick:   func(s *toybox.Shop) *store.Store[types.Order] { return s.Orders },
	header: []string{"ID", "TOY", "CUSTOMER", "QTY", "TOTAL", "DATE", "STATUS", "PAYMENT"},
	row: func(o types.Order) []string {
		return []string{
			o.ID, o.ToyName, o.CustomerName, strconv.Itoa(o.Quantity),
			o.TotalPrice.StringFixed(2), o.OrderDate.Format(time.DateOnly),
			string(o.Status), string(o.PaymentStatus),
		}
	},
	details: func(o types.Order) [][2]string {
		return [][2]string{
			{"ID", o.ID},
			{"Toy", o.ToyName},
			{"Customer", o.CustomerName},
			{"Quantity", strconv.Itoa(o.Quantity)},
			{"Total", o.TotalPrice.StringFixed(2)},
			{"Date", o.OrderDate.Format(time.DateTime)},
			{"Status", string(o.Status)},
			{"Payment", string(o.PaymentStatus)},
		}
	},
}

func (a *app) newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage orders",
		Long: "Manage orders. Orders record the toy and customer by name; the names are\n" +
			"not checked against the toy and customer lists.",
	}
	cmd.AddCommand(a.newOrderAddCmd())
	cmd.AddCommand(newListCmd(a, orderView))
	cmd.AddCommand(newShowCmd(a, orderView))
	cmd.AddCommand(a.newOrderUpdateCmd())
	cmd.AddCommand(a.newOrderMarkCmd("complete", "Mark an order completed", func(o *types.Order) error {
		return o.SetStatus(types.StatusCompleted)
	}))
	cmd.AddCommand(a.newOrderMarkCmd("pay", "Mark an order paid", func(o *types.Order) error {
		return o.SetPaymentStatus(types.PaymentPaid)
	}))
	cmd.AddCommand(newDeleteCmd(a, orderView))
	return cmd
}

func (a *app) newOrderAddCmd() *cobra.Command {
	var f orderFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Add an order priced at %s per item", types.UnitPrice),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := types.NewOrder(f.toy, f.customer, f.quantity, a.now())
			if err := checkOrder(o); err != nil {
				return err
			}

			return a.withShop(func(shop *toybox.Shop) error {
				shop.Orders.Add(o)
				if err := checkSaved(shop.Orders); err != nil {
					return err
				}
				if a.jsonMode {
					return printJSON(cmd.OutOrStdout(), o)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added order %s (total %s)\n", o.ID, o.TotalPrice.StringFixed(2))
				return nil
			})
		},
	}
	f.register(cmd, false)
	cmd.MarkFlagRequired("toy")
	cmd.MarkFlagRequired("customer")
	return cmd
}

func (a *app) newOrderUpdateCmd() *cobra.Command {
	var f orderFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit an order; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withShop(func(shop *toybox.Shop) error {
				o, err := lookup(shop.Orders, "order", args[0])
				if err != nil {
					return err
				}
				if err := f.apply(cmd, &o); err != nil {
					return err
				}
				return a.saveOrder(cmd, shop, o)
			})
		},
	}
	f.register(cmd, true)
	return cmd
}

// newOrderMarkCmd builds a one-step status change such as "complete" or "pay".
func (a *app) newOrderMarkCmd(use, short string, mark func(*types.Order) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withShop(func(shop *toybox.Shop) error {
				o, err := lookup(shop.Orders, "order", args[0])
				if err != nil {
					return err
				}
				if err := mark(&o); err != nil {
					return sysError(err)
				}
				return a.saveOrder(cmd, shop, o)
			})
		},
	}
}

func (a *app) saveOrder(cmd *cobra.Command, shop *toybox.Shop, o types.Order) error {
	shop.Orders.Update(o)
	if err := checkSaved(shop.Orders); err != nil {
		return err
	}
	if a.jsonMode {
		return printJSON(cmd.OutOrStdout(), o)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated order %s (%s, %s)\n", o.ID, o.Status, o.PaymentStatus)
	return nil
}
