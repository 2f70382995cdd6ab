package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"storefront/internal/usecase"

	"github.com/spf13/cobra"
)

func newCartCmd(st *cliState) *cobra.Command {
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Show or change the cart",
	}

	var refresh bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if refresh {
				if err := st.app.storefront.Refresh(ctx); err != nil {
					return st.finish(cmd.OutOrStdout(), err)
				}
			}
			printView(cmd.OutOrStdout(), st.app.storefront.View(ctx))
			return st.finish(cmd.OutOrStdout(), nil)
		},
	}
	showCmd.Flags().BoolVar(&refresh, "refresh", false, "Reload the account cart first")

	var quantity int64
	addCmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := st.app.storefront.AddToCart(ctx, args[0], quantity); err != nil {
				return st.finish(cmd.OutOrStdout(), err)
			}
			printView(cmd.OutOrStdout(), st.app.storefront.View(ctx))
			return st.finish(cmd.OutOrStdout(), nil)
		},
	}
	addCmd.Flags().Int64VarP(&quantity, "quantity", "q", 1, "Quantity to add")

	var (
		index     int
		productID string
		itemID    string
	)
	removeCmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a cart line",
		Long: `Remove a cart line.

  --index    local line by the index shown by "cart show"
  --product  local line by product id
  --item     account cart line by item id`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sf := st.app.storefront

			var err error
			switch {
			case cmd.Flags().Changed("index"):
				err = sf.RemoveLocalAt(ctx, index)
			case cmd.Flags().Changed("product"):
				err = sf.RemoveLocalProduct(ctx, productID)
			default:
				err = sf.RemoveServerItem(ctx, itemID)
			}
			if err != nil {
				return st.finish(cmd.OutOrStdout(), err)
			}
			printView(cmd.OutOrStdout(), sf.View(ctx))
			return st.finish(cmd.OutOrStdout(), nil)
		},
	}
	removeCmd.Flags().IntVar(&index, "index", 0, "Local line index")
	removeCmd.Flags().StringVar(&productID, "product", "", "Local line product id")
	removeCmd.Flags().StringVar(&itemID, "item", "", "Account cart item id")
	removeCmd.MarkFlagsOneRequired("index", "product", "item")
	removeCmd.MarkFlagsMutuallyExclusive("index", "product", "item")

	cartCmd.AddCommand(showCmd, addCmd, removeCmd)
	return cartCmd
}

func printView(w io.Writer, v usecase.CartView) {
	fmt.Fprintf(w, "session: %s\n", v.Session)
	if len(v.Lines) == 0 {
		fmt.Fprintln(w, "cart is empty")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tREF\tNAME\tQTY\tUNIT\tSUBTOTAL")
	for _, l := range v.Lines {
		ref := l.ItemID
		if l.Source == usecase.SourceLocal {
			ref = strconv.Itoa(l.Index)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n", l.Source, ref, l.Name, l.Quantity, l.UnitPrice.StringFixed(2), l.Subtotal.StringFixed(2))
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "total: %s\n", v.Total.StringFixed(2))
}

func printNotices(w io.Writer, notices []usecase.Notice) {
	for _, n := range notices {
		fmt.Fprintf(w, "[%s] %s\n", n.Kind, n.Message)
	}
}
