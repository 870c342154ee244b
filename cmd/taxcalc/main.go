// Command taxcalc prices a document offline: it reads a JSON description of
// the seller, the buyer and the lines, and prints per-line tax and document
// totals without touching the database.
//
// Usage: go run ./cmd/taxcalc [file.json]   (reads stdin when no file is given)
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/calc"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/gst"
)

type request struct {
	Seller         gst.Jurisdiction `json:"seller"`
	Buyer          gst.Jurisdiction `json:"buyer"`
	PlaceOfSupply  string           `json:"place_of_supply"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	ShippingCharge decimal.Decimal  `json:"shipping_charge"`
	LineItems      []calc.LineInput `json:"line_items"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:          "taxcalc [file]",
		Short:        "Compute GST line and document totals",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			totals, err := compute(in)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(totals)
			}
			return render(cmd.OutOrStdout(), totals)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the totals as JSON")
	return cmd
}

func compute(r io.Reader) (*calc.Totals, error) {
	var req request
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("decoding request: %w", err)
	}
	buyer := req.Buyer
	if req.PlaceOfSupply != "" {
		buyer = gst.Jurisdiction{State: req.PlaceOfSupply}
	}
	return calc.Aggregate(req.LineItems, req.DiscountAmount, req.ShippingCharge, req.Seller, buyer)
}

func render(w io.Writer, t *calc.Totals) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tDescription\tQty\tRate\tGST %\tTaxable\tIGST\tCGST\tSGST\tTotal\t")
	for _, li := range t.LineItems {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			li.Position, li.Description, li.Quantity.String(), li.Rate.StringFixed(2), li.GSTRate.String(),
			li.Amount.StringFixed(2), li.IGSTAmount.StringFixed(2), li.CGSTAmount.StringFixed(2),
			li.SGSTAmount.StringFixed(2), li.Amount.Add(li.TaxTotal()).StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	supply := "intra-state"
	if t.InterState {
		supply = "inter-state"
	}
	fmt.Fprintf(w, "\nSupply:    %s\n", supply)
	fmt.Fprintf(w, "Subtotal:  %s\n", t.Subtotal.StringFixed(2))
	fmt.Fprintf(w, "Discount:  %s\n", t.DiscountAmount.StringFixed(2))
	fmt.Fprintf(w, "IGST:      %s\n", t.IGSTAmount.StringFixed(2))
	fmt.Fprintf(w, "CGST:      %s\n", t.CGSTAmount.StringFixed(2))
	fmt.Fprintf(w, "SGST:      %s\n", t.SGSTAmount.StringFixed(2))
	fmt.Fprintf(w, "Shipping:  %s\n", t.ShippingCharge.StringFixed(2))
	_, err := fmt.Fprintf(w, "Total:     %s\n", t.TotalAmount.StringFixed(2))
	return err
}
