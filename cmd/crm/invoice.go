package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-crm/internal/invoice"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

var (
	invoiceNumber string
	invoiceTax    float64
	invoiceItems  []string
	invoiceOut    string
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice <client-id>",
	Short: "Render a client's invoice PDF to a local file",
	Long: `Builds the invoice for a client and writes <number>.pdf.

Without --item the invoice has one line: the client's service at its price.

Example:
  crm invoice 3f2a... --tax 10 --item "Web Design:1:600" --out ./invoices`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoice,
}

func init() {
	invoiceCmd.Flags().StringVar(&invoiceNumber, "number", "", "invoice number (default INV-<short id>-<year>)")
	invoiceCmd.Flags().Float64Var(&invoiceTax, "tax", 0, "tax rate in percent")
	invoiceCmd.Flags().StringArrayVar(&invoiceItems, "item", nil, "line item as desc:qty:rate (repeatable)")
	invoiceCmd.Flags().StringVar(&invoiceOut, "out", ".", "output directory")
}

func runInvoice(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	items, err := parseItems(invoiceItems)
	if err != nil {
		return err
	}

	a, err := openLocal(ctx)
	if err != nil {
		return err
	}
	defer a.db.Close()

	inv, err := a.Invoices.Build(ctx, args[0], usecase.BuildInvoiceInput{
		Number:  invoiceNumber,
		TaxRate: invoiceTax,
		Items:   items,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(invoiceOut, 0o755); err != nil {
		return fmt.Errorf("erro ao criar diretório: %w", err)
	}
	path := filepath.Join(invoiceOut, inv.FileName())
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("erro ao criar arquivo: %w", err)
	}
	defer f.Close()

	if err := a.Invoices.Render(ctx, inv, f); err != nil {
		return err
	}

	log.Info("🧾 Fatura gerada",
		zap.String("file", path),
		zap.String("total", fmt.Sprintf("%.2f", inv.Total())),
	)
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// parseItems lê "desc:qty:rate"; a descrição pode ter ":" porque
// qty e rate são os dois últimos campos.
func parseItems(raw []string) ([]invoice.LineItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	items := make([]invoice.LineItem, 0, len(raw))
	for _, r := range raw {
		rateAt := strings.LastIndex(r, ":")
		if rateAt < 0 {
			return nil, fmt.Errorf("item inválido %q: use desc:qty:rate", r)
		}
		qtyAt := strings.LastIndex(r[:rateAt], ":")
		if qtyAt < 0 {
			return nil, fmt.Errorf("item inválido %q: use desc:qty:rate", r)
		}

		qty, err := strconv.ParseFloat(strings.TrimSpace(r[qtyAt+1:rateAt]), 64)
		if err != nil {
			return nil, fmt.Errorf("quantidade inválida em %q: %w", r, err)
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(r[rateAt+1:]), 64)
		if err != nil {
			return nil, fmt.Errorf("valor inválido em %q: %w", r, err)
		}
		items = append(items, invoice.LineItem{
			Description: strings.TrimSpace(r[:qtyAt]),
			Quantity:    qty,
			Rate:        rate,
		})
	}
	return items, nil
}
