package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mallops/mallops/internal/dashboard/export"
)

type listFlags struct {
	Mall   string `validate:"required"`
	Format string `validate:"oneof=table csv json"`
}

func newListCmd(env *Env, entity, short string) *cobra.Command {
	flags := listFlags{}
	cmd := &cobra.Command{
		Use:   entity,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFlags(flags); err != nil {
				return err
			}
			ctx, cancel := env.context(cmd)
			defer cancel()
			items, table, err := fetchList(ctx, env.Service, entity, flags.Mall)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch flags.Format {
			case "json":
				return writeJSON(out, items)
			case "csv":
				return export.WriteCSV(out, table)
			default:
				return writeTable(out, table)
			}
		},
	}
	cmd.Flags().StringVar(&flags.Mall, "mall", "", "Mall id")
	cmd.Flags().StringVar(&flags.Format, "format", "table", "Output format: table, csv or json")
	return cmd
}

func fetchList(ctx context.Context, svc Service, entity, mallID string) (any, export.Table, error) {
	switch entity {
	case "tenants":
		items, err := svc.GetTenants(ctx, mallID)
		return items, export.TenantsTable(items), err
	case "invoices":
		items, err := svc.GetInvoices(ctx, mallID)
		return items, export.InvoicesTable(items), err
	case "work-orders":
		items, err := svc.GetWorkOrders(ctx, mallID)
		return items, export.WorkOrdersTable(items), err
	default:
		return nil, export.Table{}, fmt.Errorf("unknown entity %q", entity)
	}
}

func writeTable(w io.Writer, table export.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(table.Header, "\t")))
	for _, row := range table.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
