package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mallops/mallops/internal/dashboard"
	"github.com/mallops/mallops/internal/kpi"
)

func newMallsCmd(env *Env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "malls",
		Short: "List malls",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFlags(struct {
				Format string `validate:"oneof=table json"`
			}{format}); err != nil {
				return err
			}
			ctx, cancel := env.context(cmd)
			defer cancel()
			malls := env.Service.GetMalls(ctx)
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), malls)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, m := range malls {
				fmt.Fprintf(tw, "%s\t%s\n", m.ID, m.Name)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

type kpiRow struct {
	KPI   kpi.Type `json:"kpi"`
	Value *float64 `json:"value"`
	Tier  kpi.Tier `json:"tier"`
}

func newKPICmd(env *Env) *cobra.Command {
	var mall, format string
	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Show the classified KPIs of a mall",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFlags(struct {
				Mall   string `validate:"required"`
				Format string `validate:"oneof=table json"`
			}{mall, format}); err != nil {
				return err
			}
			ctx, cancel := env.context(cmd)
			defer cancel()
			readings := dashboard.Readings(env.Service.GetFinanceKPI(ctx, mall), env.Service.GetOpsKPI(ctx, mall))
			rows := make([]kpiRow, 0, len(readings))
			for _, r := range readings {
				rows = append(rows, kpiRow{KPI: r.Type, Value: r.Value, Tier: r.Tier})
			}
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KPI\tVALUE\tTIER")
			for _, r := range rows {
				value := "-"
				if r.Value != nil {
					value = strconv.FormatFloat(*r.Value, 'f', -1, 64)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.KPI, value, r.Tier)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&mall, "mall", "", "Mall id")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func newClassifyCmd() *cobra.Command {
	var typ string
	var value float64
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a raw KPI value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFlags(struct {
				Type string `validate:"required"`
			}{typ}); err != nil {
				return err
			}
			t, err := kpi.ParseType(typ)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("value") {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), kpi.Classify(nil, t))
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), kpi.ClassifyValue(value, t))
			return err
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "KPI type: rentCollection, overdue, slaCompliance or resolution")
	cmd.Flags().Float64Var(&value, "value", 0, "Raw KPI value; omit to classify a missing value")
	return cmd
}
