// Package cli implements the mallopsctl commands.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/mallops/mallops/internal/dashboard"
)

// Service is the dashboard query layer the commands read from.
type Service interface {
	GetMalls(ctx context.Context) []dashboard.Mall
	GetFinanceKPI(ctx context.Context, mallID string) *dashboard.FinanceKPI
	GetOpsKPI(ctx context.Context, mallID string) *dashboard.OpsKPI
	GetTenants(ctx context.Context, mallID string) ([]dashboard.Tenant, error)
	GetInvoices(ctx context.Context, mallID string) ([]dashboard.Invoice, error)
	GetWorkOrders(ctx context.Context, mallID string) ([]dashboard.WorkOrder, error)
}

// Toggle switches the data source between mock fixtures and the backend.
type Toggle interface {
	SetMockActive(bool)
	BackendConfigured() bool
}

// Env carries the dependencies shared by every command.
type Env struct {
	Service Service
	Toggle  Toggle
	Jobs    JobTrigger
	Timeout time.Duration
}

type rootOptions struct {
	mock bool
}

var validate = validator.New()

// NewRootCmd assembles the mallopsctl command tree.
func NewRootCmd(env *Env) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "mallopsctl",
		Short:         "Inspect MallOps KPIs and records from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if env.Toggle == nil {
				return nil
			}
			if opts.mock || !env.Toggle.BackendConfigured() {
				env.Toggle.SetMockActive(true)
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&opts.mock, "mock", false, "Serve mock fixtures even when a backend is configured")

	root.AddCommand(
		newMallsCmd(env),
		newKPICmd(env),
		newClassifyCmd(),
		newListCmd(env, "tenants", "List tenants of a mall"),
		newListCmd(env, "invoices", "List invoices of a mall"),
		newListCmd(env, "work-orders", "List work orders of a mall"),
		newScanCmd(env),
	)
	return root
}

func (e *Env) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(cmd.Context(), timeout)
}

func validateFlags(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("--%s must satisfy %s=%s", name, fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("--%s is %s", name, fe.Tag()))
	}
	return errors.New(strings.Join(parts, "; "))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
