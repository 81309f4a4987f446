package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/mallops/mallops/jobs"
)

// JobTrigger enqueues background jobs.
type JobTrigger interface {
	Trigger(ctx context.Context, name string, mallIDs []string) (*asynq.TaskInfo, error)
}

// JobsCLI wraps manual management helpers for Asynq jobs.
type JobsCLI struct {
	client *jobs.Client
}

// NewJobsCLI initialises the CLI helpers using the provided Redis address.
func NewJobsCLI(redisAddr string) *JobsCLI {
	return &JobsCLI{client: jobs.NewClient(asynq.RedisClientOpt{Addr: redisAddr})}
}

// Close releases underlying resources.
func (c *JobsCLI) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Trigger enqueues a supported job by name.
func (c *JobsCLI) Trigger(ctx context.Context, name string, mallIDs []string) (*asynq.TaskInfo, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("jobs cli: client not configured")
	}
	switch name {
	case jobs.TaskKPIScan:
		return c.client.EnqueueKPIScan(ctx, jobs.KPIScanPayload{MallIDs: mallIDs})
	default:
		return nil, fmt.Errorf("jobs cli: unsupported job %s", name)
	}
}

func newScanCmd(env *Env) *cobra.Command {
	var malls []string
	var enqueue bool
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Classify KPIs for every mall and list critical readings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := env.context(cmd)
			defer cancel()
			if enqueue {
				if env.Jobs == nil {
					return errors.New("scan: job queue not configured")
				}
				info, err := env.Jobs.Trigger(ctx, jobs.TaskKPIScan, malls)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s id=%s queue=%s\n", info.Type, info.ID, info.Queue)
				return err
			}

			job := jobs.NewKPIScanJob(env.Service, nil, nil, nil)
			result, err := job.Scan(ctx, malls)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "scanned %d malls, %d critical\n", result.Malls, len(result.Critical))
			for _, a := range result.Critical {
				fmt.Fprintf(tw, "%s\t%s\t%g\n", a.MallID, a.KPI, a.Value)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringSliceVar(&malls, "mall", nil, "Mall ids to scan; defaults to every mall")
	cmd.Flags().BoolVar(&enqueue, "enqueue", false, "Queue the scan on the worker instead of running it here")
	return cmd
}
