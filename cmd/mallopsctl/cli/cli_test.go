package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mallops/mallops/internal/dashboard"
	"github.com/mallops/mallops/internal/datasource"
	"github.com/mallops/mallops/jobs"
)

type stubTrigger struct {
	name  string
	malls []string
}

func (s *stubTrigger) Trigger(ctx context.Context, name string, mallIDs []string) (*asynq.TaskInfo, error) {
	s.name, s.malls = name, mallIDs
	return &asynq.TaskInfo{ID: "task-1", Type: name, Queue: jobs.QueueDefault}, nil
}

func run(t *testing.T, env *Env, args ...string) (string, error) {
	t.Helper()
	if env == nil {
		source := datasource.NewSource(datasource.Settings{}, nil)
		env = &Env{
			Service: dashboard.NewService(source, dashboard.DefaultMockDataset(), nil, nil),
			Toggle:  source,
		}
	}
	var out bytes.Buffer
	root := NewRootCmd(env)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMallsCommand(t *testing.T) {
	out, err := run(t, nil, "malls")
	require.NoError(t, err)
	assert.Contains(t, out, "Mall A")
	assert.Contains(t, out, dashboard.MockMallB)

	out, err = run(t, nil, "malls", "--format", "json")
	require.NoError(t, err)
	var malls []dashboard.Mall
	require.NoError(t, json.Unmarshal([]byte(out), &malls))
	assert.Len(t, malls, 2)
}

func TestKPICommand(t *testing.T) {
	out, err := run(t, nil, "kpi", "--mall", dashboard.MockMallA)
	require.NoError(t, err)
	assert.Contains(t, out, "overdue")
	assert.Contains(t, out, "120000")
	assert.Contains(t, out, "critical")

	_, err = run(t, nil, "kpi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--mall is required")
}

func TestClassifyCommand(t *testing.T) {
	out, err := run(t, nil, "classify", "--type", "rentCollection", "--value", "80")
	require.NoError(t, err)
	assert.Equal(t, "good\n", out)

	out, err = run(t, nil, "classify", "--type", "RESOLUTION", "--value", "48.5")
	require.NoError(t, err)
	assert.Equal(t, "critical\n", out)

	out, err = run(t, nil, "classify", "--type", "overdue")
	require.NoError(t, err)
	assert.Equal(t, "unknown\n", out)

	_, err = run(t, nil, "classify", "--type", "footfall", "--value", "1")
	assert.Error(t, err)
}

func TestListCommands(t *testing.T) {
	out, err := run(t, nil, "tenants", "--mall", dashboard.MockMallA)
	require.NoError(t, err)
	assert.Contains(t, out, "Tenant One")
	assert.Contains(t, out, "A-101")

	out, err = run(t, nil, "work-orders", "--mall", dashboard.MockMallA, "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Work Orders", lines[0])

	_, err = run(t, nil, "invoices", "--mall", dashboard.MockMallA, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--format must satisfy oneof")
}

func TestScanCommand(t *testing.T) {
	out, err := run(t, nil, "scan")
	require.NoError(t, err)
	assert.Contains(t, out, "scanned 2 malls, 2 critical")

	source := datasource.NewSource(datasource.Settings{}, nil)
	trigger := &stubTrigger{}
	env := &Env{
		Service: dashboard.NewService(source, dashboard.DefaultMockDataset(), nil, nil),
		Toggle:  source,
		Jobs:    trigger,
	}
	out, err = run(t, env, "scan", "--enqueue", "--mall", "m-1", "--mall", "m-2")
	require.NoError(t, err)
	assert.Equal(t, jobs.TaskKPIScan, trigger.name)
	assert.Equal(t, []string{"m-1", "m-2"}, trigger.malls)
	assert.Contains(t, out, "id=task-1")
}

func TestMockFlagForcesMock(t *testing.T) {
	settings := datasource.Settings{Endpoint: "https://backend.example.test", Key: "k"}
	source := datasource.NewSource(settings, nil)
	require.False(t, source.MockActive())
	env := &Env{Service: dashboard.NewService(source, dashboard.DefaultMockDataset(), nil, nil), Toggle: source}

	_, err := run(t, env, "--mock", "malls")
	require.NoError(t, err)
	assert.True(t, source.MockActive())
}
