package jobs

import (
	"encoding/json"
	"strings"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskKPIScan classifies every mall's KPIs and raises critical alerts.
	TaskKPIScan = "kpi:scan"
)

// KPIScanPayload narrows a scan to specific malls. An empty list scans
// every mall the data source reports.
type KPIScanPayload struct {
	MallIDs []string `json:"mall_ids,omitempty"`
}

// NewKPIScanTask constructs an Asynq task.
func NewKPIScanTask(payload KPIScanPayload) (*asynq.Task, error) {
	ids := make([]string, 0, len(payload.MallIDs))
	for _, id := range payload.MallIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	payload.MallIDs = ids
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskKPIScan, data, asynq.Queue(QueueDefault), asynq.MaxRetry(3)), nil
}
