package tasks

import (
	"context"
)

// ScheduledTaskFunc is the signature of every scheduled task. Implementations
// must respect ctx cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// SQLMaintenanceTask is the configuration key of the database maintenance task.
const SQLMaintenanceTask = "sql_maintenance"

// RegisterAllTasks returns the scheduled tasks keyed by the name used in the
// scheduler.tasks configuration section.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := map[string]ScheduledTaskFunc{
		SQLMaintenanceTask: newSQLMaintenanceTask(deps),
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
