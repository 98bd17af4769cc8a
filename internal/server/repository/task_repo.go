package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"projectboard/internal/model"
)

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

// ReplaceForProject rewrites the project's task rows wholesale. Tasks have
// no independent persistence path; they travel with the project on every
// save, and the submitted order is kept in the position column.
func (r *TaskRepository) ReplaceForProject(ctx context.Context, projectID int, tasks []model.Task) ([]model.Task, error) {
	r.logger.Debug("Replacing tasks for project",
		zap.Int("project_id", projectID),
		zap.Int("count", len(tasks)),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE project_id = $1`, projectID); err != nil {
		r.logger.Error("Failed to clear project tasks",
			zap.Error(err),
			zap.Int("project_id", projectID),
		)
		return nil, err
	}

	query := `
        INSERT INTO tasks (project_id, title, status, position)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	saved := make([]model.Task, 0, len(tasks))
	for i, t := range tasks {
		if t.Status == "" {
			t.Status = model.TaskPending
		}
		if err := tx.QueryRow(ctx, query, projectID, t.Title, t.Status, i).Scan(&t.ID); err != nil {
			r.logger.Error("Failed to insert task",
				zap.Error(err),
				zap.Int("project_id", projectID),
				zap.String("title", t.Title),
			)
			return nil, err
		}
		saved = append(saved, t)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	r.logger.Info("Tasks replaced",
		zap.Int("project_id", projectID),
		zap.Int("count", len(saved)),
	)
	return saved, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID int) ([]model.Task, error) {
	query := `
        SELECT id, title, status
        FROM tasks
        WHERE project_id = $1
        ORDER BY position
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to query tasks",
			zap.Error(err),
			zap.Int("project_id", projectID),
		)
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Status); err != nil {
			r.logger.Error("Failed to scan task row",
				zap.Error(err),
				zap.Int("project_id", projectID),
			)
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Task rows ended with error",
			zap.Error(err),
			zap.Int("project_id", projectID),
		)
		return nil, err
	}
	return tasks, nil
}
