package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"projectboard/internal/model"
)

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProjectRepository) Insert(ctx context.Context, p *model.Project) (int, error) {
	r.logger.Debug("Inserting project",
		zap.Int("user_id", p.UserID),
		zap.String("name", p.Name),
	)

	query := `
        INSERT INTO projects (user_id, name, description)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	var id int
	err := r.db.QueryRow(ctx, query,
		p.UserID,
		p.Name,
		p.Description,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert project", zap.Error(err))
		return 0, err
	}

	r.logger.Info("Project inserted successfully",
		zap.Int("id", id),
		zap.Int("user_id", p.UserID),
	)
	return id, nil
}

// Update rewrites name and description for a project owned by the given
// user. Returns pgx.ErrNoRows when the project does not exist or belongs
// to someone else.
func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	query := `
        UPDATE projects
        SET name = $1, description = $2, updated_at = NOW()
        WHERE id = $3 AND user_id = $4
    `
	result, err := r.db.Exec(ctx, query, p.Name, p.Description, p.ID, p.UserID)
	if err != nil {
		r.logger.Error("Failed to update project",
			zap.Error(err),
			zap.Int("id", p.ID),
		)
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id, userID int) error {
	query := `
        DELETE FROM projects
        WHERE id = $1 AND user_id = $2
    `
	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.logger.Error("Failed to delete project",
			zap.Error(err),
			zap.Int("id", id),
		)
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	r.logger.Info("Project deleted",
		zap.Int("id", id),
		zap.Int("user_id", userID),
	)
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id, userID int) (*model.Project, error) {
	query := `
        SELECT id, user_id, name, description
        FROM projects
        WHERE id = $1 AND user_id = $2
    `
	var p model.Project
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID int) ([]model.Project, error) {
	r.logger.Debug("Listing projects for user", zap.Int("user_id", userID))
	query := `
        SELECT id, user_id, name, description
        FROM projects
        WHERE user_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to query projects",
			zap.Error(err),
			zap.Int("user_id", userID),
		)
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description); err != nil {
			r.logger.Error("Failed to scan project row",
				zap.Error(err),
				zap.Int("user_id", userID),
			)
			return nil, err
		}
		projects = append(projects, p)
	}
	// Next returning false can mean the result set broke mid-stream, not
	// just exhaustion; a truncated list must not pass as success.
	if err := rows.Err(); err != nil {
		r.logger.Error("Project rows ended with error",
			zap.Error(err),
			zap.Int("user_id", userID),
		)
		return nil, err
	}
	return projects, nil
}
