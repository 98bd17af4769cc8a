package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"projectboard/internal/model"
	"projectboard/internal/server/repository"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectService enforces ownership and keeps tasks travelling with their
// project: every save replaces the project's task rows with the submitted
// sequence.
type ProjectService struct {
	projectRepo *repository.ProjectRepository
	taskRepo    *repository.TaskRepository
	logger      *zap.Logger
}

func NewProjectService(projectRepo *repository.ProjectRepository, taskRepo *repository.TaskRepository, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		logger:      logger,
	}
}

func (s *ProjectService) List(ctx context.Context, userID int) ([]model.Project, error) {
	projects, err := s.projectRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range projects {
		tasks, err := s.taskRepo.ListByProject(ctx, projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Tasks = tasks
	}
	return projects, nil
}

func (s *ProjectService) Create(ctx context.Context, userID int, p model.Project) (*model.Project, error) {
	p.UserID = userID

	id, err := s.projectRepo.Insert(ctx, &p)
	if err != nil {
		return nil, err
	}
	p.ID = id

	tasks, err := s.taskRepo.ReplaceForProject(ctx, id, p.Tasks)
	if err != nil {
		return nil, err
	}
	p.Tasks = tasks

	return &p, nil
}

func (s *ProjectService) Update(ctx context.Context, userID int, p model.Project) (*model.Project, error) {
	p.UserID = userID

	if err := s.projectRepo.Update(ctx, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	tasks, err := s.taskRepo.ReplaceForProject(ctx, p.ID, p.Tasks)
	if err != nil {
		return nil, err
	}
	p.Tasks = tasks

	return &p, nil
}

func (s *ProjectService) Delete(ctx context.Context, userID, id int) error {
	if err := s.projectRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProjectNotFound
		}
		return err
	}
	return nil
}
