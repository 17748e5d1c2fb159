package maintenance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Rowther/multitenantcrm/internal/application/dto"
	"github.com/Rowther/multitenantcrm/internal/domain"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
	"github.com/Rowther/multitenantcrm/internal/domain/schedule"
)

// UseCase tareas de mantenimiento preventivo recurrentes. El recálculo del
// próximo vencimiento usa aritmética de calendario sujeta al fin de mes, no
// intervalos fijos de días.
type UseCase struct {
	taskRepo repository.PreventiveTaskRepository
}

// NewUseCase construye el caso de uso de mantenimiento preventivo.
func NewUseCase(taskRepo repository.PreventiveTaskRepository) *UseCase {
	return &UseCase{taskRepo: taskRepo}
}

// Create crea una tarea recurrente ACTIVE. El primer vencimiento se deriva
// de start_date (o del instante actual) según la frecuencia.
func (uc *UseCase) Create(ctx context.Context, companyID string, in dto.CreatePreventiveTaskRequest) (*dto.PreventiveTaskResponse, error) {
	if in.Title == "" || !entity.ValidFrequency(in.Frequency) {
		return nil, domain.ErrValidation
	}

	now := time.Now()
	start := now
	if in.StartDate != nil {
		start = *in.StartDate
	}
	nextDue, err := schedule.NextDue(in.Frequency, start)
	if err != nil {
		return nil, err
	}

	task := &entity.PreventiveTask{
		ID:                  uuid.New().String(),
		CompanyID:           companyID,
		Title:               in.Title,
		Description:         in.Description,
		AssetLocation:       in.AssetLocation,
		Frequency:           in.Frequency,
		AssignedTechnicians: in.AssignedTechnicians,
		Status:              entity.TaskStatusActive,
		NextDueDate:         nextDue,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// Complete registra la ejecución de una tarea ACTIVE: fija la fecha de
// completado y recalcula el próximo vencimiento a partir de ese instante.
// La tarea permanece ACTIVE; completar una tarea pausada o terminada es
// ErrInvalidState.
func (uc *UseCase) Complete(ctx context.Context, companyID, id string) (*dto.CompleteTaskResponse, error) {
	task, err := uc.taskRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if task == nil || task.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if task.Status != entity.TaskStatusActive {
		return nil, domain.ErrInvalidState
	}

	now := time.Now()
	nextDue, err := schedule.NextDue(task.Frequency, now)
	if err != nil {
		return nil, err
	}
	task.LastCompletedDate = &now
	task.NextDueDate = nextDue
	task.UpdatedAt = now

	if err := uc.taskRepo.Update(task); err != nil {
		return nil, err
	}
	return &dto.CompleteTaskResponse{
		Task:        *toTaskResponse(task),
		NextDueDate: task.NextDueDate,
	}, nil
}

// SetStatus pausa o reactiva una tarea.
func (uc *UseCase) SetStatus(ctx context.Context, companyID, id, status string) (*dto.PreventiveTaskResponse, error) {
	switch status {
	case entity.TaskStatusActive, entity.TaskStatusPaused, entity.TaskStatusCompleted:
	default:
		return nil, domain.ErrValidation
	}
	task, err := uc.taskRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if task == nil || task.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	task.Status = status
	task.UpdatedAt = time.Now()
	if err := uc.taskRepo.Update(task); err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// List devuelve las tareas de la empresa paginadas. Una página más allá del
// final devuelve lista vacía con el total real.
func (uc *UseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.PreventiveTaskListResponse, error) {
	page.DefaultPage()
	tasks, total, err := uc.taskRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.PreventiveTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, *toTaskResponse(t))
	}
	return &dto.PreventiveTaskListResponse{
		Tasks:      out,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}, nil
}

func toTaskResponse(t *entity.PreventiveTask) *dto.PreventiveTaskResponse {
	return &dto.PreventiveTaskResponse{
		ID:                  t.ID,
		CompanyID:           t.CompanyID,
		Title:               t.Title,
		Description:         t.Description,
		AssetLocation:       t.AssetLocation,
		Frequency:           t.Frequency,
		AssignedTechnicians: t.AssignedTechnicians,
		Status:              t.Status,
		NextDueDate:         t.NextDueDate,
		LastCompletedDate:   t.LastCompletedDate,
		CreatedAt:           t.CreatedAt,
	}
}
