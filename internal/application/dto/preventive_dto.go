package dto

import "time"

// CreatePreventiveTaskRequest entrada para crear una tarea preventiva.
// StartDate opcional: la primera fecha de vencimiento se deriva de ella (o
// del instante actual) según la frecuencia.
type CreatePreventiveTaskRequest struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	AssetLocation       string     `json:"asset_location"`
	Frequency           string     `json:"frequency"`
	StartDate           *time.Time `json:"start_date"`
	AssignedTechnicians []string   `json:"assigned_technicians"`
}

// PreventiveTaskResponse salida de una tarea preventiva.
type PreventiveTaskResponse struct {
	ID                  string     `json:"id"`
	CompanyID           string     `json:"company_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	AssetLocation       string     `json:"asset_location,omitempty"`
	Frequency           string     `json:"frequency"`
	AssignedTechnicians []string   `json:"assigned_technicians"`
	Status              string     `json:"status"`
	NextDueDate         time.Time  `json:"next_due_date"`
	LastCompletedDate   *time.Time `json:"last_completed_date,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// PreventiveTaskListResponse lista paginada de tareas preventivas.
type PreventiveTaskListResponse struct {
	Tasks      []PreventiveTaskResponse `json:"tasks"`
	Pagination Pagination               `json:"pagination"`
}

// CompleteTaskResponse resultado de completar una tarea: fecha registrada y
// próximo vencimiento.
type CompleteTaskResponse struct {
	Task        PreventiveTaskResponse `json:"task"`
	NextDueDate time.Time              `json:"next_due_date"`
}
