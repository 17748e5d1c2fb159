package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rowther/multitenantcrm/internal/application/workorder"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
	apphttp "github.com/Rowther/multitenantcrm/internal/interfaces/http"
)

// Fakes mínimos para montar el handler de listado: solo List se ejercita.

type listOnlyWORepo struct{ orders []*entity.WorkOrder }

func (r *listOnlyWORepo) Create(wo *entity.WorkOrder) error            { return nil }
func (r *listOnlyWORepo) GetByID(id string) (*entity.WorkOrder, error) { return nil, nil }
func (r *listOnlyWORepo) GetByIDForUpdate(id string) (*entity.WorkOrder, error) {
	return nil, nil
}
func (r *listOnlyWORepo) Update(wo *entity.WorkOrder) error             { return nil }
func (r *listOnlyWORepo) NextOrderNumber(companyID string) (int, error) { return 0, nil }
func (r *listOnlyWORepo) List(filter repository.WorkOrderFilter) ([]*entity.WorkOrder, int, error) {
	return r.orders, len(r.orders), nil
}

type noopTxRunner struct{}

func (noopTxRunner) RunWorkOrder(ctx context.Context, fn func(repository.WorkOrderRepository) error) error {
	return fn(&listOnlyWORepo{})
}

type noopCompanyRepo struct{}

func (noopCompanyRepo) Create(c *entity.Company) error             { return nil }
func (noopCompanyRepo) GetByID(id string) (*entity.Company, error) { return nil, nil }
func (noopCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	return nil, nil
}

type noopClientRepo struct{}

func (noopClientRepo) Create(c *entity.Client) error             { return nil }
func (noopClientRepo) GetByID(id string) (*entity.Client, error) { return nil, nil }
func (noopClientRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Client, error) {
	return nil, nil
}

type noopVehicleRepo struct{}

func (noopVehicleRepo) Create(v *entity.Vehicle) error             { return nil }
func (noopVehicleRepo) GetByID(id string) (*entity.Vehicle, error) { return nil, nil }
func (noopVehicleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Vehicle, error) {
	return nil, nil
}

type noopNotifRepo struct{}

func (noopNotifRepo) Create(n *entity.Notification) error { return nil }
func (noopNotifRepo) ListByUser(userID string, limit, offset int) ([]*entity.Notification, error) {
	return nil, nil
}
func (noopNotifRepo) MarkRead(id, userID string) error { return nil }

type noopAuditRepo struct{}

func (noopAuditRepo) Record(l *entity.AuditLog) error { return nil }
func (noopAuditRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.AuditLog, error) {
	return nil, nil
}

func buildListApp(orders []*entity.WorkOrder) *fiber.App {
	uc := workorder.NewUseCase(
		noopTxRunner{}, &listOnlyWORepo{orders: orders}, noopCompanyRepo{},
		noopClientRepo{}, noopVehicleRepo{}, noopNotifRepo{}, noopAuditRepo{},
	)
	h := apphttp.NewWorkOrderHandler(uc)
	app := fiber.New()
	app.Get("/api/work-orders", apphttp.AuthMiddleware(testJWTSecret), h.List)
	return app
}

func sampleOrders() []*entity.WorkOrder {
	return []*entity.WorkOrder{
		{
			ID: "wo-1", CompanyID: testCompanyID, OrderNumber: "WO-000001",
			Title: "Orden uno", Status: entity.WOStatusPending,
			QuotedPrice: decimal.NewFromInt(100), PaidAmount: decimal.Zero,
		},
		{
			ID: "wo-2", CompanyID: testCompanyID, OrderNumber: "WO-000002",
			Title: "Orden dos", Status: entity.WOStatusInProgress,
			QuotedPrice: decimal.NewFromInt(200), PaidAmount: decimal.Zero,
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Formato canónico vs legacy
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FormatoCanonicoConPaginacion(t *testing.T) {
	app := buildListApp(sampleOrders())

	req := httptest.NewRequest(http.MethodGet, "/api/work-orders", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body, "work_orders", "el formato canónico envuelve los items")
	assert.Contains(t, body, "pagination", "el formato canónico trae metadatos")
}

func TestList_FormatoLegacyDevuelveArregloPlano(t *testing.T) {
	app := buildListApp(sampleOrders())

	req := httptest.NewRequest(http.MethodGet, "/api/work-orders?format=legacy", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	// El cuerpo debe ser un arreglo JSON directo, sin envoltura.
	var items []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items),
		"el formato legacy es un arreglo plano")
	require.Len(t, items, 2)
	assert.Equal(t, "WO-000001", items[0]["order_number"])
}
