package workorder_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rowther/multitenantcrm/internal/application/dto"
	"github.com/Rowther/multitenantcrm/internal/application/workorder"
	"github.com/Rowther/multitenantcrm/internal/domain"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeWorkOrderRepo struct {
	orders map[string]*entity.WorkOrder
	seq    int
}

func newFakeWorkOrderRepo() *fakeWorkOrderRepo {
	return &fakeWorkOrderRepo{orders: map[string]*entity.WorkOrder{}}
}

func (r *fakeWorkOrderRepo) Create(wo *entity.WorkOrder) error {
	cp := *wo
	r.orders[wo.ID] = &cp
	return nil
}

func (r *fakeWorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	wo, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *wo
	return &cp, nil
}

func (r *fakeWorkOrderRepo) GetByIDForUpdate(id string) (*entity.WorkOrder, error) {
	return r.GetByID(id)
}

func (r *fakeWorkOrderRepo) Update(wo *entity.WorkOrder) error {
	if _, ok := r.orders[wo.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *wo
	r.orders[wo.ID] = &cp
	return nil
}

func (r *fakeWorkOrderRepo) List(filter repository.WorkOrderFilter) ([]*entity.WorkOrder, int, error) {
	var all []*entity.WorkOrder
	for _, wo := range r.orders {
		if wo.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Status != "" && wo.Status != filter.Status {
			continue
		}
		all = append(all, wo)
	}
	total := len(all)
	if filter.Offset >= total {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return all[filter.Offset:end], total, nil
}

func (r *fakeWorkOrderRepo) NextOrderNumber(companyID string) (int, error) {
	r.seq++
	return r.seq, nil
}

// fakeTxRunner ejecuta el callback directamente sobre el repo en memoria.
type fakeTxRunner struct {
	woRepo *fakeWorkOrderRepo
}

func (t *fakeTxRunner) RunWorkOrder(ctx context.Context, fn func(repository.WorkOrderRepository) error) error {
	return fn(t.woRepo)
}

type fakeCompanyRepo struct{ companies map[string]*entity.Company }

func (r *fakeCompanyRepo) Create(c *entity.Company) error { r.companies[c.ID] = c; return nil }
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.companies[id], nil
}
func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) { return nil, nil }

type fakeClientRepo struct{ clients map[string]*entity.Client }

func (r *fakeClientRepo) Create(c *entity.Client) error { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.clients[id], nil
}
func (r *fakeClientRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Client, error) {
	return nil, nil
}

type fakeVehicleRepo struct{ vehicles map[string]*entity.Vehicle }

func (r *fakeVehicleRepo) Create(v *entity.Vehicle) error { r.vehicles[v.ID] = v; return nil }
func (r *fakeVehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	return r.vehicles[id], nil
}
func (r *fakeVehicleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Vehicle, error) {
	return nil, nil
}

type fakeNotifRepo struct{ sent []*entity.Notification }

func (r *fakeNotifRepo) Create(n *entity.Notification) error { r.sent = append(r.sent, n); return nil }
func (r *fakeNotifRepo) ListByUser(userID string, limit, offset int) ([]*entity.Notification, error) {
	return nil, nil
}
func (r *fakeNotifRepo) MarkRead(id, userID string) error { return nil }

type fakeAuditRepo struct{ entries []*entity.AuditLog }

func (r *fakeAuditRepo) Record(l *entity.AuditLog) error { r.entries = append(r.entries, l); return nil }
func (r *fakeAuditRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.AuditLog, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Arnés
// ──────────────────────────────────────────────────────────────────────────────

type harness struct {
	uc     *workorder.UseCase
	woRepo *fakeWorkOrderRepo
	notifs *fakeNotifRepo
}

func newHarness(industry string) *harness {
	woRepo := newFakeWorkOrderRepo()
	notifs := &fakeNotifRepo{}
	companyRepo := &fakeCompanyRepo{companies: map[string]*entity.Company{
		"co-1": {ID: "co-1", Name: "Acme", Industry: industry},
	}}
	clientRepo := &fakeClientRepo{clients: map[string]*entity.Client{
		"cl-1": {ID: "cl-1", CompanyID: "co-1", Name: "Cliente Uno"},
	}}
	vehicleRepo := &fakeVehicleRepo{vehicles: map[string]*entity.Vehicle{
		"vh-1": {ID: "vh-1", CompanyID: "co-1", PlateNumber: "ABC-123"},
	}}
	uc := workorder.NewUseCase(
		&fakeTxRunner{woRepo: woRepo}, woRepo, companyRepo, clientRepo, vehicleRepo,
		notifs, &fakeAuditRepo{},
	)
	return &harness{uc: uc, woRepo: woRepo, notifs: notifs}
}

func baseCreateRequest() dto.CreateWorkOrderRequest {
	return dto.CreateWorkOrderRequest{
		Title:               "Reparación de clóset",
		RequestedByClientID: "cl-1",
		AssignedTechnicians: []string{"tech-1"},
		Products: []dto.ProductLineRequest{
			{Name: "Clóset empotrado", Category: "WARDROBE", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(500)},
		},
	}
}

func strptr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NumeroConsecutivoPorEmpresa(t *testing.T) {
	h := newHarness(entity.IndustryFurniture)

	first, err := h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleAdmin, baseCreateRequest())
	require.NoError(t, err)
	second, err := h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleAdmin, baseCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "WO-000001", first.OrderNumber)
	assert.Equal(t, "WO-000002", second.OrderNumber)
	assert.Equal(t, entity.WOStatusPending, first.Status, "la orden debe nacer PENDING")
	assert.True(t, first.QuotedPrice.Equal(decimal.NewFromInt(500)),
		"el precio cotizado debe derivarse de las líneas")
}

func TestCreate_FurnitureBloqueaEmpleados(t *testing.T) {
	h := newHarness(entity.IndustryFurniture)

	_, err := h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleEmployee, baseCreateRequest())
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"en furniture solo los administradores crean órdenes")

	_, err = h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleClient, baseCreateRequest())
	assert.ErrorIs(t, err, domain.ErrForbidden, "los clientes nunca crean órdenes")
}

func TestCreate_AutomotiveAdmiteEmpleadosYVehiculo(t *testing.T) {
	h := newHarness(entity.IndustryAutomotive)

	in := baseCreateRequest()
	in.VehicleID = "vh-1"
	in.Products = []dto.ProductLineRequest{
		{Name: "Cambio de frenos", Category: "BRAKES", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(300)},
	}
	out, err := h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleEmployee, in)
	require.NoError(t, err)
	assert.Equal(t, "vh-1", out.VehicleID)
}

func TestCreate_VehiculoFueraDeAutomotiveRechazado(t *testing.T) {
	h := newHarness(entity.IndustryFurniture)

	in := baseCreateRequest()
	in.VehicleID = "vh-1"
	_, err := h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleAdmin, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_TechnicalSolutionsExigeActivoYProhibeProductos(t *testing.T) {
	h := newHarness(entity.IndustryTechnicalSolutions)

	// Sin asset_code: rechazo.
	in := baseCreateRequest()
	in.Products = nil
	_, err := h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleAdmin, in)
	assert.ErrorIs(t, err, domain.ErrValidation, "asset_code y asset_category son obligatorios")

	// Con activo pero con líneas de producto: rechazo.
	in.AssetCode = "SRV-042"
	in.AssetCategory = "SERVER"
	in.Products = baseCreateRequest().Products
	_, err = h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleAdmin, in)
	assert.ErrorIs(t, err, domain.ErrValidation, "esta industria no lleva líneas de producto")

	// Con activo y sin productos: válido, cotización en cero.
	in.Products = nil
	out, err := h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleAdmin, in)
	require.NoError(t, err)
	assert.True(t, out.QuotedPrice.IsZero())
}

func TestCreate_LineaDeCortesiaAPrecioCeroPermitida(t *testing.T) {
	h := newHarness(entity.IndustryFurniture)

	// Una línea sin costo (garantía, cortesía) es válida en la cotización;
	// el precio unitario solo se rechaza si es negativo.
	in := baseCreateRequest()
	in.Products = append(in.Products, dto.ProductLineRequest{
		Name: "Ajuste de bisagras en garantía", Category: "OTHER",
		Quantity: decimal.NewFromInt(1), UnitPrice: decimal.Zero,
	})
	out, err := h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleAdmin, in)
	require.NoError(t, err)
	assert.True(t, out.QuotedPrice.Equal(decimal.NewFromInt(500)),
		"la línea de cortesía no altera la cotización")

	in.Products[1].UnitPrice = decimal.NewFromInt(-1)
	_, err = h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleAdmin, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_CategoriaFueraDeVocabularioRechazada(t *testing.T) {
	h := newHarness(entity.IndustryFurniture)

	in := baseCreateRequest()
	in.Products[0].Category = "ENGINE" // vocabulario automotive, no furniture
	_, err := h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleAdmin, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_IndustriaDesconocidaUsaDefaultPermisivo(t *testing.T) {
	h := newHarness("floristry")

	// Cae al vocabulario de furniture pero sin su restricción de rol:
	// los empleados también pueden crear.
	in := baseCreateRequest()
	in.Products[0].Category = "OTHER"
	out, err := h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleEmployee, in)
	require.NoError(t, err)
	assert.Equal(t, "WO-000001", out.OrderNumber)
}

func TestCreate_SLACatalogoYFechaPromesa(t *testing.T) {
	h := newHarness(entity.IndustryFurniture)

	in := baseCreateRequest()
	days := 7
	in.SLADays = &days
	before := time.Now()
	out, err := h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleAdmin, in)
	require.NoError(t, err)
	require.NotNil(t, out.PromiseDate)
	expected := before.AddDate(0, 0, 7)
	assert.WithinDuration(t, expected, *out.PromiseDate, 2*time.Second,
		"la promesa debe ser creación + sla_days")

	// Valor fuera del catálogo: rechazo.
	bad := 4
	in.SLADays = &bad
	_, err = h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleAdmin, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_NotificaTecnicosAsignados(t *testing.T) {
	h := newHarness(entity.IndustryFurniture)

	in := baseCreateRequest()
	in.AssignedTechnicians = []string{"tech-1", "tech-2"}
	_, err := h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleAdmin, in)
	require.NoError(t, err)
	assert.Len(t, h.notifs.sent, 2, "un aviso por técnico asignado")
	assert.Equal(t, entity.NotifWorkOrderAssigned, h.notifs.sent[0].Type)
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados y candado de cierre
// ──────────────────────────────────────────────────────────────────────────────

func mustCreate(t *testing.T, h *harness, in dto.CreateWorkOrderRequest) string {
	t.Helper()
	out, err := h.uc.Create(context.Background(), "co-1", "u-1", entity.RoleAdmin, in)
	require.NoError(t, err)
	return out.ID
}

func TestUpdate_TransicionesLibresEntreEstados(t *testing.T) {
	h := newHarness(entity.IndustryFurniture)
	id := mustCreate(t, h, baseCreateRequest())

	// PENDING → IN_PROGRESS sin pasar por APPROVED.
	out, err := h.uc.Update(context.Background(), "co-1", id, dto.UpdateWorkOrderRequest{
		Status: strptr(entity.WOStatusInProgress),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.WOStatusInProgress, out.Status)

	// IN_PROGRESS → DRAFT (retroceso permitido).
	out, err = h.uc.Update(context.Background(), "co-1", id, dto.UpdateWorkOrderRequest{
		Status: strptr(entity.WOStatusDraft),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.WOStatusDraft, out.Status)

	// Estado desconocido: rechazo.
	_, err = h.uc.Update(context.Background(), "co-1", id, dto.UpdateWorkOrderRequest{
		Status: strptr("ARCHIVED"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdate_CandadoDeAdjuntosAlCompletar(t *testing.T) {
	h := newHarness(entity.IndustryTechnicalSolutions)
	in := baseCreateRequest()
	in.Products = nil
	in.AssetCode = "SRV-042"
	in.AssetCategory = "SERVER"
	id := mustCreate(t, h, in)

	// Sin adjuntos: bloqueado.
	_, err := h.uc.Update(context.Background(), "co-1", id, dto.UpdateWorkOrderRequest{
		Status: strptr(entity.WOStatusCompleted),
	})
	assert.ErrorIs(t, err, domain.ErrAttachmentsRequired)

	// El estado no debe haber mutado.
	current, err := h.uc.GetByID(context.Background(), "co-1", id)
	require.NoError(t, err)
	assert.Equal(t, entity.WOStatusPending, current.Status,
		"el rechazo del candado no debe dejar mutación parcial")

	// El paquete {attachments, status} en la misma petición satisface el candado.
	out, err := h.uc.Update(context.Background(), "co-1", id, dto.UpdateWorkOrderRequest{
		Status:      strptr(entity.WOStatusCompleted),
		Attachments: []string{"https://files/evidencia.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.WOStatusCompleted, out.Status)
	assert.Len(t, out.Attachments, 1)
}

func TestUpdate_IndustriaSinCandadoCompletaSinAdjuntos(t *testing.T) {
	h := newHarness(entity.IndustryFurniture)
	id := mustCreate(t, h, baseCreateRequest())

	out, err := h.uc.Update(context.Background(), "co-1", id, dto.UpdateWorkOrderRequest{
		Status: strptr(entity.WOStatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.WOStatusCompleted, out.Status,
		"furniture completa sin adjuntos")
}

func TestUpdate_AdjuntosPreviosSatisfacenElCandado(t *testing.T) {
	h := newHarness(entity.IndustryTechnicalSolutions)
	in := baseCreateRequest()
	in.Products = nil
	in.AssetCode = "SRV-042"
	in.AssetCategory = "SERVER"
	id := mustCreate(t, h, in)

	_, err := h.uc.Update(context.Background(), "co-1", id, dto.UpdateWorkOrderRequest{
		Attachments: []string{"https://files/antes.jpg"},
	})
	require.NoError(t, err)

	out, err := h.uc.Update(context.Background(), "co-1", id, dto.UpdateWorkOrderRequest{
		Status: strptr(entity.WOStatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.WOStatusCompleted, out.Status,
		"los adjuntos ya presentes cuentan para el candado")
}

func TestUpdate_RecalculaPromesaSoloConEdicionExplicita(t *testing.T) {
	h := newHarness(entity.IndustryFurniture)
	in := baseCreateRequest()
	days := 5
	in.SLADays = &days
	id := mustCreate(t, h, in)

	created, err := h.uc.GetByID(context.Background(), "co-1", id)
	require.NoError(t, err)
	originalPromise := *created.PromiseDate

	// Editar el título no toca la promesa.
	out, err := h.uc.Update(context.Background(), "co-1", id, dto.UpdateWorkOrderRequest{
		Title: strptr("Título nuevo"),
	})
	require.NoError(t, err)
	assert.Equal(t, originalPromise, *out.PromiseDate)

	// Edición explícita de sla_days recalcula desde ahora.
	newDays := 10
	out, err = h.uc.Update(context.Background(), "co-1", id, dto.UpdateWorkOrderRequest{
		SLADays: &newDays,
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 10), *out.PromiseDate, 2*time.Second)
}

func TestUpdate_CotizacionNoPuedeCaerBajoLoPagado(t *testing.T) {
	h := newHarness(entity.IndustryFurniture)
	id := mustCreate(t, h, baseCreateRequest())

	// Simular un abono directo en el repo.
	wo := h.woRepo.orders[id]
	wo.PaidAmount = decimal.NewFromInt(400)

	_, err := h.uc.Update(context.Background(), "co-1", id, dto.UpdateWorkOrderRequest{
		Products: []dto.ProductLineRequest{
			{Name: "Silla", Category: "CHAIR", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrValidation,
		"la nueva cotización (100) no puede ser menor que lo pagado (400)")
}

func TestUpdate_OtraEmpresaNoVeLaOrden(t *testing.T) {
	h := newHarness(entity.IndustryFurniture)
	id := mustCreate(t, h, baseCreateRequest())

	_, err := h.uc.Update(context.Background(), "co-ajena", id, dto.UpdateWorkOrderRequest{
		Title: strptr("intruso"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado
// ──────────────────────────────────────────────────────────────────────────────

func TestList_PaginacionYMetadatos(t *testing.T) {
	h := newHarness(entity.IndustryFurniture)
	for i := 0; i < 5; i++ {
		mustCreate(t, h, baseCreateRequest())
	}

	out, err := h.uc.List(context.Background(), "co-1", dto.WorkOrderQuery{
		PageRequest: dto.PageRequest{Page: 1, Limit: 2},
	})
	require.NoError(t, err)
	assert.Len(t, out.WorkOrders, 2)
	assert.Equal(t, 5, out.Pagination.Total)
	assert.Equal(t, 3, out.Pagination.Pages, "pages = ceil(5/2)")
}

func TestList_PaginaMasAllaDelFinalDevuelveVacio(t *testing.T) {
	h := newHarness(entity.IndustryFurniture)
	mustCreate(t, h, baseCreateRequest())

	out, err := h.uc.List(context.Background(), "co-1", dto.WorkOrderQuery{
		PageRequest: dto.PageRequest{Page: 99, Limit: 20},
	})
	require.NoError(t, err, "una página más allá del final no es error")
	assert.Empty(t, out.WorkOrders)
	assert.Equal(t, 1, out.Pagination.Total, "el total sigue reflejando los registros reales")
}
