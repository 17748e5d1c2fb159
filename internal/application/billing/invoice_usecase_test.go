package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rowther/multitenantcrm/internal/application/billing"
	"github.com/Rowther/multitenantcrm/internal/application/dto"
	"github.com/Rowther/multitenantcrm/internal/domain"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
)

// nopPDFGenerator devuelve bytes fijos; el contenido real lo cubre el
// generador maroto.
type nopPDFGenerator struct{}

func (nopPDFGenerator) Generate(inv *entity.Invoice, company *entity.Company) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

func newInvoiceHarness() (*billing.InvoiceUseCase, *fakeInvoiceRepo) {
	woRepo := &fakeWorkOrderRepo{orders: map[string]*entity.WorkOrder{
		"wo-1": {ID: "wo-1", CompanyID: "co-1", QuotedPrice: decimal.NewFromInt(500)},
	}}
	invRepo := newFakeInvoiceRepo()
	companyRepo := &fakeCompanyRepo{companies: map[string]*entity.Company{
		"co-1": {ID: "co-1", Name: "Acme", Industry: entity.IndustryFurniture},
	}}
	uc := billing.NewInvoiceUseCase(
		&fakeTxRunner{woRepo: woRepo, invRepo: invRepo},
		invRepo, companyRepo, &fakeNotifRepo{}, nopPDFGenerator{},
	)
	return uc, invRepo
}

func baseInvoiceRequest() dto.GenerateInvoiceRequest {
	return dto.GenerateInvoiceRequest{
		WorkOrderID: "wo-1",
		Items: []dto.InvoiceItemRequest{
			{Description: "Mano de obra", Amount: decimal.NewFromInt(100)},
		},
		TaxAmount: decimal.NewFromInt(5),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_TotalesConImpuestoDirecto(t *testing.T) {
	uc, _ := newInvoiceHarness()

	out, err := uc.Generate(context.Background(), "co-1", "u-1", baseInvoiceRequest())
	require.NoError(t, err)
	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.TaxAmount.Equal(decimal.NewFromInt(5)))
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(105)),
		"total = subtotal + impuesto")
	assert.Equal(t, entity.InvoiceStatusIssued, out.Status, "la factura nace ISSUED")
}

func TestGenerate_VarianteIVACalculaSobreSubtotal(t *testing.T) {
	uc, _ := newInvoiceHarness()

	in := baseInvoiceRequest()
	in.TaxAmount = decimal.Zero
	in.IncludeVAT = true
	in.VATPercent = decimal.NewFromInt(19)
	in.Items = []dto.InvoiceItemRequest{
		{Description: "Instalación", Amount: decimal.NewFromInt(200)},
		{Description: "Materiales", Amount: decimal.NewFromInt(50)},
	}
	out, err := uc.Generate(context.Background(), "co-1", "u-1", in)
	require.NoError(t, err)
	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(250)))
	assert.True(t, out.TaxAmount.Equal(decimal.NewFromFloat(47.5)),
		"IVA de 19 sobre 250")
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromFloat(297.5)))
}

func TestGenerate_ConsecutivoMonotonicoPorEmpresa(t *testing.T) {
	uc, _ := newInvoiceHarness()

	first, err := uc.Generate(context.Background(), "co-1", "u-1", baseInvoiceRequest())
	require.NoError(t, err)
	second, err := uc.Generate(context.Background(), "co-1", "u-1", baseInvoiceRequest())
	require.NoError(t, err)

	assert.Equal(t, "INV-000001", first.InvoiceNumber)
	assert.Equal(t, "INV-000002", second.InvoiceNumber)
}

func TestGenerate_VencimientoPorDefectoTreintaDias(t *testing.T) {
	uc, _ := newInvoiceHarness()

	out, err := uc.Generate(context.Background(), "co-1", "u-1", baseInvoiceRequest())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), out.DueDate, 2*time.Second)

	in := baseInvoiceRequest()
	in.DueDays = 15
	out, err = uc.Generate(context.Background(), "co-1", "u-1", in)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 15), out.DueDate, 2*time.Second)
}

func TestGenerate_ValidacionDeItems(t *testing.T) {
	uc, _ := newInvoiceHarness()

	in := baseInvoiceRequest()
	in.Items = nil
	_, err := uc.Generate(context.Background(), "co-1", "u-1", in)
	assert.ErrorIs(t, err, domain.ErrValidation, "sin líneas no hay factura")

	in = baseInvoiceRequest()
	in.Items[0].Description = ""
	_, err = uc.Generate(context.Background(), "co-1", "u-1", in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = baseInvoiceRequest()
	in.Items[0].Amount = decimal.NewFromInt(-10)
	_, err = uc.Generate(context.Background(), "co-1", "u-1", in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = baseInvoiceRequest()
	in.Items[0].Amount = decimal.Zero
	_, err = uc.Generate(context.Background(), "co-1", "u-1", in)
	assert.ErrorIs(t, err, domain.ErrValidation,
		"una línea en cero no es facturable: el monto debe ser positivo")
}

func TestUpdate_LineaEnCeroRechazada(t *testing.T) {
	uc, _ := newInvoiceHarness()

	created, err := uc.Generate(context.Background(), "co-1", "u-1", baseInvoiceRequest())
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), "co-1", created.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{
			{Description: "Línea en cero", Amount: decimal.Zero},
		},
	})
	assert.ErrorIs(t, err, domain.ErrValidation,
		"la edición aplica la misma validación de montos que la emisión")
}

func TestGenerate_OrdenDeOtraEmpresaInvisibleParaFacturar(t *testing.T) {
	uc, invRepo := newInvoiceHarness()

	_, err := uc.Generate(context.Background(), "co-ajena", "u-1", baseInvoiceRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, invRepo.invoices, "el rechazo no consume consecutivo ni inserta")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida independiente
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_RecalculaTotalesSinRevalidarLaOrden(t *testing.T) {
	uc, _ := newInvoiceHarness()

	created, err := uc.Generate(context.Background(), "co-1", "u-1", baseInvoiceRequest())
	require.NoError(t, err)

	// Las líneas nuevas superan el precio cotizado de la orden (500);
	// la factura vive su propio ciclo y no se re-valida contra la orden.
	newTax := decimal.NewFromInt(120)
	out, err := uc.Update(context.Background(), "co-1", created.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{
			{Description: "Trabajo adicional", Amount: decimal.NewFromInt(900)},
		},
		TaxAmount: &newTax,
	})
	require.NoError(t, err)
	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(900)))
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(1020)))
	assert.Equal(t, created.InvoiceNumber, out.InvoiceNumber,
		"editar no re-numera la factura")
}

func TestUpdate_CambioDeEstadoValidado(t *testing.T) {
	uc, _ := newInvoiceHarness()

	created, err := uc.Generate(context.Background(), "co-1", "u-1", baseInvoiceRequest())
	require.NoError(t, err)

	paid := entity.InvoiceStatusPaid
	out, err := uc.Update(context.Background(), "co-1", created.ID, dto.UpdateInvoiceRequest{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, out.Status)

	bogus := "SHREDDED"
	_, err = uc.Update(context.Background(), "co-1", created.ID, dto.UpdateInvoiceRequest{Status: &bogus})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListByWorkOrder_FiltraPorEmpresa(t *testing.T) {
	uc, invRepo := newInvoiceHarness()

	created, err := uc.Generate(context.Background(), "co-1", "u-1", baseInvoiceRequest())
	require.NoError(t, err)

	// Factura ajena colada contra la misma orden: no debe aparecer.
	invRepo.invoices["ajena"] = &entity.Invoice{ID: "ajena", CompanyID: "co-2", WorkOrderID: "wo-1"}

	out, err := uc.ListByWorkOrder(context.Background(), "co-1", "wo-1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, created.ID, out[0].ID)
}

func TestList_TotalRealAunqueHayaVariasPaginas(t *testing.T) {
	uc, _ := newInvoiceHarness()

	for i := 0; i < 5; i++ {
		_, err := uc.Generate(context.Background(), "co-1", "u-1", baseInvoiceRequest())
		require.NoError(t, err)
	}

	out, err := uc.List(context.Background(), "co-1", dto.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Invoices, 2)
	assert.Equal(t, 5, out.Pagination.Total,
		"el total es el de la empresa, no el tamaño de la página")
	assert.Equal(t, 3, out.Pagination.Pages, "pages = ceil(5/2)")
}

func TestList_PaginaMasAllaDelFinalConservaElTotal(t *testing.T) {
	uc, _ := newInvoiceHarness()

	_, err := uc.Generate(context.Background(), "co-1", "u-1", baseInvoiceRequest())
	require.NoError(t, err)

	out, err := uc.List(context.Background(), "co-1", dto.PageRequest{Page: 99, Limit: 20})
	require.NoError(t, err, "una página más allá del final no es error")
	assert.Empty(t, out.Invoices)
	assert.Equal(t, 1, out.Pagination.Total,
		"los metadatos siguen reflejando los registros reales")
}

func TestGeneratePDF_VerificaPertenencia(t *testing.T) {
	uc, _ := newInvoiceHarness()

	created, err := uc.Generate(context.Background(), "co-1", "u-1", baseInvoiceRequest())
	require.NoError(t, err)

	pdf, err := uc.GeneratePDF(context.Background(), "co-1", created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	_, err = uc.GeneratePDF(context.Background(), "co-ajena", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
