package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Rowther/multitenantcrm/internal/application/dto"
	"github.com/Rowther/multitenantcrm/internal/domain"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
)

const defaultDueDays = 30

// InvoiceUseCase motor de facturación. Emite facturas a partir de órdenes de
// trabajo, con consecutivo INV-%06d monotónico por empresa y ciclo de vida
// independiente de la orden una vez creada.
type InvoiceUseCase struct {
	txRunner    TxRunner
	invRepo     repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	notifRepo   repository.NotificationRepository
	pdfGen      InvoicePDFGenerator
}

// NewInvoiceUseCase construye el caso de uso de facturación.
func NewInvoiceUseCase(
	txRunner TxRunner,
	invRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	notifRepo repository.NotificationRepository,
	pdfGen InvoicePDFGenerator,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invRepo:     invRepo,
		companyRepo: companyRepo,
		notifRepo:   notifRepo,
		pdfGen:      pdfGen,
	}
}

// Generate emite una factura desde una orden de trabajo. Cada línea necesita
// descripción y monto positivo; el impuesto llega como monto directo o,
// en la variante IVA, como porcentaje sobre el subtotal. Totales:
//
//	subtotal = Σ items
//	total    = subtotal + impuesto
//
// El consecutivo se reserva dentro de la transacción de inserción; la
// factura nace ISSUED con vencimiento a due_days (30 por defecto).
func (uc *InvoiceUseCase) Generate(ctx context.Context, companyID, userID string, in dto.GenerateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrValidation
	}
	subtotal := decimal.Zero
	items := make([]entity.InvoiceItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Description == "" || !it.Amount.IsPositive() {
			return nil, domain.ErrValidation
		}
		items = append(items, entity.InvoiceItem{Description: it.Description, Amount: it.Amount})
		subtotal = subtotal.Add(it.Amount)
	}

	tax := in.TaxAmount
	if in.IncludeVAT {
		if in.VATPercent.IsNegative() {
			return nil, domain.ErrValidation
		}
		tax = subtotal.Mul(in.VATPercent).Div(hundred).Round(2)
	}
	if tax.IsNegative() {
		return nil, domain.ErrValidation
	}

	dueDays := in.DueDays
	if dueDays <= 0 {
		dueDays = defaultDueDays
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		WorkOrderID: in.WorkOrderID,
		Items:       items,
		Subtotal:    subtotal,
		TaxAmount:   tax,
		TotalAmount: subtotal.Add(tax),
		Status:      entity.InvoiceStatusIssued,
		IssuedDate:  now,
		DueDate:     now.AddDate(0, 0, dueDays),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.txRunner.RunInvoice(ctx, func(invRepo repository.InvoiceRepository, woRepo repository.WorkOrderRepository) error {
		wo, err := woRepo.GetByID(in.WorkOrderID)
		if err != nil {
			return err
		}
		if wo == nil || wo.CompanyID != companyID {
			return domain.ErrNotFound
		}
		seq, err := invRepo.NextInvoiceNumber(companyID)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = fmt.Sprintf("INV-%06d", seq)
		return invRepo.Create(inv)
	})
	if err != nil {
		return nil, err
	}

	uc.notifyIssued(inv, userID)

	return toInvoiceResponse(inv), nil
}

// Update edita una factura ya emitida. Items e impuesto recalculan los
// totales con las mismas fórmulas de la emisión; la orden de trabajo origen
// no se re-valida.
func (uc *InvoiceUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.invRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	if in.Items != nil {
		if len(in.Items) == 0 {
			return nil, domain.ErrValidation
		}
		subtotal := decimal.Zero
		items := make([]entity.InvoiceItem, 0, len(in.Items))
		for _, it := range in.Items {
			if it.Description == "" || !it.Amount.IsPositive() {
				return nil, domain.ErrValidation
			}
			items = append(items, entity.InvoiceItem{Description: it.Description, Amount: it.Amount})
			subtotal = subtotal.Add(it.Amount)
		}
		inv.Items = items
		inv.Subtotal = subtotal
	}
	if in.TaxAmount != nil {
		if in.TaxAmount.IsNegative() {
			return nil, domain.ErrValidation
		}
		inv.TaxAmount = *in.TaxAmount
	}
	inv.TotalAmount = inv.Subtotal.Add(inv.TaxAmount)

	if in.Status != nil {
		if !entity.ValidInvoiceStatus(*in.Status) {
			return nil, domain.ErrValidation
		}
		inv.Status = *in.Status
	}
	if in.DueDate != nil {
		inv.DueDate = *in.DueDate
	}
	inv.UpdatedAt = time.Now()

	if err := uc.invRepo.Update(inv); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// GetByID obtiene una factura verificando pertenencia a la empresa.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv), nil
}

// List devuelve las facturas de la empresa paginadas. Una página más allá
// del final devuelve lista vacía con el total real.
func (uc *InvoiceUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	invoices, total, err := uc.invRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, *toInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{
		Invoices:   out,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}, nil
}

// ListByWorkOrder devuelve las facturas emitidas contra una orden.
func (uc *InvoiceUseCase) ListByWorkOrder(ctx context.Context, companyID, workOrderID string) ([]dto.InvoiceResponse, error) {
	invoices, err := uc.invRepo.ListByWorkOrder(workOrderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		if inv.CompanyID != companyID {
			continue
		}
		out = append(out, *toInvoiceResponse(inv))
	}
	return out, nil
}

// GeneratePDF renderiza el PDF de la factura con los datos de la empresa.
func (uc *InvoiceUseCase) GeneratePDF(ctx context.Context, companyID, id string) ([]byte, error) {
	inv, err := uc.invRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdfGen.Generate(inv, company)
}

func (uc *InvoiceUseCase) notifyIssued(inv *entity.Invoice, userID string) {
	payload, _ := json.Marshal(map[string]string{
		"invoice_id":     inv.ID,
		"invoice_number": inv.InvoiceNumber,
		"total":          inv.TotalAmount.String(),
	})
	_ = uc.notifRepo.Create(&entity.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		CompanyID: inv.CompanyID,
		Type:      entity.NotifInvoiceIssued,
		Payload:   payload,
		SentAt:    time.Now(),
	})
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	items := make([]dto.InvoiceItemRequest, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.InvoiceItemRequest{Description: it.Description, Amount: it.Amount})
	}
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		WorkOrderID:   inv.WorkOrderID,
		InvoiceNumber: inv.InvoiceNumber,
		Items:         items,
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		TotalAmount:   inv.TotalAmount,
		Status:        inv.Status,
		IssuedDate:    inv.IssuedDate,
		DueDate:       inv.DueDate,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}
