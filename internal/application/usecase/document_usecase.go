package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/domain"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
)

// DocumentPDFGenerator puerto de render PDF para cotizaciones y remisiones.
// Lo implementa infrastructure/pdf (Maroto).
type DocumentPDFGenerator interface {
	GenerateEstimatePDF(ctx context.Context, est *entity.Estimate) ([]byte, error)
	GenerateChallanPDF(ctx context.Context, ch *entity.DeliveryChallan) ([]byte, error)
}

// DocumentUseCase gestiona cotizaciones y remisiones en el almacén local de
// documentos (claves fijas con el array JSON completo, como el localStorage
// del cliente original). Estos documentos no participan del sync remoto.
type DocumentUseCase struct {
	docs repository.DocumentStore
	pdf  DocumentPDFGenerator
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(docs repository.DocumentStore, pdf DocumentPDFGenerator) *DocumentUseCase {
	return &DocumentUseCase{docs: docs, pdf: pdf}
}

// ── Cotizaciones ──────────────────────────────────────────────────────────────

// CreateEstimate crea la cotización, calcula el total y la persiste.
func (uc *DocumentUseCase) CreateEstimate(userID string, in dto.CreateEstimateRequest) (*entity.Estimate, error) {
	if in.ClientName == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.ListEstimates(userID)
	if err != nil {
		return nil, err
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	number := in.Number
	if number == "" {
		number = fmt.Sprintf("EST-%04d", len(list)+1)
	}
	est := entity.Estimate{
		ID:         uuid.New().String(),
		Number:     number,
		ClientName: in.ClientName,
		ClientGST:  in.ClientGST,
		Items:      normalizeItems(in.Items),
		Total:      itemsTotal(in.Items),
		Date:       date,
		Notes:      in.Notes,
	}
	list = append(list, est)
	if err := uc.putEstimates(userID, list); err != nil {
		return nil, err
	}
	return &est, nil
}

// ListEstimates devuelve todas las cotizaciones del usuario.
func (uc *DocumentUseCase) ListEstimates(userID string) ([]entity.Estimate, error) {
	raw, err := uc.docs.Get(userID, repository.DocKeyEstimates)
	if err != nil {
		return nil, err
	}
	list := []entity.Estimate{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("cotizaciones corruptas: %w", err)
		}
	}
	return list, nil
}

// DeleteEstimate elimina la cotización por ID.
func (uc *DocumentUseCase) DeleteEstimate(userID, id string) error {
	list, err := uc.ListEstimates(userID)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			return uc.putEstimates(userID, list)
		}
	}
	return domain.ErrNotFound
}

// EstimatePDF genera el PDF de la cotización.
func (uc *DocumentUseCase) EstimatePDF(ctx context.Context, userID, id string) ([]byte, error) {
	list, err := uc.ListEstimates(userID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return uc.pdf.GenerateEstimatePDF(ctx, &list[i])
		}
	}
	return nil, domain.ErrNotFound
}

func (uc *DocumentUseCase) putEstimates(userID string, list []entity.Estimate) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return uc.docs.Put(userID, repository.DocKeyEstimates, raw)
}

// ── Remisiones ────────────────────────────────────────────────────────────────

// CreateChallan crea la remisión de entrega y la persiste.
func (uc *DocumentUseCase) CreateChallan(userID string, in dto.CreateChallanRequest) (*entity.DeliveryChallan, error) {
	if in.ClientName == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.ListChallans(userID)
	if err != nil {
		return nil, err
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	number := in.Number
	if number == "" {
		number = fmt.Sprintf("DC-%04d", len(list)+1)
	}
	ch := entity.DeliveryChallan{
		ID:          uuid.New().String(),
		Number:      number,
		ClientName:  in.ClientName,
		ClientGST:   in.ClientGST,
		Address:     in.Address,
		Items:       normalizeItems(in.Items),
		Date:        date,
		VehicleNo:   in.VehicleNo,
		DeliveredBy: in.DeliveredBy,
	}
	list = append(list, ch)
	if err := uc.putChallans(userID, list); err != nil {
		return nil, err
	}
	return &ch, nil
}

// ListChallans devuelve todas las remisiones del usuario.
func (uc *DocumentUseCase) ListChallans(userID string) ([]entity.DeliveryChallan, error) {
	raw, err := uc.docs.Get(userID, repository.DocKeyDeliveryChallans)
	if err != nil {
		return nil, err
	}
	list := []entity.DeliveryChallan{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("remisiones corruptas: %w", err)
		}
	}
	return list, nil
}

// DeleteChallan elimina la remisión por ID.
func (uc *DocumentUseCase) DeleteChallan(userID, id string) error {
	list, err := uc.ListChallans(userID)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			return uc.putChallans(userID, list)
		}
	}
	return domain.ErrNotFound
}

// ChallanPDF genera el PDF de la remisión.
func (uc *DocumentUseCase) ChallanPDF(ctx context.Context, userID, id string) ([]byte, error) {
	list, err := uc.ListChallans(userID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return uc.pdf.GenerateChallanPDF(ctx, &list[i])
		}
	}
	return nil, domain.ErrNotFound
}

func (uc *DocumentUseCase) putChallans(userID string, list []entity.DeliveryChallan) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return uc.docs.Put(userID, repository.DocKeyDeliveryChallans, raw)
}

// normalizeItems completa el importe de cada línea (cantidad × tarifa) si
// llegó en cero.
func normalizeItems(items []entity.DocumentItem) []entity.DocumentItem {
	out := make([]entity.DocumentItem, len(items))
	for i, it := range items {
		if it.Amount.IsZero() {
			it.Amount = it.Rate.Mul(decimal.NewFromInt(int64(it.Quantity)))
		}
		out[i] = it
	}
	return out
}

func itemsTotal(items []entity.DocumentItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range normalizeItems(items) {
		total = total.Add(it.Amount)
	}
	return total
}
