package usecase

import (
	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/domain"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	"github.com/jhoicas/Negocio-api/internal/store"
)

// SaleUseCase registra ventas contra el store de una sesión. Aquí vive la
// validación de negocio que el store no hace: la cantidad vendida no puede
// superar las unidades del producto en el momento del registro. Una venta
// rechazada no toca ni el store ni el remoto.
type SaleUseCase struct{}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase() *SaleUseCase {
	return &SaleUseCase{}
}

// RecordSale valida y registra la venta: descuenta unidades del producto,
// actualiza los agregados del cliente (si hay) y opcionalmente crea el pago
// pendiente asociado.
//
// Errores: domain.ErrNotFound (producto o cliente inexistente),
// domain.ErrInsufficientStock (cantidad > unidades disponibles),
// domain.ErrInvalidInput (cantidad no positiva),
// domain.ErrDuplicateTransaction (transaction_id repetido).
func (uc *SaleUseCase) RecordSale(s *store.Store, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.QuantitySold <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product := s.GetProduct(in.ProductID)
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.QuantitySold > product.UnitCount() {
		return nil, domain.ErrInsufficientStock
	}

	var clientName string
	if in.ClientID != nil {
		client := s.GetClient(*in.ClientID)
		if client == nil {
			return nil, domain.ErrNotFound
		}
		clientName = client.Name
	}

	price := product.Price
	if in.SellingPrice != nil {
		price = *in.SellingPrice
	}

	sale, created := s.AddSale(store.SaleInput{
		ProductID:     product.ID,
		ProductName:   product.Name,
		QuantitySold:  in.QuantitySold,
		SellingPrice:  price,
		ClientID:      in.ClientID,
		ClientName:    clientName,
		TransactionID: in.TransactionID,
	})
	if !created {
		return nil, domain.ErrDuplicateTransaction
	}

	// Mutaciones derivadas, aplicadas tras la venta ya aceptada.
	s.AdjustProductUnits(product.ID, -in.QuantitySold)
	if in.ClientID != nil {
		s.RecordPurchase(*in.ClientID, entity.ProductPurchase{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.QuantitySold,
			Amount:      sale.Total(),
			Date:        sale.SaleDate,
		})
	}
	if in.CreatePayment {
		s.AddPayment(store.PaymentInput{
			Date:       sale.SaleDate,
			ClientName: clientName,
			Amount:     sale.Total(),
			Status:     entity.PaymentStatusPending,
			Method:     in.PaymentMethod,
			SaleID:     &sale.ID,
		})
	}

	return ToSaleResponse(sale), nil
}

// ToSaleResponse convierte la entidad a DTO de salida.
func ToSaleResponse(s entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:            s.ID,
		ProductID:     s.ProductID,
		ProductName:   s.ProductName,
		QuantitySold:  s.QuantitySold,
		SellingPrice:  s.SellingPrice,
		Total:         s.Total(),
		SaleDate:      s.SaleDate,
		ClientID:      s.ClientID,
		ClientName:    s.ClientName,
		TransactionID: s.TransactionID,
	}
}
