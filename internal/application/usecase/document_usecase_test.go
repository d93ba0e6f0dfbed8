package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/usecase"
	"github.com/jhoicas/Negocio-api/internal/domain"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// memDocs almacén de documentos en memoria: (userID, key) → array JSON.
type memDocs struct {
	data map[string][]byte
}

func newMemDocs() *memDocs { return &memDocs{data: map[string][]byte{}} }

func (m *memDocs) Get(userID, key string) ([]byte, error) { return m.data[userID+"/"+key], nil }
func (m *memDocs) Put(userID, key string, value []byte) error {
	m.data[userID+"/"+key] = value
	return nil
}
func (m *memDocs) Close() error { return nil }

// fakePDF devuelve un PDF sintético y registra el documento pedido.
type fakePDF struct {
	lastEstimate *entity.Estimate
	lastChallan  *entity.DeliveryChallan
}

func (f *fakePDF) GenerateEstimatePDF(_ context.Context, est *entity.Estimate) ([]byte, error) {
	f.lastEstimate = est
	return []byte("%PDF-est"), nil
}

func (f *fakePDF) GenerateChallanPDF(_ context.Context, ch *entity.DeliveryChallan) ([]byte, error) {
	f.lastChallan = ch
	return []byte("%PDF-dc"), nil
}

func newDocumentUC() (*usecase.DocumentUseCase, *fakePDF) {
	pdf := &fakePDF{}
	return usecase.NewDocumentUseCase(newMemDocs(), pdf), pdf
}

func items() []entity.DocumentItem {
	return []entity.DocumentItem{
		{Name: "Arroz", Quantity: 2, Rate: decimal.NewFromInt(50)},
		{Name: "Sal", Quantity: 1, Rate: decimal.NewFromInt(30), Amount: decimal.NewFromInt(30)},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Cotizaciones
// ──────────────────────────────────────────────────────────────────────────────

// Crear calcula importes por línea y el total, y numera EST-0001, EST-0002...
func TestCreateEstimate_TotalesYNumeracion(t *testing.T) {
	uc, _ := newDocumentUC()

	est, err := uc.CreateEstimate("user-1", dto.CreateEstimateRequest{
		ClientName: "María",
		Items:      items(),
	})
	require.NoError(t, err)
	assert.Equal(t, "EST-0001", est.Number)
	assert.NotEmpty(t, est.ID)
	// 2×50 completado + 30 explícito.
	assert.True(t, decimal.NewFromInt(130).Equal(est.Total))
	assert.True(t, decimal.NewFromInt(100).Equal(est.Items[0].Amount))

	otra, err := uc.CreateEstimate("user-1", dto.CreateEstimateRequest{
		ClientName: "Pedro",
		Items:      items(),
	})
	require.NoError(t, err)
	assert.Equal(t, "EST-0002", otra.Number)

	list, err := uc.ListEstimates("user-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

// Un número explícito se respeta tal cual.
func TestCreateEstimate_NumeroExplicito(t *testing.T) {
	uc, _ := newDocumentUC()
	est, err := uc.CreateEstimate("user-1", dto.CreateEstimateRequest{
		Number:     "COT-99",
		ClientName: "María",
		Items:      items(),
	})
	require.NoError(t, err)
	assert.Equal(t, "COT-99", est.Number)
}

// Sin cliente o sin líneas: inválido.
func TestCreateEstimate_EntradaInvalida(t *testing.T) {
	uc, _ := newDocumentUC()

	_, err := uc.CreateEstimate("user-1", dto.CreateEstimateRequest{Items: items()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateEstimate("user-1", dto.CreateEstimateRequest{ClientName: "María"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Las cotizaciones están separadas por usuario.
func TestListEstimates_AislamientoPorUsuario(t *testing.T) {
	uc, _ := newDocumentUC()
	_, err := uc.CreateEstimate("user-1", dto.CreateEstimateRequest{ClientName: "María", Items: items()})
	require.NoError(t, err)

	list, err := uc.ListEstimates("user-2")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteEstimate(t *testing.T) {
	uc, _ := newDocumentUC()
	est, err := uc.CreateEstimate("user-1", dto.CreateEstimateRequest{ClientName: "María", Items: items()})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteEstimate("user-1", est.ID))
	list, err := uc.ListEstimates("user-1")
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, uc.DeleteEstimate("user-1", est.ID), domain.ErrNotFound)
}

func TestEstimatePDF(t *testing.T) {
	uc, pdf := newDocumentUC()
	est, err := uc.CreateEstimate("user-1", dto.CreateEstimateRequest{ClientName: "María", Items: items()})
	require.NoError(t, err)

	out, err := uc.EstimatePDF(context.Background(), "user-1", est.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-est"), out)
	require.NotNil(t, pdf.lastEstimate)
	assert.Equal(t, est.ID, pdf.lastEstimate.ID)

	_, err = uc.EstimatePDF(context.Background(), "user-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Remisiones
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateChallan_NumeracionYCampos(t *testing.T) {
	uc, _ := newDocumentUC()

	ch, err := uc.CreateChallan("user-1", dto.CreateChallanRequest{
		ClientName:  "María",
		Address:     "Calle 10 #5-20",
		Items:       items(),
		VehicleNo:   "ABC-123",
		DeliveredBy: "Pedro",
	})
	require.NoError(t, err)
	assert.Equal(t, "DC-0001", ch.Number)
	assert.Equal(t, "ABC-123", ch.VehicleNo)
	assert.True(t, decimal.NewFromInt(100).Equal(ch.Items[0].Amount))

	list, err := uc.ListChallans("user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	// La numeración de remisiones es independiente de las cotizaciones.
	est, err := uc.CreateEstimate("user-1", dto.CreateEstimateRequest{ClientName: "María", Items: items()})
	require.NoError(t, err)
	assert.Equal(t, "EST-0001", est.Number)
}

func TestChallanPDF_YBorrado(t *testing.T) {
	uc, pdf := newDocumentUC()
	ch, err := uc.CreateChallan("user-1", dto.CreateChallanRequest{ClientName: "María", Items: items()})
	require.NoError(t, err)

	out, err := uc.ChallanPDF(context.Background(), "user-1", ch.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-dc"), out)
	require.NotNil(t, pdf.lastChallan)

	require.NoError(t, uc.DeleteChallan("user-1", ch.ID))
	assert.ErrorIs(t, uc.DeleteChallan("user-1", ch.ID), domain.ErrNotFound)
}
