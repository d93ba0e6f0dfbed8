package boltdocs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Negocio-api/internal/domain/repository"
	"github.com/jhoicas/Negocio-api/internal/infrastructure/boltdocs"
)

func openTestStore(t *testing.T) *boltdocs.Store {
	t.Helper()
	s, err := boltdocs.Open(filepath.Join(t.TempDir(), "docs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// Clave sin guardar: nil, sin error.
func TestGet_ClaveVacia(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Get("user-1", repository.DocKeyEstimates)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// Put reemplaza el valor completo; Get lo devuelve byte a byte.
func TestPutGet_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	v1 := []byte(`[{"id":"a"}]`)
	require.NoError(t, s.Put("user-1", repository.DocKeyEstimates, v1))
	got, err := s.Get("user-1", repository.DocKeyEstimates)
	require.NoError(t, err)
	assert.Equal(t, v1, got)

	v2 := []byte(`[{"id":"a"},{"id":"b"}]`)
	require.NoError(t, s.Put("user-1", repository.DocKeyEstimates, v2))
	got, err = s.Get("user-1", repository.DocKeyEstimates)
	require.NoError(t, err)
	assert.Equal(t, v2, got)
}

// Los datos están separados por usuario y por clave.
func TestPutGet_AislamientoPorUsuarioYClave(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("user-1", repository.DocKeyEstimates, []byte(`["est"]`)))
	require.NoError(t, s.Put("user-1", repository.DocKeyDeliveryChallans, []byte(`["dc"]`)))
	require.NoError(t, s.Put("user-2", repository.DocKeyEstimates, []byte(`["otro"]`)))

	got, err := s.Get("user-1", repository.DocKeyEstimates)
	require.NoError(t, err)
	assert.Equal(t, []byte(`["est"]`), got)

	got, err = s.Get("user-1", repository.DocKeyDeliveryChallans)
	require.NoError(t, err)
	assert.Equal(t, []byte(`["dc"]`), got)

	got, err = s.Get("user-2", repository.DocKeyDeliveryChallans)
	require.NoError(t, err)
	assert.Nil(t, got)
}
