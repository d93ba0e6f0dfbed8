package gst_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Negocio-api/internal/domain"
	"github.com/jhoicas/Negocio-api/internal/gst"
)

const gstValido = "27AABCU9603R1ZX"

// ──────────────────────────────────────────────────────────────────────────────
// Validación de formato (local)
// ──────────────────────────────────────────────────────────────────────────────

func TestValidFormat(t *testing.T) {
	// Válidos: 2 dígitos + PAN + alfanumérico + 'Z' + control.
	assert.True(t, gst.ValidFormat("27AABCU9603R1ZX"))
	assert.True(t, gst.ValidFormat("09AAACH7409R1Z5"))

	// Inválidos: longitud, minúsculas, sin la 'Z' fija, vacío.
	assert.False(t, gst.ValidFormat("12345"))
	assert.False(t, gst.ValidFormat("27aabcu9603r1zx"))
	assert.False(t, gst.ValidFormat("27AABCU9603R1AX"))
	assert.False(t, gst.ValidFormat(""))
	assert.False(t, gst.ValidFormat("27AABCU9603R1ZXX"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lookup
// ──────────────────────────────────────────────────────────────────────────────

// Formato inválido: se rechaza en local, la red nunca se toca.
func TestLookup_FormatoInvalidoSinLlamadaDeRed(t *testing.T) {
	var llamadas atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		llamadas.Add(1)
	}))
	defer srv.Close()

	c := gst.NewClient(srv.URL, time.Second)
	_, err := c.Lookup(context.Background(), "12345")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int32(0), llamadas.Load(), "el formato inválido no debe generar tráfico")
}

// Respuesta 2xx: los detalles se deserializan tal cual.
func TestLookup_RespuestaExitosa(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, gstValido, in["gstNumber"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(gst.Details{
			GSTNumber:   gstValido,
			CompanyName: "Comercial Andina S.A.S.",
			City:        "Mumbai",
			State:       "Maharashtra",
		})
	}))
	defer srv.Close()

	c := gst.NewClient(srv.URL, time.Second)
	got, err := c.Lookup(context.Background(), gstValido)
	require.NoError(t, err)
	assert.Equal(t, "Comercial Andina S.A.S.", got.CompanyName)
	assert.Equal(t, "Maharashtra", got.State)
}

// Respuesta no 2xx: ErrServer con el mensaje del cuerpo si viene.
func TestLookup_ErrorDelServicio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "GSTIN no registrado"})
	}))
	defer srv.Close()

	c := gst.NewClient(srv.URL, time.Second)
	_, err := c.Lookup(context.Background(), gstValido)
	require.ErrorIs(t, err, domain.ErrServer)
	assert.Contains(t, err.Error(), "GSTIN no registrado")
}

// Fallo de transporte: ErrNetwork.
func TestLookup_FalloDeTransporte(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // servidor ya caído

	c := gst.NewClient(srv.URL, time.Second)
	_, err := c.Lookup(context.Background(), gstValido)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}
