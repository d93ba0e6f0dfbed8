// Package gst implementa la validación de formato de números GST (India) y
// la consulta de detalles contra la función serverless de lookup. Una
// entrada con formato inválido se rechaza en local: nunca llega a la red.
package gst

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/guonaihong/gout"

	"github.com/jhoicas/Negocio-api/internal/domain"
)

// Formato GSTIN: 2 dígitos (estado), 5 letras + 4 dígitos + 1 letra (PAN),
// 1 alfanumérico, la 'Z' literal y 1 alfanumérico de control. 15 caracteres.
var gstPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)

// ValidFormat indica si el número cumple el formato GSTIN.
func ValidFormat(gstNumber string) bool {
	return gstPattern.MatchString(gstNumber)
}

// Details datos de la empresa devueltos por el lookup.
type Details struct {
	GSTNumber        string `json:"gstNumber"`
	CompanyName      string `json:"companyName"`
	Address          string `json:"address"`
	City             string `json:"city"`
	State            string `json:"state"`
	Pincode          string `json:"pincode"`
	RegistrationDate string `json:"registrationDate"`
	BusinessType     string `json:"businessType"`
}

type lookupError struct {
	Error string `json:"error"`
}

// Client consulta la función serverless de lookup GST.
type Client struct {
	url     string
	timeout time.Duration
}

// NewClient construye el cliente. url es el endpoint de la función.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{url: url, timeout: timeout}
}

// Lookup valida el formato y consulta los detalles del GSTIN.
// Errores: domain.ErrInvalidInput (formato, sin llamada de red),
// domain.ErrNetwork (transporte), domain.ErrServer (respuesta no 2xx).
func (c *Client) Lookup(ctx context.Context, gstNumber string) (*Details, error) {
	if !ValidFormat(gstNumber) {
		return nil, fmt.Errorf("%w: número GST con formato inválido", domain.ErrInvalidInput)
	}
	if c.url == "" {
		return nil, fmt.Errorf("%w: GST_LOOKUP_URL no configurado", domain.ErrServer)
	}

	var (
		body string
		code int
	)
	err := gout.POST(c.url).
		WithContext(ctx).
		SetTimeout(c.timeout).
		SetJSON(gout.H{"gstNumber": gstNumber}).
		Code(&code).
		BindBody(&body).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	if code < 200 || code >= 300 {
		var e lookupError
		_ = json.Unmarshal([]byte(body), &e)
		if e.Error != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrServer, e.Error)
		}
		return nil, fmt.Errorf("%w: lookup GST respondió %d", domain.ErrServer, code)
	}
	var out Details
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, fmt.Errorf("%w: respuesta ilegible del lookup", domain.ErrServer)
	}
	return &out, nil
}
