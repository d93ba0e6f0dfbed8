package dto

// GSTLookupRequest entrada para consultar un número GST.
type GSTLookupRequest struct {
	GSTNumber string `json:"gstNumber" validate:"required,len=15"`
}

// GSTLookupResponse detalles de la empresa consultada.
type GSTLookupResponse struct {
	GSTNumber        string `json:"gstNumber"`
	CompanyName      string `json:"companyName"`
	Address          string `json:"address"`
	City             string `json:"city"`
	State            string `json:"state"`
	Pincode          string `json:"pincode"`
	RegistrationDate string `json:"registrationDate"`
	BusinessType     string `json:"businessType"`
}
