package dto

// SetAutoSyncRequest cambio del flag de auto-sync de la sesión.
type SetAutoSyncRequest struct {
	Enabled bool `json:"enabled"`
}

// SyncStatusResponse estado del mecanismo de sync de la sesión.
type SyncStatusResponse struct {
	AutoSync bool `json:"auto_sync"`
	Products int  `json:"products"`
	Sales    int  `json:"sales"`
	Clients  int  `json:"clients"`
	Payments int  `json:"payments"`
	Meetings int  `json:"meetings"`
	Expiries int  `json:"expiries"`
}
