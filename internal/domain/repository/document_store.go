package repository

// Claves fijas del almacén local de documentos. Cada clave guarda un array
// JSON completo, igual que el localStorage del cliente original.
const (
	DocKeyEstimates        = "estimates"
	DocKeyDeliveryChallans = "deliveryChallans"
)

// DocumentStore define el puerto del almacén local de documentos
// (cotizaciones y remisiones). Estos documentos NO pasan por el
// SnapshotGateway: se persisten solo en disco local, por usuario y clave.
type DocumentStore interface {
	// Get devuelve el array JSON crudo guardado bajo (userID, key);
	// []byte(nil) si no hay nada guardado.
	Get(userID, key string) ([]byte, error)

	// Put reemplaza el array JSON completo bajo (userID, key).
	Put(userID, key string, value []byte) error

	// Close libera el archivo subyacente.
	Close() error
}
