package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La taxonomía sigue las tres familias del gateway remoto (sesión, red,
// servidor) más los errores de validación que nunca llegan a la capa de sync.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// ErrNoSession indica que no hay sesión autenticada para el usuario
	// (sesión no iniciada o ya cerrada). El gateway remoto lo devuelve antes
	// de tocar la red.
	ErrNoSession = errors.New("sesión no autenticada")

	// ErrNetwork indica un fallo de transporte hacia el backend remoto.
	ErrNetwork = errors.New("fallo de red")

	// ErrServer indica que el backend remoto rechazó la petición
	// (respuesta no 2xx o error del motor de base de datos).
	ErrServer = errors.New("error del servidor remoto")

	// ErrDuplicateTransaction indica una venta con un transaction_id ya
	// registrado (deduplicación de transacciones en el store local).
	ErrDuplicateTransaction = errors.New("transacción duplicada")
)
