package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrBusy         = errors.New("otra operación está en curso")
	ErrNoItems      = errors.New("no hay artículos para guardar")
)
