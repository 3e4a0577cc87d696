package domain

import (
	"errors"
	"time"
)

type EstadoPago string

const (
	PagoPendiente EstadoPago = "PENDIENTE"
	PagoValidado  EstadoPago = "VALIDADO"
	PagoRechazado EstadoPago = "RECHAZADO"
)

// Pago is a payment-proof submission. It is created PENDIENTE by a team's
// captain and resolved exactly once by an admin; the resolved state is
// terminal.
type Pago struct {
	ID             int64
	EquipoID       int64
	UsuarioPagoID  int64
	Monto          float64
	ComprobanteURL string
	Observacion    *string
	Estado         EstadoPago
	ValidadoPorID  *int64
	FechaSubida    time.Time
}

var (
	ErrNotFound = errors.New("not_found")
	// ErrAlreadyResolved is returned when resolving a payment that is no
	// longer PENDIENTE.
	ErrAlreadyResolved = errors.New("already_resolved")
)

type CreatePagoParams struct {
	EquipoID       int64
	UsuarioPagoID  int64
	Monto          float64
	ComprobanteURL string
	Observacion    *string
}

type PagoRepo interface {
	Create(p CreatePagoParams) (*Pago, error)
	GetByID(id int64) (*Pago, error)
	ListWhere(pred func(Pago) bool) ([]Pago, error)
	// Resolve moves a PENDIENTE payment to estado, recording the admin who
	// decided. Any other starting state fails with ErrAlreadyResolved.
	Resolve(id int64, estado EstadoPago, observacion *string, adminID int64) (*Pago, error)
}
