package infra

import (
	"errors"
	"testing"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/payments/domain"
)

func TestPaymentLifecycle(t *testing.T) {
	repo := NewMemPagoRepo()

	p, err := repo.Create(domain.CreatePagoParams{
		EquipoID: 1, UsuarioPagoID: 10, Monto: 25,
		ComprobanteURL: "https://files.example/comprobante.png",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Estado != domain.PagoPendiente {
		t.Fatalf("estado = %s, want PENDIENTE", p.Estado)
	}
	if p.ValidadoPorID != nil {
		t.Fatal("new payment should have no validator")
	}

	obs := "comprobante legible"
	resolved, err := repo.Resolve(p.ID, domain.PagoValidado, &obs, 99)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Estado != domain.PagoValidado {
		t.Fatalf("estado = %s, want VALIDADO", resolved.Estado)
	}
	if resolved.ValidadoPorID == nil || *resolved.ValidadoPorID != 99 {
		t.Fatalf("validadoPor = %v, want 99", resolved.ValidadoPorID)
	}
}

func TestResolveIsTerminal(t *testing.T) {
	repo := NewMemPagoRepo()
	p, _ := repo.Create(domain.CreatePagoParams{
		EquipoID: 1, UsuarioPagoID: 10, Monto: 25,
		ComprobanteURL: "https://files.example/comprobante.png",
	})

	if _, err := repo.Resolve(p.ID, domain.PagoRechazado, nil, 99); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	// a second decision must fail, whatever direction it goes
	if _, err := repo.Resolve(p.ID, domain.PagoValidado, nil, 99); !errors.Is(err, domain.ErrAlreadyResolved) {
		t.Fatalf("got %v, want ErrAlreadyResolved", err)
	}
	if _, err := repo.Resolve(p.ID, domain.PagoRechazado, nil, 100); !errors.Is(err, domain.ErrAlreadyResolved) {
		t.Fatalf("got %v, want ErrAlreadyResolved", err)
	}

	got, err := repo.GetByID(p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Estado != domain.PagoRechazado {
		t.Fatalf("estado overwritten to %s", got.Estado)
	}
}

func TestResolveUnknownPayment(t *testing.T) {
	repo := NewMemPagoRepo()
	if _, err := repo.Resolve(404, domain.PagoValidado, nil, 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestListWhereFiltersByTeam(t *testing.T) {
	repo := NewMemPagoRepo()
	repo.Create(domain.CreatePagoParams{EquipoID: 1, UsuarioPagoID: 10, Monto: 25, ComprobanteURL: "https://f/1"})
	repo.Create(domain.CreatePagoParams{EquipoID: 2, UsuarioPagoID: 20, Monto: 30, ComprobanteURL: "https://f/2"})

	list, err := repo.ListWhere(func(p domain.Pago) bool { return p.EquipoID == 1 })
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].EquipoID != 1 {
		t.Fatalf("got %d payments, want only team 1's", len(list))
	}
}
