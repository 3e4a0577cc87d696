package infra

import (
	"errors"
	"testing"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/tournaments/domain"
)

func TestEnrollRegistersTeamOnce(t *testing.T) {
	repo := NewMemTorneoRepo()
	tor, err := repo.Create(domain.CreateTorneoParams{CampeonatoID: 1, Disciplina: "Futbol", Categoria: "Masculino"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Enroll(tor.ID, 5); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := repo.Enroll(tor.ID, 5); !errors.Is(err, domain.ErrAlreadyEnrolled) {
		t.Fatalf("got %v, want ErrAlreadyEnrolled", err)
	}
	if err := repo.Enroll(999, 5); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	got, err := repo.GetByID(tor.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.HasTeam(5) {
		t.Fatal("enrolled team missing from tournament")
	}
}

func TestPartidoCreateDefaultsToProgramado(t *testing.T) {
	repo := NewMemPartidoRepo()
	local := int64(1)
	p, err := repo.Create(domain.CreatePartidoParams{TorneoID: 1, EquipoLocalID: &local})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Estado != domain.PartidoProgramado {
		t.Fatalf("estado = %s, want PROGRAMADO", p.Estado)
	}
	if p.EquipoVisitanteID != nil {
		t.Fatal("away side should stay unset")
	}

	list, err := repo.ListWhere(func(m domain.Partido) bool { return m.TorneoID == 1 })
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d matches, want 1", len(list))
	}
}
