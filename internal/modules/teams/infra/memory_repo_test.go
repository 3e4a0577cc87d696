package infra

import (
	"errors"
	"testing"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/teams/domain"
)

func TestCreateEnforcesOneTeamPerCaptain(t *testing.T) {
	repo := NewMemTeamRepo()

	if _, err := repo.Create(domain.CreateTeamParams{Nombre: "Tigres", CapitanID: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := repo.Create(domain.CreateTeamParams{Nombre: "Leones", CapitanID: 1})
	if !errors.Is(err, domain.ErrAlreadyCaptain) {
		t.Fatalf("got %v, want ErrAlreadyCaptain", err)
	}
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	repo := NewMemTeamRepo()

	if _, err := repo.Create(domain.CreateTeamParams{Nombre: "Tigres", CapitanID: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := repo.Create(domain.CreateTeamParams{Nombre: "Tigres", CapitanID: 2})
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("got %v, want ErrDuplicateName", err)
	}
}

func TestCaptainIsAlsoMember(t *testing.T) {
	repo := NewMemTeamRepo()

	team, err := repo.Create(domain.CreateTeamParams{Nombre: "Tigres", CapitanID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !team.HasMember(1) {
		t.Fatal("captain should be stored as a member")
	}

	m, err := repo.GetMembership(1)
	if err != nil {
		t.Fatalf("membership: %v", err)
	}
	if m.CaptainOf == nil || *m.CaptainOf != team.ID {
		t.Fatalf("captainOf = %v, want %d", m.CaptainOf, team.ID)
	}
	if !m.BelongsTo(team.ID) {
		t.Fatal("captain should belong to the team")
	}
}

func TestAddMemberAndMembership(t *testing.T) {
	repo := NewMemTeamRepo()

	team, err := repo.Create(domain.CreateTeamParams{Nombre: "Tigres", CapitanID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.AddMember(team.ID, 2); err != nil {
		t.Fatalf("add member: %v", err)
	}
	if err := repo.AddMember(team.ID, 2); !errors.Is(err, domain.ErrAlreadyMember) {
		t.Fatalf("got %v, want ErrAlreadyMember", err)
	}
	if err := repo.AddMember(999, 3); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	m, err := repo.GetMembership(2)
	if err != nil {
		t.Fatalf("membership: %v", err)
	}
	if m.CaptainOf != nil {
		t.Fatal("plain member should not captain anything")
	}
	if !m.BelongsTo(team.ID) {
		t.Fatal("added member should belong to the team")
	}

	outsider, err := repo.GetMembership(42)
	if err != nil {
		t.Fatalf("membership: %v", err)
	}
	if outsider.CaptainOf != nil || len(outsider.MemberOf) != 0 {
		t.Fatalf("outsider membership should be empty, got %+v", outsider)
	}
}

func TestListWhereAppliesPredicate(t *testing.T) {
	repo := NewMemTeamRepo()
	a, _ := repo.Create(domain.CreateTeamParams{Nombre: "Tigres", CapitanID: 1})
	repo.Create(domain.CreateTeamParams{Nombre: "Leones", CapitanID: 2})

	list, err := repo.ListWhere(func(t domain.Team) bool { return t.ID == a.ID })
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != a.ID {
		t.Fatalf("got %d teams, want exactly Tigres", len(list))
	}

	none, err := repo.ListWhere(func(domain.Team) bool { return false })
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("empty match should be an empty list, got %d", len(none))
	}
}

func TestUpdateTeam(t *testing.T) {
	repo := NewMemTeamRepo()
	a, _ := repo.Create(domain.CreateTeamParams{Nombre: "Tigres", CapitanID: 1})
	repo.Create(domain.CreateTeamParams{Nombre: "Leones", CapitanID: 2})

	taken := "Leones"
	if _, err := repo.Update(a.ID, domain.UpdateTeamParams{Nombre: &taken}); !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("got %v, want ErrDuplicateName", err)
	}

	nuevo := "Tigres FC"
	updated, err := repo.Update(a.ID, domain.UpdateTeamParams{Nombre: &nuevo})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Nombre != "Tigres FC" {
		t.Fatalf("nombre = %q", updated.Nombre)
	}
}
