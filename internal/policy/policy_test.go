package policy

import (
	"errors"
	"testing"

	authdom "github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/domain"
	paydom "github.com/jhandryJ/UIDEportes-backend/internal/modules/payments/domain"
	teamdom "github.com/jhandryJ/UIDEportes-backend/internal/modules/teams/domain"
	tourdom "github.com/jhandryJ/UIDEportes-backend/internal/modules/tournaments/domain"
)

type fakeMemberships map[int64]teamdom.Membership

func (f fakeMemberships) GetMembership(userID int64) (teamdom.Membership, error) {
	m, ok := f[userID]
	if !ok {
		return teamdom.Membership{MemberOf: map[int64]struct{}{}}, nil
	}
	return m, nil
}

func ptr(v int64) *int64 { return &v }

func fixtures() *Engine {
	// user 10 captains team 1, user 20 is a plain member of team 1,
	// user 30 belongs to nothing
	return New(fakeMemberships{
		10: {CaptainOf: ptr(1), MemberOf: map[int64]struct{}{1: {}}},
		20: {MemberOf: map[int64]struct{}{1: {}}},
	})
}

func TestAdminSeesEverything(t *testing.T) {
	e := fixtures()
	admin := authdom.Actor{ID: 99, Role: authdom.RoleAdmin}

	teamPred, err := e.TeamFilter(admin)
	if err != nil {
		t.Fatalf("team filter: %v", err)
	}
	if !teamPred(teamdom.Team{ID: 7, CapitanID: 5}) {
		t.Fatal("admin should see any team")
	}

	tourPred, err := e.TournamentFilter(admin)
	if err != nil {
		t.Fatalf("tournament filter: %v", err)
	}
	if !tourPred(tourdom.Torneo{ID: 3}) {
		t.Fatal("admin should see any tournament")
	}

	matchPred, err := e.MatchFilter(admin)
	if err != nil {
		t.Fatalf("match filter: %v", err)
	}
	if !matchPred(tourdom.Partido{ID: 4}) {
		t.Fatal("admin should see any match")
	}

	payPred, err := e.PaymentFilter(admin)
	if err != nil {
		t.Fatalf("payment filter: %v", err)
	}
	if !payPred(paydom.Pago{ID: 8, EquipoID: 42}) {
		t.Fatal("admin should see any payment")
	}
}

func TestStudentSeesOnlyOwnTeamRows(t *testing.T) {
	e := fixtures()
	student := authdom.Actor{ID: 20, Role: authdom.RoleEstudiante}

	teamPred, err := e.TeamFilter(student)
	if err != nil {
		t.Fatalf("team filter: %v", err)
	}
	if !teamPred(teamdom.Team{ID: 1}) {
		t.Fatal("member should see own team")
	}
	if teamPred(teamdom.Team{ID: 2}) {
		t.Fatal("member should not see other teams")
	}

	matchPred, err := e.MatchFilter(student)
	if err != nil {
		t.Fatalf("match filter: %v", err)
	}
	tests := []struct {
		name  string
		match tourdom.Partido
		want  bool
	}{
		{"own team home", tourdom.Partido{EquipoLocalID: ptr(1), EquipoVisitanteID: ptr(2)}, true},
		{"own team away", tourdom.Partido{EquipoLocalID: ptr(2), EquipoVisitanteID: ptr(1)}, true},
		{"unrelated teams", tourdom.Partido{EquipoLocalID: ptr(2), EquipoVisitanteID: ptr(3)}, false},
		{"both sides unset", tourdom.Partido{}, false},
		{"own team home, away TBD", tourdom.Partido{EquipoLocalID: ptr(1)}, true},
	}
	for _, tc := range tests {
		if got := matchPred(tc.match); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}

	payPred, err := e.PaymentFilter(student)
	if err != nil {
		t.Fatalf("payment filter: %v", err)
	}
	if !payPred(paydom.Pago{EquipoID: 1}) {
		t.Fatal("member should see own team's payments")
	}
	if payPred(paydom.Pago{EquipoID: 2}) {
		t.Fatal("member should not see other teams' payments")
	}
}

func TestTournamentFilterNeedsRegisteredTeam(t *testing.T) {
	e := fixtures()
	student := authdom.Actor{ID: 20, Role: authdom.RoleEstudiante}

	pred, err := e.TournamentFilter(student)
	if err != nil {
		t.Fatalf("tournament filter: %v", err)
	}
	with := tourdom.Torneo{ID: 1, EquiposInscritos: map[int64]struct{}{1: {}, 2: {}}}
	without := tourdom.Torneo{ID: 2, EquiposInscritos: map[int64]struct{}{2: {}}}
	empty := tourdom.Torneo{ID: 3, EquiposInscritos: map[int64]struct{}{}}

	if !pred(with) {
		t.Fatal("tournament with own team should be visible")
	}
	if pred(without) || pred(empty) {
		t.Fatal("tournament without own team should be invisible")
	}
}

func TestCaptainPaymentVisibilityIsCaptainedTeamOnly(t *testing.T) {
	// user 15 captains team 2 but is also a plain member of team 3
	e := New(fakeMemberships{
		15: {CaptainOf: ptr(2), MemberOf: map[int64]struct{}{2: {}, 3: {}}},
	})
	captain := authdom.Actor{ID: 15, Role: authdom.RoleCapitan}

	pred, err := e.PaymentFilter(captain)
	if err != nil {
		t.Fatalf("payment filter: %v", err)
	}
	if !pred(paydom.Pago{EquipoID: 2}) {
		t.Fatal("captain should see captained team's payments")
	}
	if pred(paydom.Pago{EquipoID: 3}) {
		t.Fatal("captain visibility must not extend to merely-joined teams")
	}
}

func TestCanModifyTeam(t *testing.T) {
	e := fixtures()
	tests := []struct {
		name    string
		actorID int64
		role    authdom.Role
		teamID  int64
		want    bool
	}{
		{"captain of own team", 10, authdom.RoleCapitan, 1, true},
		{"captain of another team", 10, authdom.RoleCapitan, 2, false},
		{"plain member", 20, authdom.RoleEstudiante, 1, false},
		{"outsider", 30, authdom.RoleEstudiante, 1, false},
		{"admin anywhere", 99, authdom.RoleAdmin, 1, true},
		{"admin on unknown team", 99, authdom.RoleAdmin, 777, true},
	}
	for _, tc := range tests {
		got, err := e.CanModifyTeam(tc.actorID, tc.role, tc.teamID)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestUnknownRoleIsAnError(t *testing.T) {
	e := fixtures()
	bogus := authdom.Actor{ID: 10, Role: authdom.Role("PROFESOR")}

	if _, err := e.TeamFilter(bogus); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("team filter: got %v, want ErrInvalidRole", err)
	}
	if _, err := e.TournamentFilter(bogus); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("tournament filter: got %v, want ErrInvalidRole", err)
	}
	if _, err := e.MatchFilter(bogus); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("match filter: got %v, want ErrInvalidRole", err)
	}
	if _, err := e.PaymentFilter(bogus); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("payment filter: got %v, want ErrInvalidRole", err)
	}
	if _, err := e.CanModifyTeam(10, "PROFESOR", 1); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("can modify: got %v, want ErrInvalidRole", err)
	}
}
