package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/domain"
	"github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/infra"
)

type recordingSender struct {
	sent []string
	err  error
}

func (s *recordingSender) SendVerificationCode(_ context.Context, _, code string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, code)
	return nil
}

func newTestService(t *testing.T) (*Verification, domain.CodeRepo, *recordingSender) {
	t.Helper()
	repo := infra.NewMemCodeRepo()
	sender := &recordingSender{}
	return NewVerification(repo, sender), repo, sender
}

// storedCode reads the pending code straight from the repo, standing in for
// the operational channel used when mail never arrives.
func storedCode(t *testing.T, repo domain.CodeRepo, email string) string {
	t.Helper()
	rec, err := repo.GetByEmail(email)
	if err != nil {
		t.Fatalf("load stored code: %v", err)
	}
	return rec.Code
}

func TestIssueThenValidate(t *testing.T) {
	ctx := context.Background()
	svc, repo, sender := newTestService(t)

	res, err := svc.Issue(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !res.OK || res.Status != StatusSent {
		t.Fatalf("issue result: %+v", res)
	}
	if len(sender.sent) != 1 || len(sender.sent[0]) != 6 {
		t.Fatalf("expected one 6-digit code mailed, got %v", sender.sent)
	}

	res, err = svc.Validate(ctx, "a@x.com", storedCode(t, repo, "a@x.com"))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !res.OK || res.Status != StatusVerified {
		t.Fatalf("validate result: %+v", res)
	}

	// the consumed record must not be replayable
	res, err = svc.Validate(ctx, "a@x.com", sender.sent[0])
	if err != nil {
		t.Fatalf("revalidate: %v", err)
	}
	if res.OK || res.Status != StatusNotFound {
		t.Fatalf("replay result: %+v", res)
	}
}

func TestValidateUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	res, err := svc.Validate(context.Background(), "nobody@x.com", "123456")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if res.OK || res.Status != StatusNotFound {
		t.Fatalf("got %+v, want NotFound", res)
	}
}

func TestThreeMismatchesThenRateLimited(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	if _, err := svc.Issue(ctx, "a@x.com"); err != nil {
		t.Fatalf("issue: %v", err)
	}
	correct := storedCode(t, repo, "a@x.com")
	wrong := "000000"
	if wrong == correct {
		wrong = "000001"
	}

	for i := 0; i < 3; i++ {
		res, err := svc.Validate(ctx, "a@x.com", wrong)
		if err != nil {
			t.Fatalf("validate %d: %v", i, err)
		}
		if res.Status != StatusMismatch {
			t.Fatalf("attempt %d: got %v, want Mismatch", i, res.Status)
		}
	}

	// even the correct code is rejected after the third failure
	res, err := svc.Validate(ctx, "a@x.com", correct)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if res.OK || res.Status != StatusRateLimited {
		t.Fatalf("got %+v, want RateLimited", res)
	}
}

func TestExpiredCode(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return current })

	if _, err := svc.Issue(ctx, "a@x.com"); err != nil {
		t.Fatalf("issue: %v", err)
	}
	code := storedCode(t, repo, "a@x.com")

	current = current.Add(15*time.Minute + time.Second)
	res, err := svc.Validate(ctx, "a@x.com", code)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if res.OK || res.Status != StatusExpired {
		t.Fatalf("got %+v, want Expired", res)
	}

	// expiry leaves the record in place; it only goes away on re-issue or success
	if _, err := repo.GetByEmail("a@x.com"); err != nil {
		t.Fatalf("expired record should remain: %v", err)
	}
}

func TestReissueReplacesPendingCode(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	if _, err := svc.Issue(ctx, "a@x.com"); err != nil {
		t.Fatalf("first issue: %v", err)
	}
	first := storedCode(t, repo, "a@x.com")

	// burn the attempt counter, then re-issue
	wrong := "000000"
	if wrong == first {
		wrong = "000001"
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.Validate(ctx, "a@x.com", wrong); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}
	if _, err := svc.Issue(ctx, "a@x.com"); err != nil {
		t.Fatalf("second issue: %v", err)
	}
	second := storedCode(t, repo, "a@x.com")

	if first == second {
		t.Skip("codes collided; nothing to assert")
	}

	// the first code is dead now
	res, err := svc.Validate(ctx, "a@x.com", first)
	if err != nil {
		t.Fatalf("validate old code: %v", err)
	}
	if res.OK {
		t.Fatalf("old code verified after re-issue: %+v", res)
	}
	if res.Status != StatusMismatch {
		t.Fatalf("got %v, want Mismatch", res.Status)
	}

	// and the attempt counter started over, so the new code still works
	res, err = svc.Validate(ctx, "a@x.com", second)
	if err != nil {
		t.Fatalf("validate new code: %v", err)
	}
	if !res.OK || res.Status != StatusVerified {
		t.Fatalf("got %+v, want Verified", res)
	}
}

func TestIssueSucceedsWhenMailFails(t *testing.T) {
	ctx := context.Background()
	repo := infra.NewMemCodeRepo()
	sender := &recordingSender{err: errors.New("smtp down")}
	svc := NewVerification(repo, sender)

	res, err := svc.Issue(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !res.OK {
		t.Fatalf("issue must stay fail-open on delivery errors: %+v", res)
	}

	// the code is still retrievable and valid
	res, err = svc.Validate(ctx, "a@x.com", storedCode(t, repo, "a@x.com"))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !res.OK {
		t.Fatalf("stored code should validate: %+v", res)
	}
}

func TestEmailIsNormalized(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	if _, err := svc.Issue(ctx, "  A@X.com "); err != nil {
		t.Fatalf("issue: %v", err)
	}
	code := storedCode(t, repo, "a@x.com")

	res, err := svc.Validate(ctx, "a@X.COM", code)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !res.OK {
		t.Fatalf("differently-cased email should hit the same record: %+v", res)
	}
}
