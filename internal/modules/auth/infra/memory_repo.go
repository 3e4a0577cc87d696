package infra

import (
	"strings"
	"sync"
	"time"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/domain"
)

type memUserRepo struct {
	mu       sync.RWMutex
	nextID   int64
	users    map[int64]*domain.User
	byEmail  map[string]int64
	byCedula map[string]int64
}

func NewMemUserRepo() domain.UserRepo {
	return &memUserRepo{
		nextID:   1,
		users:    make(map[int64]*domain.User),
		byEmail:  make(map[string]int64),
		byCedula: make(map[string]int64),
	}
}

func (r *memUserRepo) Create(p domain.CreateUserParams) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := strings.ToLower(p.Email)
	if _, ok := r.byEmail[email]; ok {
		return nil, domain.ErrDuplicate
	}
	if _, ok := r.byCedula[p.Cedula]; ok {
		return nil, domain.ErrDuplicate
	}
	now := time.Now().UTC()
	u := &domain.User{
		ID: r.nextID, Cedula: p.Cedula, Nombres: p.Nombres, Apellidos: p.Apellidos,
		Email: email, Facultad: p.Facultad, Carrera: p.Carrera,
		Rol: p.Rol, PasswordHash: p.PasswordHash, CreatedAt: now, UpdatedAt: now,
	}
	r.nextID++
	r.users[u.ID] = u
	r.byEmail[email] = u.ID
	r.byCedula[p.Cedula] = u.ID
	return u, nil
}

func (r *memUserRepo) GetByID(id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r.users[id]
	return &cp, nil
}

func (r *memUserRepo) ExistsByEmail(email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[strings.ToLower(email)]
	return ok, nil
}

func (r *memUserRepo) ConfirmEmail(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.EmailConfirmed = true
	u.UpdatedAt = time.Now().UTC()
	return nil
}

type memCodeRepo struct {
	mu    sync.Mutex
	codes map[string]domain.VerificationCode // email -> pending code
}

func NewMemCodeRepo() domain.CodeRepo {
	return &memCodeRepo{codes: make(map[string]domain.VerificationCode)}
}

func (r *memCodeRepo) Upsert(c domain.VerificationCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[strings.ToLower(c.Email)] = c
	return nil
}

func (r *memCodeRepo) GetByEmail(email string) (*domain.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (r *memCodeRepo) IncrementAttempts(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[strings.ToLower(email)]
	if !ok {
		return domain.ErrNotFound
	}
	c.Attempts++
	r.codes[strings.ToLower(email)] = c
	return nil
}

func (r *memCodeRepo) Delete(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, strings.ToLower(email))
	return nil
}
