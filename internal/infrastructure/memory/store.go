// Package memory implementa los repositorios en memoria. Sirve para arrancar la API sin
// PostgreSQL (APP_STORAGE=memory) y como doble de prueba de los casos de uso.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/EspacioDatos-api/internal/application/lifecycle"
	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/repository"
	"golang.org/x/text/cases"
)

var _ lifecycle.TxRunner = (*Store)(nil)

// Store almacena copias de las entidades; nunca entrega punteros a su estado interno.
// Las transacciones se serializan y hacen rollback restaurando una instantánea. Las
// escrituras fuera de transacción esperan a que termine la transacción en curso.
type Store struct {
	txMu sync.Mutex // una transacción o escritura suelta a la vez
	mu   sync.Mutex

	companies   map[string]entity.Company
	users       map[string]entity.User
	diagnostics map[string]entity.Diagnostic   // por company_id
	projects    map[string]entity.Project      // por company_id
	intakes     map[string]entity.ClientIntake // por company_id
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		companies:   map[string]entity.Company{},
		users:       map[string]entity.User{},
		diagnostics: map[string]entity.Diagnostic{},
		projects:    map[string]entity.Project{},
		intakes:     map[string]entity.ClientIntake{},
	}
}

// Repos repositorios sobre este almacén.
func (s *Store) Repos() lifecycle.Repos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) lifecycle.Repos {
	return lifecycle.Repos{
		Companies:   companyRepo{s: s, tx: inTx},
		Diagnostics: diagnosticRepo{s: s, tx: inTx},
		Projects:    projectRepo{s: s, tx: inTx},
		Intakes:     intakeRepo{s: s, tx: inTx},
		Users:       userRepo{s: s, tx: inTx},
	}
}

// Companies, Users, Diagnostics, Projects e Intakes repositorios individuales.
func (s *Store) Companies() repository.CompanyRepository { return companyRepo{s: s} }
func (s *Store) Users() repository.UserRepository { return userRepo{s: s} }
func (s *Store) Diagnostics() repository.DiagnosticRepository { return diagnosticRepo{s: s} }
func (s *Store) Projects() repository.ProjectRepository { return projectRepo{s: s} }
func (s *Store) Intakes() repository.IntakeRepository { return intakeRepo{s: s} }

// lockWrite toma el cerrojo de escritura. Fuera de transacción también toma txMu, así un
// rollback nunca descarta una escritura ajena a la transacción.
func (s *Store) lockWrite(inTx bool) (unlock func()) {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

// RunLifecycle ejecuta fn de forma exclusiva; si fn falla se restaura el estado previo.
func (s *Store) RunLifecycle(ctx context.Context, fn func(r lifecycle.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(s.repos(true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	companies   map[string]entity.Company
	users       map[string]entity.User
	diagnostics map[string]entity.Diagnostic
	projects    map[string]entity.Project
	intakes     map[string]entity.ClientIntake
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		companies:   copyMap(s.companies),
		users:       copyMap(s.users),
		diagnostics: copyMap(s.diagnostics),
		projects:    copyMap(s.projects),
		intakes:     make(map[string]entity.ClientIntake, len(s.intakes)),
	}
	for k, v := range s.intakes {
		snap.intakes[k] = cloneIntake(v)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies = snap.companies
	s.users = snap.users
	s.diagnostics = snap.diagnostics
	s.projects = snap.projects
	s.intakes = snap.intakes
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneIntake(in entity.ClientIntake) entity.ClientIntake {
	in.DataTypes = append([]string(nil), in.DataTypes...)
	in.Interests = append([]string(nil), in.Interests...)
	if in.SubmittedAt != nil {
		t := *in.SubmittedAt
		in.SubmittedAt = &t
	}
	return in
}

func cloneDiagnostic(d entity.Diagnostic) entity.Diagnostic {
	if d.DecidedAt != nil {
		t := *d.DecidedAt
		d.DecidedAt = &t
	}
	return d
}

// ── companies ────────────────────────────────────────────────────────────────

type companyRepo struct {
	s  *Store
	tx bool
}

func (r companyRepo) Create(_ context.Context, c *entity.Company) error {
	defer r.s.lockWrite(r.tx)()
	for _, other := range r.s.companies {
		if other.NIF == c.NIF {
			return domain.ErrDuplicate
		}
	}
	r.s.companies[c.ID] = *c
	return nil
}

func (r companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r companyRepo) GetByNIF(_ context.Context, nif string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.NIF == nif {
			return &c, nil
		}
	}
	return nil, nil
}

func (r companyRepo) Update(_ context.Context, c *entity.Company) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, other := range r.s.companies {
		if other.ID != c.ID && other.NIF == c.NIF {
			return domain.ErrDuplicate
		}
	}
	r.s.companies[c.ID] = *c
	return nil
}

func (r companyRepo) filtered(f entity.CompanyFilter) []entity.Company {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(f.Search))
	var out []entity.Company
	for _, c := range r.s.companies {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if needle != "" {
			hay := fold.String(strings.Join([]string{c.Name, c.NIF, c.ContactName, c.ContactEmail}, "\x00"))
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r companyRepo) List(_ context.Context, f entity.CompanyFilter) ([]*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matched := r.filtered(f)
	list := make([]*entity.Company, 0)
	for _, c := range page(matched, f.Limit, f.Offset) {
		c := c
		list = append(list, &c)
	}
	return list, nil
}

func (r companyRepo) Count(_ context.Context, f entity.CompanyFilter) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.filtered(f)), nil
}

func (r companyRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.companies[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.companies, id)
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ── users ────────────────────────────────────────────────────────────────────

type userRepo struct {
	s  *Store
	tx bool
}

func (r userRepo) checkUnique(u *entity.User) error {
	for _, other := range r.s.users {
		if other.ID == u.ID {
			continue
		}
		if other.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
		if u.Role == entity.RoleCliente && u.CompanyID != "" &&
			other.Role == entity.RoleCliente && other.CompanyID == u.CompanyID {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	defer r.s.lockWrite(r.tx)()
	if err := r.checkUnique(u); err != nil {
		return err
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) GetClientByCompany(_ context.Context, companyID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Role == entity.RoleCliente && u.CompanyID == companyID {
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	list := make([]*entity.User, 0)
	for _, u := range page(all, limit, offset) {
		u := u
		list = append(list, &u)
	}
	return list, nil
}

func (r userRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.users), nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if err := r.checkUnique(u); err != nil {
		return err
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r userRepo) UnlinkCompany(_ context.Context, companyID string) error {
	defer r.s.lockWrite(r.tx)()
	for id, u := range r.s.users {
		if u.CompanyID == companyID {
			u.CompanyID = ""
			r.s.users[id] = u
		}
	}
	return nil
}

// ── diagnostics ──────────────────────────────────────────────────────────────

type diagnosticRepo struct {
	s  *Store
	tx bool
}

func (r diagnosticRepo) Create(_ context.Context, d *entity.Diagnostic) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.diagnostics[d.CompanyID]; ok {
		return domain.ErrDuplicate
	}
	r.s.diagnostics[d.CompanyID] = cloneDiagnostic(*d)
	return nil
}

func (r diagnosticRepo) GetByCompany(_ context.Context, companyID string) (*entity.Diagnostic, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.diagnostics[companyID]
	if !ok {
		return nil, nil
	}
	d = cloneDiagnostic(d)
	return &d, nil
}

// GetByCompanyForUpdate las transacciones ya son exclusivas.
func (r diagnosticRepo) GetByCompanyForUpdate(ctx context.Context, companyID string) (*entity.Diagnostic, error) {
	return r.GetByCompany(ctx, companyID)
}

func (r diagnosticRepo) Update(_ context.Context, d *entity.Diagnostic) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.diagnostics[d.CompanyID]; !ok {
		return domain.ErrNotFound
	}
	r.s.diagnostics[d.CompanyID] = cloneDiagnostic(*d)
	return nil
}

func (r diagnosticRepo) DeleteByCompany(_ context.Context, companyID string) error {
	defer r.s.lockWrite(r.tx)()
	delete(r.s.diagnostics, companyID)
	return nil
}

// ── projects ─────────────────────────────────────────────────────────────────

type projectRepo struct {
	s  *Store
	tx bool
}

func (r projectRepo) Create(_ context.Context, p *entity.Project) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.projects[p.CompanyID]; ok {
		return domain.ErrDuplicate
	}
	r.s.projects[p.CompanyID] = *p
	return nil
}

func (r projectRepo) GetByCompany(_ context.Context, companyID string) (*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[companyID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r projectRepo) Update(_ context.Context, p *entity.Project) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.projects[p.CompanyID]; !ok {
		return domain.ErrNotFound
	}
	r.s.projects[p.CompanyID] = *p
	return nil
}

func (r projectRepo) List(_ context.Context, companyID string) ([]*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]entity.Project, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		if companyID == "" || p.CompanyID == companyID {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	list := make([]*entity.Project, 0, len(all))
	for _, p := range all {
		p := p
		list = append(list, &p)
	}
	return list, nil
}

func (r projectRepo) DeleteByCompany(_ context.Context, companyID string) error {
	defer r.s.lockWrite(r.tx)()
	delete(r.s.projects, companyID)
	return nil
}

// ── intakes ──────────────────────────────────────────────────────────────────

type intakeRepo struct {
	s  *Store
	tx bool
}

func (r intakeRepo) GetByCompany(_ context.Context, companyID string) (*entity.ClientIntake, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	in, ok := r.s.intakes[companyID]
	if !ok {
		return nil, nil
	}
	in = cloneIntake(in)
	return &in, nil
}

func (r intakeRepo) Save(_ context.Context, in *entity.ClientIntake) error {
	defer r.s.lockWrite(r.tx)()
	stored := cloneIntake(*in)
	if prev, ok := r.s.intakes[in.CompanyID]; ok {
		stored.ID = prev.ID
		stored.CreatedAt = prev.CreatedAt
	}
	r.s.intakes[in.CompanyID] = stored
	return nil
}

func (r intakeRepo) DeleteByCompany(_ context.Context, companyID string) error {
	defer r.s.lockWrite(r.tx)()
	delete(r.s.intakes, companyID)
	return nil
}
