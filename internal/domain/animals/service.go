package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"livestock-management/internal/domain/species"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrInvalidGender   = errors.New("gender must normalize to male/female")
	ErrInvalidStatus   = errors.New("unknown health status")
	ErrSelfAncestor    = errors.New("animal cannot be its own ancestor")
	ErrAmbiguousRef    = errors.New("ambiguous animal reference")
	ErrUnknownRef      = errors.New("unresolvable animal reference")
	ErrUnknownSpecies  = errors.New("unknown species")
)

type Service struct {
	repo    Repository
	catalog *species.Config
	now     func() time.Time
}

func NewService(repo Repository, catalog *species.Config) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		now:     time.Now,
	}
}

type CreateInput struct {
	Name         string
	Tag          string
	Species      string
	Gender       string
	Breed        string
	HealthStatus string
	BirthDate    *time.Time
	Ancestry     Ancestry
	Notes        string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Animal, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Animal{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Animal{}, ErrInvalidInput
	}

	sp := species.Species(strings.ToLower(strings.TrimSpace(in.Species)))
	if sp == "" {
		return Animal{}, ErrInvalidInput
	}
	if !s.catalog.Known(sp) {
		return Animal{}, ErrUnknownSpecies
	}

	g, ok := NormalizeGender(in.Gender)
	if !ok {
		return Animal{}, ErrInvalidGender
	}

	hs, ok := ParseHealthStatus(in.HealthStatus)
	if !ok {
		return Animal{}, ErrInvalidStatus
	}

	now := s.now()
	a := Animal{
		ID:           uuid.NewString(),
		OwnerUserID:  ownerUserID,
		Name:         strings.TrimSpace(in.Name),
		Tag:          strings.TrimSpace(in.Tag),
		Species:      sp,
		Gender:       g,
		Breed:        strings.TrimSpace(in.Breed),
		HealthStatus: hs,
		BirthDate:    in.BirthDate,
		Ancestry:     trimAncestry(in.Ancestry),
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// El ID es recién generado, pero la ancestry puede venir con él si
	// el caller recicla payloads; lo rechazamos en la frontera para que
	// el motor de breeding nunca vea auto-referencias.
	if a.Ancestry.Contains(a.ID) {
		return Animal{}, ErrSelfAncestor
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name         *string
	Tag          *string
	Breed        *string
	Gender       *string
	HealthStatus *string
	Notes        *string
	Ancestry     *Ancestry
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Animal{}, ErrInvalidInput
		}
		a.Name = name
	}
	if in.Tag != nil {
		a.Tag = strings.TrimSpace(*in.Tag)
	}
	if in.Breed != nil {
		a.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Gender != nil {
		g, ok := NormalizeGender(*in.Gender)
		if !ok {
			return Animal{}, ErrInvalidGender
		}
		a.Gender = g
	}
	if in.HealthStatus != nil {
		hs, ok := ParseHealthStatus(*in.HealthStatus)
		if !ok {
			return Animal{}, ErrInvalidStatus
		}
		a.HealthStatus = hs
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Ancestry != nil {
		anc := trimAncestry(*in.Ancestry)
		if anc.Contains(a.ID) {
			return Animal{}, ErrSelfAncestor
		}
		a.Ancestry = anc
	}

	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Animal, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// SetLot asigna (o desasigna con lotID vacío) el lote del animal.
func (s *Service) SetLot(ctx context.Context, animalID, lotID string) (Animal, error) {
	a, err := s.repo.GetByID(ctx, animalID)
	if err != nil {
		return Animal{}, ErrNotFound
	}
	a.LotID = strings.TrimSpace(lotID)
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// ResolveRef mapea una referencia suelta (ID, nombre o chapeta,
// case-insensitive) a un ID canónico dentro del hato de un dueño.
// Es el directorio que usa el guard de parentesco del motor de breeding.
// Referencia vacía => "" sin error (slot ausente, no falla).
func (s *Service) ResolveRef(ctx context.Context, ownerUserID, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}

	if a, err := s.repo.GetByID(ctx, ref); err == nil {
		return a.ID, nil
	}

	herd, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return "", err
	}

	match := ""
	for _, a := range herd {
		if strings.EqualFold(a.Name, ref) || (a.Tag != "" && strings.EqualFold(a.Tag, ref)) {
			if match != "" && match != a.ID {
				return "", ErrAmbiguousRef
			}
			match = a.ID
		}
	}
	if match == "" {
		return "", ErrUnknownRef
	}
	return match, nil
}

func trimAncestry(in Ancestry) Ancestry {
	out := Ancestry{
		FatherID:              strings.TrimSpace(in.FatherID),
		MotherID:              strings.TrimSpace(in.MotherID),
		PaternalGrandfatherID: strings.TrimSpace(in.PaternalGrandfatherID),
		PaternalGrandmotherID: strings.TrimSpace(in.PaternalGrandmotherID),
		MaternalGrandfatherID: strings.TrimSpace(in.MaternalGrandfatherID),
		MaternalGrandmotherID: strings.TrimSpace(in.MaternalGrandmotherID),
	}
	for i, g := range in.GreatGrandparents {
		out.GreatGrandparents[i] = strings.TrimSpace(g)
	}
	return out
}
