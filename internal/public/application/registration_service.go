package application

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bodecoin/bodecoin-services/api/internal/public/domain"
)

// RegistrationCommand carries one create-or-update submission. BusinessID is
// set when the owner edits an existing listing. Coordinates, when present,
// come from device capture and always win over geocoding.
type RegistrationCommand struct {
	OwnerID    string
	BusinessID string

	Name        string
	Category    string
	Description string
	Address     string
	Department  string
	City        string
	Phone       string
	WhatsApp    string
	Email       string
	Website     string

	Tags        []string
	Hours       domain.WeeklyHours
	Coordinates *domain.Coordinates

	ExistingGallery []string
	StagedImages    []StagedImage
}

// RegistrationResult reports the outcome of a submission. Degraded marks the
// demo-continuity path: the backend write failed and the record was locally
// synthesized so the owner still reaches a profile preview.
type RegistrationResult struct {
	Business       domain.Business
	RejectedImages []ImageRejection
	SkippedUploads []string
	CoordinateHint string
	Degraded       bool
}

// ValidationError lists required fields that were missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("faltan campos obligatorios: %s", strings.Join(e.Fields, ", "))
}

// RegistrationService handles the business registration flow.
type RegistrationService interface {
	Submit(ctx context.Context, cmd RegistrationCommand) (*RegistrationResult, error)
	ResolveCoordinates(ctx context.Context, query ForwardQuery) (*domain.Coordinates, error)
	RemoveGalleryImage(ctx context.Context, businessID, url string) (*domain.Business, error)
}

type registrationService struct {
	repo     BusinessRepository
	storage  ObjectStorage
	geocoder Geocoder
	logger   *logrus.Logger
	now      func() time.Time
}

// NewRegistrationService wires the registration flow to its collaborators.
func NewRegistrationService(repo BusinessRepository, storage ObjectStorage, geocoder Geocoder, logger *logrus.Logger) RegistrationService {
	return &registrationService{
		repo:     repo,
		storage:  storage,
		geocoder: geocoder,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit validates the command, stages and uploads images, resolves
// coordinates and issues the create-or-update. Only validation and
// ownership problems are returned as errors; backend write failures degrade
// to a synthesized success so the flow never dead-ends for the owner.
func (s *registrationService) Submit(ctx context.Context, cmd RegistrationCommand) (*RegistrationResult, error) {
	if err := validateRequired(cmd); err != nil {
		return nil, err
	}

	// An edit mutates a record only through its owning user. The current
	// record is fetched before any side effect so a non-owner submission
	// uploads nothing.
	var current *domain.Business
	if cmd.BusinessID != "" {
		fetched, err := s.repo.FindByID(ctx, cmd.BusinessID)
		if err != nil {
			return nil, err
		}
		if fetched.OwnerID != cmd.OwnerID {
			return nil, ErrNotOwner
		}
		current = fetched
	}

	staged, rejected, err := StageImages(len(cmd.ExistingGallery), cmd.StagedImages)
	if err != nil {
		return nil, err
	}

	result := &RegistrationResult{RejectedImages: rejected}

	coords := cmd.Coordinates
	if coords == nil {
		coords, err = s.ResolveCoordinates(ctx, ForwardQuery{
			Street:     cmd.Address,
			City:       cmd.City,
			Department: cmd.Department,
		})
		if err != nil {
			coords = nil
			result.CoordinateHint = "No se pudo ubicar la dirección. Usá la captura de ubicación del dispositivo."
		}
	}

	uploaded, skipped := s.uploadStaged(ctx, staged)
	result.SkippedUploads = skipped

	gallery := append(append([]string(nil), cmd.ExistingGallery...), uploaded...)

	now := s.now().UTC()
	business := domain.Business{
		ID:          cmd.BusinessID,
		OwnerID:     cmd.OwnerID,
		Name:        cmd.Name,
		Category:    cmd.Category,
		Description: cmd.Description,
		Address:     cmd.Address,
		Department:  cmd.Department,
		City:        cmd.City,
		Phone:       cmd.Phone,
		WhatsApp:    cmd.WhatsApp,
		Email:       cmd.Email,
		Website:     cmd.Website,
		Gallery:     gallery,
		Tags:        cmd.Tags,
		Hours:       cmd.Hours,
		Coordinates: coords,
		Status:      domain.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if len(gallery) > 0 {
		business.ImageURL = gallery[0]
	}

	if current != nil {
		carryOverExisting(&business, current, len(cmd.Tags) == 0)
		if err := s.repo.Update(ctx, &business); err != nil {
			return s.degrade(business, result, err), nil
		}
	} else {
		id, err := s.repo.Insert(ctx, &business)
		if err != nil {
			return s.degrade(business, result, err), nil
		}
		business.ID = id
	}

	result.Business = business
	return result, nil
}

// carryOverExisting preserves fields the form does not own (status, stats,
// verification, creation time) when editing. Tags carry over only when the
// form sent none.
func carryOverExisting(business, current *domain.Business, keepTags bool) {
	business.Status = current.Status
	business.Rating = current.Rating
	business.Reviews = current.Reviews
	business.Verified = current.Verified
	business.CreatedAt = current.CreatedAt
	if keepTags {
		business.Tags = current.Tags
	}
}

// degrade converts a failed backend write into the distinguished
// demo-continuity success. It is logged apart from true successes so
// monitoring can tell them apart.
func (s *registrationService) degrade(business domain.Business, result *RegistrationResult, cause error) *RegistrationResult {
	s.logger.WithError(cause).WithField("owner", business.OwnerID).
		Warn("Backend inalcanzable al guardar el negocio, activando modo demostración")

	if business.ID == "" {
		business.ID = "demo-" + uuid.NewString()
	}
	result.Business = business
	result.Degraded = true
	return result
}

// uploadStaged pushes staged files to object storage concurrently. The
// returned URLs follow staging order, not completion order; files whose
// upload failed are skipped and reported by name.
func (s *registrationService) uploadStaged(ctx context.Context, staged []StagedImage) ([]string, []string) {
	if len(staged) == 0 {
		return nil, nil
	}

	urls := make([]string, len(staged))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, file := range staged {
		i, file := i, file
		group.Go(func() error {
			key := objectKey(file.Name)
			url, err := s.storage.Upload(groupCtx, key, file.ContentType, file.Data)
			if err != nil {
				s.logger.WithError(err).WithField("file", file.Name).
					Warn("Falló la subida de una imagen, se descarta")
				return nil
			}
			urls[i] = url
			return nil
		})
	}
	_ = group.Wait()

	uploaded := make([]string, 0, len(staged))
	var skipped []string
	for i, url := range urls {
		if url == "" {
			skipped = append(skipped, staged[i].Name)
			continue
		}
		uploaded = append(uploaded, url)
	}
	return uploaded, skipped
}

func objectKey(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".jpg"
	}
	return uuid.NewString() + ext
}

// ResolveCoordinates forward-geocodes the full address and, when that yields
// no match, retries with just city and department to at least center on the
// locality. A total failure returns ErrNotFound and leaves the caller's
// coordinates untouched.
func (s *registrationService) ResolveCoordinates(ctx context.Context, query ForwardQuery) (*domain.Coordinates, error) {
	coords, err := s.geocoder.Forward(ctx, query)
	if err == nil {
		return coords, nil
	}

	if query.Street == "" {
		return nil, err
	}
	s.logger.WithError(err).WithFields(logrus.Fields{
		"city":       query.City,
		"department": query.Department,
	}).Info("Dirección exacta sin resultado, reintentando solo con la localidad")

	return s.geocoder.Forward(ctx, ForwardQuery{City: query.City, Department: query.Department})
}

// RemoveGalleryImage removes a persisted gallery URL, promoting the next
// image to cover when the removed one led the gallery.
func (s *registrationService) RemoveGalleryImage(ctx context.Context, businessID, url string) (*domain.Business, error) {
	business, err := s.repo.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	business.RemoveGalleryURL(url)
	business.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

func validateRequired(cmd RegistrationCommand) error {
	var missing []string
	for field, value := range map[string]string{
		"name":       cmd.Name,
		"category":   cmd.Category,
		"whatsapp":   cmd.WhatsApp,
		"department": cmd.Department,
		"city":       cmd.City,
		"address":    cmd.Address,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: sortedFields(missing)}
	}
	return nil
}

func sortedFields(fields []string) []string {
	order := []string{"name", "category", "whatsapp", "department", "city", "address"}
	result := make([]string, 0, len(fields))
	for _, key := range order {
		for _, field := range fields {
			if field == key {
				result = append(result, field)
			}
		}
	}
	return result
}
