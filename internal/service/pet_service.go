package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"petmate/internal/apperr"
	"petmate/internal/backend"
	"petmate/internal/domain"
	"petmate/internal/events"
	"petmate/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const (
	msgPetNameRequired = "펫 이름을 입력해주세요."
	msgBreedRequired   = "품종을 선택해주세요."
	msgPetInvalid      = "입력값을 확인해주세요."
	msgPetIDRequired   = "펫 ID가 필요합니다."
	msgPetSaveFailed   = "펫 저장 실패"
	msgPetDeleteFailed = "펫 삭제 실패"
	msgPetImageFailed  = "이미지 저장 실패"
)

var speciesLabels = map[string]string{
	"D": "강아지",
	"C": "고양이",
	"R": "토끼",
	"S": "설치류",
	"H": "말",
	"B": "새",
	"P": "파충류",
	"F": "가축동물",
	"O": "기타",
}

// SpeciesLabel returns the display name of a species code, or the code itself.
func SpeciesLabel(code string) string {
	if label, ok := speciesLabels[code]; ok {
		return label
	}
	return code
}

func GenderLabel(gender string) string {
	if gender == "M" {
		return "수컷"
	}
	return "암컷"
}

// PetImageURL turns a stored image reference into a displayable URL. Absolute
// URLs pass through; file keys go through the backend file viewer.
func PetImageURL(apiBase, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	base := strings.TrimRight(apiBase, "/")
	if strings.HasPrefix(ref, "/api/files/view") {
		return base + ref
	}
	return base + "/api/files/view?filePath=" + url.QueryEscape(ref)
}

type PetService struct {
	client   backend.Doer
	eventBus domain.EventPublisher
	validate *validator.Validate
	logger   *zerolog.Logger
}

func NewPetService(client backend.Doer, eventBus domain.EventPublisher, logger *zerolog.Logger) *PetService {
	return &PetService{
		client:   client,
		eventBus: eventBus,
		validate: validator.New(),
		logger:   nopLogger(logger),
	}
}

// Breeds returns the breed catalog for species. Nothing is cached.
func (s *PetService) Breeds(ctx context.Context, species string) ([]models.Breed, error) {
	if species == "" {
		species = models.DefaultSpecies
	}
	return backend.GetList[models.Breed](ctx, s.client, "pet_breeds", "/pet/breeds", url.Values{"species": {species}})
}

// ResolveBreedName looks up the breed name for an id in the species catalog.
// It returns "" for a zero id or an id missing from the catalog.
func (s *PetService) ResolveBreedName(ctx context.Context, breedID int64, species string) (string, error) {
	if breedID == 0 {
		return "", nil
	}
	catalog, err := s.Breeds(ctx, species)
	if err != nil {
		return "", err
	}
	for _, b := range catalog {
		if int64(b.ID) == breedID {
			return b.Name, nil
		}
	}
	return "", nil
}

// ListMyPets returns the signed-in owner's pets, or an empty list.
func (s *PetService) ListMyPets(ctx context.Context) []models.Pet {
	pets, err := backend.GetList[models.Pet](ctx, s.client, "pet_my", "/pet/my", nil)
	if err != nil {
		readPolicy(s.logger, "list_my_pets", err)
		return []models.Pet{}
	}
	return pets
}

func (s *PetService) CreatePet(ctx context.Context, input models.PetInput) (*models.Pet, error) {
	input, err := s.preparePet(ctx, input)
	if err != nil {
		return nil, err
	}

	var saved models.Pet
	if err := s.client.Do(ctx, backend.Request{
		Method:   http.MethodPost,
		Endpoint: "pet_apply",
		Path:     "/pet/apply",
		Body:     input,
	}, &saved); err != nil {
		return nil, writePolicy(s.logger, "create_pet", err, msgPetSaveFailed)
	}
	return s.finishSave(ctx, input, &saved), nil
}

func (s *PetService) UpdatePet(ctx context.Context, petID int64, input models.PetInput) (*models.Pet, error) {
	if petID <= 0 {
		return nil, apperr.MissingContext(msgPetIDRequired)
	}
	input, err := s.preparePet(ctx, input)
	if err != nil {
		return nil, err
	}

	var updated models.Pet
	if err := s.client.Do(ctx, backend.Request{
		Method:   http.MethodPut,
		Endpoint: "pet_update",
		Path:     fmt.Sprintf("/pet/%d", petID),
		Body:     input,
	}, &updated); err != nil {
		return nil, writePolicy(s.logger, "update_pet", err, msgPetSaveFailed)
	}
	if updated.ID == 0 {
		updated.ID = models.FlexID(petID)
	}
	return s.finishSave(ctx, input, &updated), nil
}

func (s *PetService) DeletePet(ctx context.Context, petID int64) error {
	if petID <= 0 {
		return apperr.MissingContext(msgPetIDRequired)
	}
	if err := s.client.Do(ctx, backend.Request{
		Method:   http.MethodDelete,
		Endpoint: "pet_delete",
		Path:     fmt.Sprintf("/pet/%d", petID),
	}, nil); err != nil {
		return writePolicy(s.logger, "delete_pet", err, msgPetDeleteFailed)
	}
	s.publishEvent(events.EventPetDeleted, events.PetEventPayload{PetID: petID})
	return nil
}

func (s *PetService) UpdatePetImage(ctx context.Context, petID int64, imageURL string) error {
	if petID <= 0 {
		return apperr.MissingContext(msgPetIDRequired)
	}
	if err := s.client.Do(ctx, backend.Request{
		Method:   http.MethodPatch,
		Endpoint: "pet_image",
		Path:     fmt.Sprintf("/pet/%d/image", petID),
		Body:     map[string]string{"imageUrl": imageURL},
	}, nil); err != nil {
		return writePolicy(s.logger, "update_pet_image", err, msgPetImageFailed)
	}
	return nil
}

// preparePet validates the input and fills BreedID from BreedName when the
// caller only typed a name.
func (s *PetService) preparePet(ctx context.Context, input models.PetInput) (models.PetInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.BreedName = strings.TrimSpace(input.BreedName)
	if input.Species == "" {
		input.Species = models.DefaultSpecies
	}

	if err := s.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Field() == "Name" {
			return input, apperr.Validation(msgPetNameRequired)
		}
		return input, apperr.Wrap(apperr.KindValidation, msgPetInvalid, err)
	}

	if input.BreedID == 0 && input.BreedName != "" {
		catalog, err := s.Breeds(ctx, input.Species)
		if err != nil {
			return input, writePolicy(s.logger, "resolve_breed", err, msgBreedRequired)
		}
		input.BreedID = ResolveBreedID(input.BreedName, catalog)
	}
	if input.BreedID == 0 {
		return input, apperr.Validation(msgBreedRequired)
	}
	return input, nil
}

// finishSave fills the breed name the backend does not echo back. A failed
// lookup leaves the name empty; the save itself already succeeded.
func (s *PetService) finishSave(ctx context.Context, input models.PetInput, pet *models.Pet) *models.Pet {
	if pet.BreedName == "" {
		pet.BreedName = input.BreedName
	}
	if pet.BreedName == "" {
		breedID := int64(pet.BreedID)
		if breedID == 0 {
			breedID = input.BreedID
		}
		species := pet.Species
		if species == "" {
			species = input.Species
		}
		name, err := s.ResolveBreedName(ctx, breedID, species)
		if err != nil {
			s.logger.Warn().Err(err).Int64("breed_id", breedID).Msg("resolve breed name")
		}
		pet.BreedName = name
	}

	s.publishEvent(events.EventPetSaved, events.PetEventPayload{
		PetID:     int64(pet.ID),
		Name:      pet.Name,
		BreedName: pet.BreedName,
	})
	return pet
}

func (s *PetService) publishEvent(eventType string, payload events.PetEventPayload) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("pet_id", payload.PetID).Msg("publish event error")
	}
}
