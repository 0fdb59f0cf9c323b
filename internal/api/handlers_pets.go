package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"petmate/internal/models"
	"petmate/internal/service"
)

// petView is a pet with its display labels resolved.
type petView struct {
	models.Pet
	SpeciesLabel string `json:"speciesLabel"`
	GenderLabel  string `json:"genderLabel"`
	ImageSrc     string `json:"imageSrc,omitempty"`
}

func (s *Server) newPetView(p models.Pet) petView {
	return petView{
		Pet:          p,
		SpeciesLabel: service.SpeciesLabel(p.Species),
		GenderLabel:  service.GenderLabel(p.Gender),
		ImageSrc:     service.PetImageURL(s.apiBase, p.ImageURL),
	}
}

func (s *Server) handleBreeds(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	catalog, err := s.svc.Pets.Breeds(r.Context(), q.Get("species"))
	if err != nil {
		s.logger.Warn().Err(err).Msg("load breed catalog")
		catalog = []models.Breed{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"breeds": service.SearchBreeds(catalog, q.Get("q"))})
}

func (s *Server) handleListPets(w http.ResponseWriter, r *http.Request) {
	pets := s.svc.Pets.ListMyPets(r.Context())
	views := make([]petView, 0, len(pets))
	for _, p := range pets {
		views = append(views, s.newPetView(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"pets": views})
}

func (s *Server) handleCreatePet(w http.ResponseWriter, r *http.Request) {
	var input models.PetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	pet, err := s.svc.Pets.CreatePet(r.Context(), input)
	if err != nil {
		writeAppError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.newPetView(*pet))
}

func (s *Server) handleUpdatePet(w http.ResponseWriter, r *http.Request) {
	petID, ok := petIDParam(w, r)
	if !ok {
		return
	}
	var input models.PetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	pet, err := s.svc.Pets.UpdatePet(r.Context(), petID, input)
	if err != nil {
		writeAppError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, s.newPetView(*pet))
}

func (s *Server) handleDeletePet(w http.ResponseWriter, r *http.Request) {
	petID, ok := petIDParam(w, r)
	if !ok {
		return
	}
	if err := s.svc.Pets.DeletePet(r.Context(), petID); err != nil {
		writeAppError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdatePetImage(w http.ResponseWriter, r *http.Request) {
	petID, ok := petIDParam(w, r)
	if !ok {
		return
	}
	var body struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.svc.Pets.UpdatePetImage(r.Context(), petID, body.ImageURL); err != nil {
		writeAppError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       petID,
		"imageUrl": body.ImageURL,
		"imageSrc": service.PetImageURL(s.apiBase, body.ImageURL),
	})
}

func petIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid pet id")
		return 0, false
	}
	return id, true
}
