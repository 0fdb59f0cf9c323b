package models

// Breed is one entry of the /pet/breeds catalog.
type Breed struct {
	ID   FlexID `json:"id"`
	Name string `json:"name"`
}

// Pet is a pet profile as stored by the backend.
type Pet struct {
	ID        FlexID    `json:"id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	BreedID   FlexID    `json:"breedId"`
	BreedName string    `json:"breedName"`
	Gender    string    `json:"gender"`
	AgeYear   Number    `json:"ageYear"`
	WeightKg  Number    `json:"weightKg"`
	Neutered  Number    `json:"neutered"`
	Temper    string    `json:"temper,omitempty"`
	Note      string    `json:"note,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
}

// PetInput is the body of POST /pet/apply and PUT /pet/{id}.
type PetInput struct {
	Name      string  `json:"name" validate:"required"`
	Species   string  `json:"species"`
	BreedID   int64   `json:"breedId"`
	BreedName string  `json:"breedName"`
	Gender    string  `json:"gender" validate:"omitempty,oneof=M F"`
	AgeYear   int     `json:"ageYear" validate:"gte=0"`
	WeightKg  float64 `json:"weightKg" validate:"gte=0"`
	Neutered  int     `json:"neutered" validate:"oneof=0 1"`
	Temper    string  `json:"temper"`
	Note      string  `json:"note"`
	ImageURL  string  `json:"imageUrl,omitempty"`
}

const DefaultSpecies = "D"
