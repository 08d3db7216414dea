package models

// TrainerProfile is the trainer's public card. The authoritative copy
// lives server-side; prices feed booking cost display.
type TrainerProfile struct {
	ID              int64    `json:"id"`
	UserID          int64    `json:"userId"`
	FullName        string   `json:"fullName"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	Specializations []string `json:"specializations,omitempty"`
	PersonalPrice   float64  `json:"personalPrice"`
	GroupPrice      float64  `json:"groupPrice"`
}

// TrainerProfileUpdate carries the mutable trainer fields.
type TrainerProfileUpdate struct {
	FullName        string   `json:"fullName,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	Specializations []string `json:"specializations,omitempty"`
	PersonalPrice   *float64 `json:"personalPrice,omitempty"`
	GroupPrice      *float64 `json:"groupPrice,omitempty"`
}

// ClientProfile is read and updated by the client's own profile screen.
type ClientProfile struct {
	ID                int64  `json:"id"`
	UserID            int64  `json:"userId"`
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	Phone             string `json:"phone,omitempty"`
	DateOfBirth       string `json:"dateOfBirth,omitempty"`
	HealthInformation string `json:"healthInformation,omitempty"`
	FitnessGoals      string `json:"fitnessGoals,omitempty"`
}

// ClientProfileUpdate carries the mutable client fields.
type ClientProfileUpdate struct {
	FullName          string `json:"fullName,omitempty"`
	Phone             string `json:"phone,omitempty"`
	DateOfBirth       string `json:"dateOfBirth,omitempty"`
	HealthInformation string `json:"healthInformation,omitempty"`
	FitnessGoals      string `json:"fitnessGoals,omitempty"`
}

// RegisterRequest is the registration payload. Role-specific fields are
// optional and sent only when set.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`

	// Client fields.
	DateOfBirth       string `json:"dateOfBirth,omitempty"`
	HealthInformation string `json:"healthInformation,omitempty"`
	FitnessGoals      string `json:"fitnessGoals,omitempty"`

	// Trainer fields.
	Bio             string   `json:"bio,omitempty"`
	Specializations []string `json:"specializations,omitempty"`
	PersonalPrice   *float64 `json:"personalPrice,omitempty"`
	GroupPrice      *float64 `json:"groupPrice,omitempty"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
