package models

// TrainingType is an offering owned by a trainer. PERSONAL implies a
// single-occupant slot; GROUP capacity comes from MaxClients.
type TrainingType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    int    `json:"duration"` // minutes
	Category    string `json:"category"` // PERSONAL or GROUP
	MaxClients  *int   `json:"maxClients"`
}

// TrainingTypeRequest is the creation/update payload. The yaml tags
// serve the preset templates file.
type TrainingTypeRequest struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
	Duration    int    `json:"duration" yaml:"duration"`
	Category    string `json:"category" yaml:"category"`
	MaxClients  *int   `json:"maxClients,omitempty" yaml:"max_clients"`
}
