package models

// ValidateRequest is the body of POST /api/v1/validate
type ValidateRequest struct {
	Species      int      `json:"species" yaml:"species" binding:"required,min=1,max=3"`
	CantusFirmus []string `json:"cantus_firmus,omitempty" yaml:"cantus_firmus"` // Pitches, e.g. ["D4", "F4"]
	CantusSlug   string   `json:"cantus_slug,omitempty" yaml:"cantus_slug"`     // Use a stored cantus firmus instead
	Counterpoint []string `json:"counterpoint" yaml:"counterpoint" binding:"required"`
	Key          string   `json:"key,omitempty" yaml:"key"`   // Tonic, defaults to the cantus firmus key or "C"
	Mode         string   `json:"mode,omitempty" yaml:"mode"` // Defaults to the cantus firmus mode or "major"
	Position     string   `json:"cp_position,omitempty" yaml:"cp_position"`
}

// CantusRequest is the body of POST /api/admin/cantus
type CantusRequest struct {
	Slug   string   `json:"slug" binding:"required"`
	Title  string   `json:"title" binding:"required"`
	Source string   `json:"source"`
	Key    string   `json:"key" binding:"required"`
	Mode   string   `json:"mode" binding:"required"`
	Notes  []string `json:"notes" binding:"required,min=1"`
}

// ValidationStats summarizes the validation log
type ValidationStats struct {
	Total     int64         `json:"total"`
	Valid     int64         `json:"valid"`
	AvgScore  float64       `json:"avg_score"`
	BySpecies map[int]int64 `json:"by_species"`
	TopCantus []CantusUsage `json:"top_cantus"`
}

// CantusUsage counts validations against one stored cantus firmus
type CantusUsage struct {
	Slug  string `json:"slug"`
	Count int64  `json:"count"`
}
