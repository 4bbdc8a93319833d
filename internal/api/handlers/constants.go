package handlers

const (
	// Catalog limits
	maxCantusNotes = 64 // Longest cantus firmus accepted by POST /api/admin/cantus
	maxQueryLength = 64 // Upper bound for the max_length list filter
)
