package client

import "time"

// TweakInfo describes one catalog entry as exposed over the wire
type TweakInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Elevated    bool   `json:"elevated"`
	OneWay      bool   `json:"one_way"`
}

// TweakGroup is one category of the catalog
type TweakGroup struct {
	Category string      `json:"category"`
	Tweaks   []TweakInfo `json:"tweaks"`
}

// State reports the server's applied set and elevation
type State struct {
	Applied      []string  `json:"applied"`
	LastModified time.Time `json:"last_modified"`
	Elevated     bool      `json:"elevated"`
}

// ApplyRequest selects tweaks for an apply batch
type ApplyRequest struct {
	IDs []string `json:"ids,omitempty"`
	All bool     `json:"all,omitempty"`
}

// OutcomeInfo is one per-tweak result within a batch
type OutcomeInfo struct {
	TweakID   string `json:"tweak_id"`
	TweakName string `json:"tweak_name"`
	Kind      string `json:"kind"`
	Message   string `json:"message,omitempty"`
}

// BatchResult summarizes an apply or restore batch
type BatchResult struct {
	Kind         string        `json:"kind"`
	Applied      int           `json:"applied"`
	Restored     int           `json:"restored"`
	Skipped      int           `json:"skipped"`
	Failed       int           `json:"failed"`
	Outcomes     []OutcomeInfo `json:"outcomes"`
	StateWarning string        `json:"state_warning,omitempty"`
}

// RestorePlan partitions applied tweaks by reversibility
type RestorePlan struct {
	Restorable   []TweakInfo `json:"restorable"`
	Irreversible []TweakInfo `json:"irreversible"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
}
