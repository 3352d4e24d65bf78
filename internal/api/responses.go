package api

import "dataforall/internal/tracking"

// TrackingResponse is the body of a successful folio lookup.
type TrackingResponse struct {
	Source   string             `json:"source"`
	Petition *tracking.Petition `json:"petition"`
}

// FromResult converts a search result to its response shape.
func FromResult(res *tracking.Result) *TrackingResponse {
	return &TrackingResponse{
		Source:   res.Source,
		Petition: res.Petition,
	}
}
