package handler

// EndpointDoc describes one route in the /api/docs listing.
type EndpointDoc struct {
	Method       string `json:"method"`
	Path         string `json:"path"`
	RequiresAuth bool   `json:"requiresAuth"`
	Description  string `json:"description"`
	Example      string `json:"example"`
	Response     any    `json:"response"`
}

// Documented is implemented by handler sets that publish their endpoints.
type Documented interface {
	Docs() []EndpointDoc
}
