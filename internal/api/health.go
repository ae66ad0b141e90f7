package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// HealthResponse reports whether a catalog has been published
type HealthResponse struct {
	Body struct {
		Status     string    `json:"status" example:"ok" doc:"Service status"`
		Archetypes int       `json:"archetypes" example:"12" doc:"Archetypes in the published catalog"`
		Snapshot   bool      `json:"snapshot" doc:"Snapshot mode"`
		BuiltAt    time.Time `json:"builtAt,omitempty" doc:"When the catalog was built"`
	}
}

// AddHealthCheck registers GET /api/health
func AddHealthCheck(api huma.API, svc CatalogService) {
	huma.Register(api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health Check",
		Description: "Check if the service is running and has a catalog",
		Tags:        []string{"Health"},
	}, func(ctx context.Context, input *struct{}) (*HealthResponse, error) {
		c := svc.Catalog()

		resp := &HealthResponse{}
		resp.Body.Status = "ok"
		if c.BuiltAt.IsZero() {
			resp.Body.Status = "initializing"
		}
		resp.Body.Archetypes = len(c.Archetypes)
		resp.Body.Snapshot = c.Snapshot
		resp.Body.BuiltAt = c.BuiltAt
		return resp, nil
	})
}
