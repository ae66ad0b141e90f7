package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/liferay-faces/archetype-portal/internal/catalog"
)

// CatalogService is the read side of the archetype service plus refresh
type CatalogService interface {
	Catalog() *catalog.Catalog
	Refresh(ctx context.Context) (*catalog.Catalog, error)
}

// ArchetypesInput filters the archetype list
type ArchetypesInput struct {
	Suite   string `query:"suite" doc:"Only archetypes of this component suite" example:"icefaces"`
	Liferay string `query:"liferay" doc:"Only archetypes targeting this Liferay version" example:"70"`
	JSF     string `query:"jsf" doc:"Only archetypes targeting this JSF version" example:"2.2"`
}

type ArchetypesOutput struct {
	Body []catalog.Archetype
}

type BuildsOutput struct {
	Body []catalog.Build
}

type SuitesOutput struct {
	Body []catalog.Suite
}

type VersionsOutput struct {
	Body struct {
		Liferay  []string `json:"liferay" doc:"Liferay versions, newest first"`
		JSF      []string `json:"jsf" doc:"JSF versions, newest first"`
		Snapshot bool     `json:"snapshot" doc:"Whether the catalog lists snapshot archetypes"`
	}
}

type RefreshOutput struct {
	Body struct {
		Archetypes int    `json:"archetypes" doc:"Number of archetypes in the new catalog"`
		Suites     int    `json:"suites" doc:"Number of suites in the new catalog"`
		Warning    string `json:"warning,omitempty" doc:"Set when the scrape was aborted and the catalog is partial"`
	}
}

// Register adds the portal operations to api
func Register(api huma.API, svc CatalogService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-archetypes",
		Method:      http.MethodGet,
		Path:        "/api/archetypes",
		Summary:     "List archetypes",
		Description: "The latest archetype of each major line per suite, with its build snippets",
		Tags:        []string{"Catalog"},
	}, func(ctx context.Context, input *ArchetypesInput) (*ArchetypesOutput, error) {
		return &ArchetypesOutput{Body: svc.Catalog().Matching(catalog.Filter{
			Suite:   input.Suite,
			Liferay: input.Liferay,
			JSF:     input.JSF,
		})}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-builds",
		Method:      http.MethodGet,
		Path:        "/api/builds",
		Summary:     "List build tools",
		Tags:        []string{"Catalog"},
	}, func(ctx context.Context, input *struct{}) (*BuildsOutput, error) {
		return &BuildsOutput{Body: svc.Catalog().Builds}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-suites",
		Method:      http.MethodGet,
		Path:        "/api/suites",
		Summary:     "List component suites",
		Tags:        []string{"Catalog"},
	}, func(ctx context.Context, input *struct{}) (*SuitesOutput, error) {
		return &SuitesOutput{Body: svc.Catalog().Suites}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-versions",
		Method:      http.MethodGet,
		Path:        "/api/versions",
		Summary:     "List Liferay and JSF versions",
		Tags:        []string{"Catalog"},
	}, func(ctx context.Context, input *struct{}) (*VersionsOutput, error) {
		c := svc.Catalog()
		resp := &VersionsOutput{}
		resp.Body.Liferay = c.LiferayVersions
		resp.Body.JSF = c.JSFVersions
		resp.Body.Snapshot = c.Snapshot
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "refresh-catalog",
		Method:      http.MethodPost,
		Path:        "/api/refresh",
		Summary:     "Rebuild the catalog",
		Description: "Scrape the repository again using the current parameters",
		Tags:        []string{"Catalog"},
	}, func(ctx context.Context, input *struct{}) (*RefreshOutput, error) {
		c, err := svc.Refresh(ctx)
		if c == nil {
			return nil, huma.Error502BadGateway("catalog refresh failed", err)
		}

		resp := &RefreshOutput{}
		resp.Body.Archetypes = len(c.Archetypes)
		resp.Body.Suites = len(c.Suites)
		if err != nil {
			resp.Body.Warning = err.Error()
		}
		return resp, nil
	})

	AddHealthCheck(api, svc)
}
