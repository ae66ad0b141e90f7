package catalog

import "time"

// Archetype is one published archetype line: the latest minor release of a
// major version for a component suite, with its build snippets.
type Archetype struct {
	LiferayVersion     string `json:"liferayVersion" doc:"Liferay Portal version the archetype targets"`
	JSFVersion         string `json:"jsfVersion" doc:"JSF version the archetype targets"`
	Suite              string `json:"suite" doc:"Component suite key"`
	Version            string `json:"version" doc:"Archetype version"`
	MavenDependencies  string `json:"mavenDependencies" doc:"Dependency sections of the archetype pom.xml"`
	GradleDependencies string `json:"gradleDependencies" doc:"The archetype build.gradle"`
	GenerateCommand    string `json:"generateCommand" doc:"mvn archetype:generate command line"`
}

// Suite is a component family offered as an archetype variant
type Suite struct {
	Key   string  `json:"key" example:"icefaces"`
	Title *string `json:"title" example:"ICEfaces" doc:"Display name, null for unknown suites"`
}

// Build is a supported build tool
type Build struct {
	ID    string `json:"id" example:"maven"`
	Label string `json:"label" example:"maven"`
}

// Catalog is an immutable snapshot of everything the portal page shows
type Catalog struct {
	Archetypes      []Archetype `json:"archetypes"`
	Builds          []Build     `json:"builds"`
	Suites          []Suite     `json:"suites"`
	LiferayVersions []string    `json:"liferayVersions"`
	JSFVersions     []string    `json:"jsfVersions"`
	Snapshot        bool        `json:"snapshot"`
	Context         string      `json:"context" doc:"Directory listing the catalog was scraped from"`
	BuiltAt         time.Time   `json:"builtAt"`
}

// DefaultBuilds returns the fixed build tool list
func DefaultBuilds() []Build {
	return []Build{
		{ID: "maven", Label: "maven"},
		{ID: "gradle", Label: "gradle"},
	}
}

// Empty returns a catalog with no scraped content
func Empty() *Catalog {
	return &Catalog{
		Archetypes:      []Archetype{},
		Builds:          DefaultBuilds(),
		Suites:          []Suite{},
		LiferayVersions: []string{},
		JSFVersions:     []string{},
	}
}

var suiteTitles = map[string]string{
	"alloy":       "Liferay Faces Alloy",
	"bootsfaces":  "BootsFaces",
	"butterfaces": "ButterFaces",
	"icefaces":    "ICEfaces",
	"jsf":         "JSF Standard",
	"metal":       "Liferay Faces Metal",
	"primefaces":  "PrimeFaces",
	"richfaces":   "RichFaces",
}

// SuiteTitle returns the display name of a known suite key
func SuiteTitle(key string) (string, bool) {
	title, ok := suiteTitles[key]
	return title, ok
}

// NewSuite builds a Suite, leaving Title nil for unknown keys
func NewSuite(key string) Suite {
	s := Suite{Key: key}
	if title, ok := SuiteTitle(key); ok {
		s.Title = &title
	}
	return s
}

// Filter selects archetypes; empty fields match anything
type Filter struct {
	Suite   string
	Liferay string
	JSF     string
}

// Matching returns the archetypes accepted by f, in catalog order
func (c *Catalog) Matching(f Filter) []Archetype {
	matches := make([]Archetype, 0, len(c.Archetypes))
	for _, a := range c.Archetypes {
		if f.Suite != "" && a.Suite != f.Suite {
			continue
		}
		if f.Liferay != "" && a.LiferayVersion != f.Liferay {
			continue
		}
		if f.JSF != "" && a.JSFVersion != f.JSF {
			continue
		}
		matches = append(matches, a)
	}
	return matches
}
