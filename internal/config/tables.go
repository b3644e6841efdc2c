package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Tables are the immutable presentation tables loaded once at startup:
// the project resource columns, the thumbnail convention and the guideline
// names per phase. Complex hierarchical config that's easier to manage in
// YAML than env vars.
type Tables struct {
	Projects ProjectTables `yaml:"projects"`
	Formats  FormatTables  `yaml:"formats"`
}

// ProjectTables configures project normalization.
type ProjectTables struct {
	ThumbnailBase string          `yaml:"thumbnail_base" validate:"required"`
	ThumbnailExt  string          `yaml:"thumbnail_ext" validate:"required"`
	Resources     []ResourceTable `yaml:"resources" validate:"dive"`
}

// ResourceTable maps a resource link column to its display name and icon.
type ResourceTable struct {
	Column string `yaml:"column" validate:"required"`
	Name   string `yaml:"name" validate:"required"`
	Icon   string `yaml:"icon" validate:"required"`
}

// FormatTables configures the formats sheet.
type FormatTables struct {
	Scheme string       `yaml:"scheme"`
	Phases []PhaseTable `yaml:"phases" validate:"required,min=1,dive"`
}

// PhaseTable names a phase column and the guideline links it holds, in order.
type PhaseTable struct {
	Column string   `yaml:"column" validate:"required"`
	Links  []string `yaml:"links"`
}

// DefaultTables returns the tables matching the published showcase sheets.
func DefaultTables() Tables {
	return Tables{
		Projects: ProjectTables{
			ThumbnailBase: "/project-thumbnails/",
			ThumbnailExt:  "-image.webp",
			Resources: []ResourceTable{
				{Column: "Innovata Certificates", Name: "Certificates", Icon: "certificate"},
				{Column: "Innovata Papers", Name: "Papers", Icon: "file-pdf"},
				{Column: "Innovata Pictures", Name: "Pictures Link", Icon: "images"},
				{Column: "Innovata PPTs", Name: "Presentation", Icon: "file-powerpoint"},
				{Column: "Innovata Reports", Name: "Reports", Icon: "file-alt"},
				{Column: "Innovata Videos", Name: "Videos", Icon: "video"},
			},
		},
		Formats: FormatTables{
			Scheme: "2021",
			Phases: []PhaseTable{
				{
					Column: "Phase-1",
					Links: []string{
						"Literature Survey Guidelines",
						"Introduction & Report Format",
						"Project Guidelines",
						"Synopsis Guidelines",
					},
				},
				{
					Column: "Phase-2",
					Links: []string{
						"Evaluation Annexure",
						"Presentation Template",
						"Final Report Front sheet",
					},
				},
			},
		},
	}
}

// LoadTables loads the tables file at path on top of DefaultTables.
// Returns the defaults without error if the file doesn't exist.
func LoadTables(path string) (Tables, error) {
	tables := DefaultTables()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Tables file is optional
			return tables, nil
		}
		return Tables{}, err
	}

	if err := yaml.Unmarshal(data, &tables); err != nil {
		return Tables{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := validator.New().Struct(tables); err != nil {
		return Tables{}, fmt.Errorf("invalid tables in %s: %w", path, err)
	}

	return tables, nil
}

// PhaseColumns returns the phase column names in configured order.
func (f FormatTables) PhaseColumns() []string {
	cols := make([]string, len(f.Phases))
	for i, p := range f.Phases {
		cols[i] = p.Column
	}
	return cols
}
