// ABOUTME: TOML seed files for preloading portfolio projects
// ABOUTME: Parses and validates every entry before any insert happens

package seed

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/apexforge/studio/internal/store"
)

// File is the top-level structure of a seed file:
//
//	[[project]]
//	title = "Hillside Residence"
//	category = "Residential"
//	image = "https://images.example.com/hillside.jpg"
//	year = "2024"
//	location = "Oslo, Norway"
//	description = "A terraced family home cut into the hillside."
type File struct {
	Projects []Project `toml:"project"`
}

// Project is a single seed entry.
type Project struct {
	Title       string `toml:"title"`
	Category    string `toml:"category"`
	Image       string `toml:"image"`
	Year        string `toml:"year"`
	Location    string `toml:"location"`
	Description string `toml:"description"`
}

// Load reads a seed file and validates every entry against the same rules
// as a project create. It fails before returning anything insertable, so a
// bad entry aborts the whole seed rather than half-applying it.
func Load(path string) ([]store.ProjectFields, error) {
	var file File
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}

	if len(file.Projects) == 0 {
		return nil, fmt.Errorf("seed file %s contains no [[project]] entries", path)
	}

	fields := make([]store.ProjectFields, 0, len(file.Projects))
	for i, p := range file.Projects {
		f := store.ProjectFields{
			Title:       p.Title,
			Category:    store.Category(p.Category),
			Image:       p.Image,
			Year:        p.Year,
			Location:    p.Location,
			Description: p.Description,
		}
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("project %d (%q): %w", i+1, p.Title, err)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// Apply inserts the loaded projects through the normal creation path.
// Returns the created projects in seed-file order.
func Apply(ctx context.Context, s store.ProjectStore, fields []store.ProjectFields) ([]*store.Project, error) {
	created := make([]*store.Project, 0, len(fields))
	for _, f := range fields {
		p, err := s.CreateProject(ctx, f)
		if err != nil {
			return created, fmt.Errorf("seeding %q: %w", f.Title, err)
		}
		created = append(created, p)
	}
	return created, nil
}
