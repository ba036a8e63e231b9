// Package flow holds the question suppression engine and the adaptive
// question orchestrator: the only session-scoped mutable state in the core.
package flow

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/sitegen-cli/internal/model"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is the static, process-wide question catalog. Loaded once at
// startup; entries are never mutated.
type Catalog struct {
	questions []model.Question
	byID      map[string]model.Question
}

type catalogFile struct {
	Questions []model.Question `yaml:"questions"`
}

// LoadCatalog parses the embedded catalog.
func LoadCatalog() (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(catalogYAML, &file); err != nil {
		return nil, eris.Wrap(err, "flow: parse question catalog")
	}

	c := &Catalog{byID: make(map[string]model.Question, len(file.Questions))}
	for _, q := range file.Questions {
		if q.ID == "" || q.Text == "" {
			return nil, eris.Errorf("flow: catalog entry missing id or text (id=%q)", q.ID)
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, eris.Errorf("flow: duplicate catalog entry %q", q.ID)
		}
		if q.Priority < 1 || q.Priority > 5 {
			return nil, eris.Errorf("flow: catalog entry %q has priority %d outside 1..5", q.ID, q.Priority)
		}
		c.byID[q.ID] = q
		c.questions = append(c.questions, q)
	}

	// Follow-up references must resolve.
	for _, q := range c.questions {
		for _, opt := range q.Options {
			if opt.FollowUp == "" {
				continue
			}
			fu, ok := c.byID[opt.FollowUp]
			if !ok {
				return nil, eris.Errorf("flow: %q references unknown follow-up %q", q.ID, opt.FollowUp)
			}
			if fu.FollowUpOf != q.ID {
				return nil, eris.Errorf("flow: follow-up %q is not marked follow_up_of %q", opt.FollowUp, q.ID)
			}
		}
	}

	return c, nil
}

// Get returns a catalog entry by id.
func (c *Catalog) Get(id string) (model.Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// Plannable returns the questions eligible for planning (follow-up-only
// entries are excluded; they are materialized by their parent's answer).
func (c *Catalog) Plannable() []model.Question {
	out := make([]model.Question, 0, len(c.questions))
	for _, q := range c.questions {
		if q.FollowUpOf == "" {
			out = append(out, q)
		}
	}
	return out
}

// Len returns the total number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.questions)
}
