package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Separator joins the full texts of the selected offers into the single
// job_text field sent to the matching service.
const Separator = "\n\n---\n\n"

//go:embed offers.yaml
var embeddedOffers []byte

// Catalog is an immutable table of job offers loaded once at startup.
type Catalog struct {
	entries []*entry
	byID    map[string]*entry
}

type entry struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
}

// Offer is a catalog row as presented in selection controls.
type Offer struct {
	ID    string
	Label string
}

// NotFoundError reports a lookup with an id the catalog does not contain.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown job offer %q", e.ID)
}

// New returns the catalog embedded in the binary.
func New() (*Catalog, error) {
	return parse(embeddedOffers)
}

// FromFile loads an alternative catalog from a YAML file.
func FromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var entries []*entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog contains no offers")
	}

	byID := make(map[string]*entry, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.ID) == "" {
			return nil, fmt.Errorf("catalog entry with empty id")
		}
		if strings.TrimSpace(e.Text) == "" {
			return nil, fmt.Errorf("offer %q has empty text", e.ID)
		}
		if _, exists := byID[e.ID]; exists {
			return nil, fmt.Errorf("duplicate offer id %q", e.ID)
		}
		byID[e.ID] = e
	}

	return &Catalog{entries: entries, byID: byID}, nil
}

// Offers returns all offers in declaration order. The label is the first
// non-empty line of the stored text, trimmed.
func (c *Catalog) Offers() []Offer {
	offers := make([]Offer, 0, len(c.entries))
	for _, e := range c.entries {
		offers = append(offers, Offer{ID: e.ID, Label: label(e.Text)})
	}

	return offers
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// FullText returns the stored text for the given offer id.
func (c *Catalog) FullText(id string) (string, error) {
	e, ok := c.byID[id]
	if !ok {
		return "", &NotFoundError{ID: id}
	}

	return e.Text, nil
}

// JobText joins the full texts of the selected offers, in selection order,
// with the fixed separator. Any unknown id fails the whole call.
func (c *Catalog) JobText(ids []string) (string, error) {
	texts := make([]string, 0, len(ids))
	for _, id := range ids {
		text, err := c.FullText(id)
		if err != nil {
			return "", err
		}
		texts = append(texts, text)
	}

	return strings.Join(texts, Separator), nil
}

func label(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}

	return ""
}
