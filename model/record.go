package model

// Record is a searchable item supplied by the caller.
// The engine only reads records; ID must be non-empty and unique within a record set.
type Record struct {
	ID   string   `json:"id" yaml:"id"`
	Name string   `json:"name" yaml:"name"`
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Fields returns the searchable text fields of the record: the name followed by every tag.
// Empty fields are skipped.
func (r Record) Fields() []string {
	fields := make([]string, 0, len(r.Tags)+1)
	if r.Name != "" {
		fields = append(fields, r.Name)
	}
	for _, tag := range r.Tags {
		if tag != "" {
			fields = append(fields, tag)
		}
	}
	return fields
}

// SynonymTable maps a normalized word to its ordered list of synonyms.
type SynonymTable map[string][]string

// UsageFrequency maps a word to a positive weight. Absent words weigh 1.
type UsageFrequency map[string]float64

// Weight returns the usage weight for word, defaulting to 1.
func (u UsageFrequency) Weight(word string) float64 {
	if w, ok := u[word]; ok {
		return w
	}
	return 1
}
