package model

// QuestionCategory groups catalog questions by intent.
type QuestionCategory string

const (
	CategoryCritical        QuestionCategory = "critical"
	CategoryEnhancement     QuestionCategory = "enhancement"
	CategoryPersonalization QuestionCategory = "personalization"
	CategoryStyle           QuestionCategory = "style"
)

// Question is a static catalog entry. Catalog entries are never mutated;
// only their applicability in a session is evaluated dynamically.
type Question struct {
	ID       string           `yaml:"id" json:"id"`
	Text     string           `yaml:"text" json:"text"`
	Category QuestionCategory `yaml:"category" json:"category"`
	// Priority is 1 (highest) through 5 (lowest).
	Priority int `yaml:"priority" json:"priority"`
	// Captures lists the fact keys a direct answer supplies.
	Captures []string `yaml:"captures" json:"captures"`
	// Infers lists the fact keys answer options may additionally imply.
	Infers   []string       `yaml:"infers,omitempty" json:"infers,omitempty"`
	Options  []Option       `yaml:"options,omitempty" json:"options,omitempty"`
	Suppress []SuppressRule `yaml:"suppress,omitempty" json:"suppress,omitempty"`
	// Requires gates applicability on a precondition (e.g. the photo
	// labeling question requires at least one photo to exist).
	Requires *RequiresRule `yaml:"requires,omitempty" json:"requires,omitempty"`
	// FollowUpOf marks an entry that is only materialized as a follow-up
	// to its parent; it never enters planning on its own.
	FollowUpOf string `yaml:"follow_up_of,omitempty" json:"follow_up_of,omitempty"`
}

// Option is one selectable answer with the facts it asserts and the
// facts it lets the flow infer.
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
	// Facts asserted directly by choosing this option (confidence 1.0).
	Facts map[string]any `yaml:"facts,omitempty" json:"facts,omitempty"`
	// Infers holds user-answer-derived inferences (fixed confidence 0.8).
	Infers map[string]any `yaml:"infers,omitempty" json:"infers,omitempty"`
	// FollowUp names a catalog entry to materialize next.
	FollowUp string `yaml:"follow_up,omitempty" json:"follow_up,omitempty"`
}

// SuppressRule is a declarative predicate; any matching rule suppresses the
// question. Zero-valued fields are ignored.
type SuppressRule struct {
	// Fact plus MinConfidence: suppress when confidence(Fact) >= MinConfidence.
	Fact          string  `yaml:"fact,omitempty" json:"fact,omitempty"`
	MinConfidence float64 `yaml:"min_confidence,omitempty" json:"min_confidence,omitempty"`
	// Equals: suppress when the fact's value equals this string.
	Equals string `yaml:"equals,omitempty" json:"equals,omitempty"`
	// MinCount: suppress when a list fact holds at least this many entries.
	MinCount int `yaml:"min_count,omitempty" json:"min_count,omitempty"`
	// HoursComplete: suppress when hours hold at least one complete period.
	HoursComplete bool `yaml:"hours_complete,omitempty" json:"hours_complete,omitempty"`
}

// RequiresRule gates a question on a data precondition.
type RequiresRule struct {
	Fact     string `yaml:"fact" json:"fact"`
	MinCount int    `yaml:"min_count,omitempty" json:"min_count,omitempty"`
}

// SortQuestions orders candidates by (priority ascending, confidence
// ascending): highest-priority, least-confident gaps first. Ties keep
// catalog order for determinism.
func SortQuestions(qs []Question, conf ConfidenceMap) []Question {
	out := make([]Question, len(qs))
	copy(out, qs)
	// Insertion sort keeps the original order stable for equal keys.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && questionLess(out[j], out[j-1], conf); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func questionLess(a, b Question, conf ConfidenceMap) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return captureConfidence(a, conf) < captureConfidence(b, conf)
}

// captureConfidence is the lowest confidence across the facts a question
// captures; the weakest gap drives ordering.
func captureConfidence(q Question, conf ConfidenceMap) float64 {
	if len(q.Captures) == 0 {
		return 0
	}
	low := 1.0
	for _, key := range q.Captures {
		if c := conf.Get(key); c < low {
			low = c
		}
	}
	return low
}
