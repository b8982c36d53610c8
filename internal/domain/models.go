package domain

// QuestionKind tells the presentation layer which media field to render.
type QuestionKind string

const (
	KindText  QuestionKind = "text"
	KindImage QuestionKind = "image"
	KindAudio QuestionKind = "audio"
)

// Label is the badge text shown next to a question. Unknown kinds render as text.
func (k QuestionKind) Label() string {
	switch k {
	case KindImage:
		return "Image"
	case KindAudio:
		return "Audio"
	default:
		return "Texte"
	}
}

// Question is one multiple-choice entry of the question resource.
// Answer is expected to be one of Choices; this is a contract with the source, not validated.
type Question struct {
	Kind    QuestionKind `json:"type" yaml:"type"`
	Prompt  string       `json:"question" yaml:"question"`
	Choices []string     `json:"choices" yaml:"choices"`
	Answer  string       `json:"answer" yaml:"answer"`
	Image   string       `json:"image,omitempty" yaml:"image,omitempty"`
	Audio   string       `json:"audio,omitempty" yaml:"audio,omitempty"`
}

// MediaRef returns the URI relevant to the question kind, or "".
func (q Question) MediaRef() string {
	switch q.Kind {
	case KindImage:
		return q.Image
	case KindAudio:
		return q.Audio
	default:
		return ""
	}
}

// Phase is the state of a game session.
type Phase string

const (
	PhaseCollecting Phase = "collecting"
	PhaseSubmitted  Phase = "submitted"
)

// Outcome is the read-only projection of one round position.
type Outcome struct {
	Selected      *int   `json:"selected"`
	SelectedText  string `json:"selectedText,omitempty"`
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
}

// SubmitResult summarizes a successful submission.
type SubmitResult struct {
	Score   int    `json:"score"`
	Total   int    `json:"total"`
	Correct []bool `json:"correct"`
}

// ChoiceMark carries per-choice styling flags for the presentation layer.
type ChoiceMark struct {
	Text      string `json:"text"`
	Selected  bool   `json:"selected"`
	Correct   bool   `json:"correct"`
	Incorrect bool   `json:"incorrect"`
}

// QuestionView is a rendered round question.
type QuestionView struct {
	Position int          `json:"position"`
	Kind     QuestionKind `json:"type"`
	Label    string       `json:"label"`
	Prompt   string       `json:"question"`
	MediaRef string       `json:"media,omitempty"`
	Choices  []ChoiceMark `json:"choices"`
}

// RoundView is the snapshot handed to the presentation layer after every command.
type RoundView struct {
	SessionID string         `json:"sessionId"`
	Phase     Phase          `json:"phase"`
	Revealed  bool           `json:"revealed"`
	Score     *int           `json:"score,omitempty"`
	Total     int            `json:"total"`
	Questions []QuestionView `json:"questions"`
}
