package model

// Question is a single multiple-choice question inside a quiz session.
// IDs are 1-based and unique within the session; Options is already
// shuffled and always contains CorrectAnswer.
type Question struct {
	ID            int      `json:"id" bson:"id"`
	Text          string   `json:"question" bson:"question"`
	Options       []string `json:"options" bson:"options"`
	CorrectAnswer string   `json:"correctAnswer" bson:"correctAnswer"`
	Type          string   `json:"type" bson:"type"`
	Difficulty    string   `json:"difficulty" bson:"difficulty"`
	Category      string   `json:"category" bson:"category"`
}

// RedactedQuestion is the client-safe view of a question, sent while a
// session is still open. It has no correct-answer field at all.
type RedactedQuestion struct {
	ID         int      `json:"id"`
	Text       string   `json:"question"`
	Options    []string `json:"options"`
	Type       string   `json:"type"`
	Difficulty string   `json:"difficulty"`
	Category   string   `json:"category"`
}

// Redact strips the correct answer from a question.
func (q Question) Redact() RedactedQuestion {
	return RedactedQuestion{
		ID:         q.ID,
		Text:       q.Text,
		Options:    q.Options,
		Type:       q.Type,
		Difficulty: q.Difficulty,
		Category:   q.Category,
	}
}

// RedactQuestions maps a session's questions to their client-safe views.
func RedactQuestions(questions []Question) []RedactedQuestion {
	redacted := make([]RedactedQuestion, 0, len(questions))
	for _, q := range questions {
		redacted = append(redacted, q.Redact())
	}
	return redacted
}
