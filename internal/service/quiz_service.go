package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"quizarena/internal/cache"
	"quizarena/internal/model"
	"quizarena/internal/repository"
	"quizarena/internal/trivia"
)

var (
	ErrSessionNotFound  = errors.New("quiz session not found")
	ErrAlreadySubmitted = errors.New("quiz already submitted")
	ErrNotSubmitted     = errors.New("quiz not yet submitted")
	ErrQuestionFetch    = errors.New("failed to fetch questions from trivia API")
)

var (
	validAmounts   = []int{15, 30, 45}
	validDurations = []int{5, 10, 15, 30}
)

const (
	defaultAmount   = 15
	defaultDuration = 30

	// Resume has no record of the originally requested duration, so it
	// reports the maximum as a fallback.
	resumeDurationSeconds = defaultDuration * 60
)

// Trivia question text arrives with a small set of HTML entities escaped.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#039;", "'",
	"&apos;", "'",
)

func decodeEntities(s string) string {
	return entityReplacer.Replace(s)
}

// QuestionFetcher supplies raw trivia questions for new sessions.
type QuestionFetcher interface {
	Fetch(ctx context.Context, amount int) ([]trivia.Question, error)
}

// QuizService orchestrates the quiz session lifecycle: creation, answer and
// visit recording, submission with scoring, and the read-only projections.
type QuizService struct {
	quizzes   repository.QuizRepo
	users     repository.UserRepo
	fetcher   QuestionFetcher
	snapshots cache.SessionCache
}

// NewQuizService creates a new quiz service
func NewQuizService(quizzes repository.QuizRepo, users repository.UserRepo, fetcher QuestionFetcher, snapshots cache.SessionCache) *QuizService {
	return &QuizService{
		quizzes:   quizzes,
		users:     users,
		fetcher:   fetcher,
		snapshots: snapshots,
	}
}

// StartSession fetches a fresh question set and creates a new session for
// the user. Out-of-range amount and duration fall back to their defaults.
// The returned questions are redacted; correct answers stay server-side
// until submission.
func (s *QuizService) StartSession(ctx context.Context, userID, email string, amount, duration int) (*model.StartResult, error) {
	amount = clampChoice(amount, validAmounts, defaultAmount)
	duration = clampChoice(duration, validDurations, defaultDuration)

	raw, err := s.fetcher.Fetch(ctx, amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuestionFetch, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty question set", ErrQuestionFetch)
	}

	questions := buildQuestions(raw)

	session := &model.QuizSession{
		SessionID:        uuid.New().String(),
		UserID:           userID,
		Email:            email,
		Questions:        questions,
		Answers:          map[string]string{},
		VisitedQuestions: []int{questions[0].ID},
		StartTime:        time.Now(),
	}
	if err := s.quizzes.Create(ctx, session); err != nil {
		return nil, err
	}

	redacted := model.RedactQuestions(questions)
	s.cacheSnapshot(ctx, session.SessionID, userID, redacted)

	return &model.StartResult{
		SessionID: session.SessionID,
		Questions: redacted,
		Duration:  duration * 60,
	}, nil
}

// RecordAnswer upserts the selected option for a question. The option is
// stored as-is; the client may change it any number of times before
// submission, and it is not checked against the question's option list.
func (s *QuizService) RecordAnswer(ctx context.Context, sessionID, userID string, questionID int, answer string) error {
	session, err := s.quizzes.GetBySessionID(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if session.Submitted {
		return ErrAlreadySubmitted
	}

	return s.quizzes.SetAnswer(ctx, sessionID, userID, questionID, answer)
}

// RecordVisit adds a question id to the visited set. Re-visits are no-ops
// and skip the storage write. Visits are accepted even after submission.
func (s *QuizService) RecordVisit(ctx context.Context, sessionID, userID string, questionID int) error {
	session, err := s.quizzes.GetBySessionID(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if session.HasVisited(questionID) {
		return nil
	}

	return s.quizzes.AddVisited(ctx, sessionID, userID, questionID)
}

// Status returns the progress projection of a session.
func (s *QuizService) Status(ctx context.Context, sessionID, userID string) (*model.SessionStatus, error) {
	session, err := s.quizzes.GetBySessionID(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	answered := make([]int, 0, len(session.Answers))
	for key := range session.Answers {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		answered = append(answered, id)
	}
	sort.Ints(answered)

	visited := session.VisitedQuestions
	if visited == nil {
		visited = []int{}
	}

	return &model.SessionStatus{
		AnsweredQuestions: answered,
		VisitedQuestions:  visited,
		TotalQuestions:    len(session.Questions),
		Submitted:         session.Submitted,
	}, nil
}

// Resume returns the redacted question set of an existing session so the
// client can rebuild its state after a reload. Served from the Redis
// snapshot when possible; the ownership check applies on both paths.
func (s *QuizService) Resume(ctx context.Context, sessionID, userID string) (*model.StartResult, error) {
	snap, err := s.snapshots.Get(ctx, sessionID)
	if err != nil {
		log.Printf("[QuizService] snapshot lookup failed: %v", err)
	} else if snap != nil && snap.UserID == userID {
		return &model.StartResult{
			SessionID: snap.SessionID,
			Questions: snap.Questions,
			Duration:  resumeDurationSeconds,
		}, nil
	}

	session, err := s.quizzes.GetBySessionID(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	redacted := model.RedactQuestions(session.Questions)
	if !session.Submitted {
		s.cacheSnapshot(ctx, session.SessionID, userID, redacted)
	}

	return &model.StartResult{
		SessionID: session.SessionID,
		Questions: redacted,
		Duration:  resumeDurationSeconds,
	}, nil
}

// Submit scores the session and finalizes it. Submission is one-way: the
// conditional store update makes the first submit win, and any concurrent
// or repeated submit fails with ErrAlreadySubmitted.
func (s *QuizService) Submit(ctx context.Context, sessionID, userID string) (*model.SubmitResult, error) {
	session, err := s.quizzes.GetBySessionID(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Submitted {
		return nil, ErrAlreadySubmitted
	}

	results, score := buildResults(session)

	endTime := time.Now()
	timeTaken := int(endTime.Sub(session.StartTime).Seconds())

	won, err := s.quizzes.Finalize(ctx, sessionID, userID, score, endTime, timeTaken)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, ErrAlreadySubmitted
	}

	if err := s.snapshots.Delete(ctx, sessionID); err != nil {
		log.Printf("[QuizService] snapshot delete failed: %v", err)
	}

	return &model.SubmitResult{
		Score:          score,
		TotalQuestions: len(session.Questions),
		Results:        results,
		TimeTaken:      timeTaken,
	}, nil
}

// History lists the caller's submitted sessions, most recent first.
func (s *QuizService) History(ctx context.Context, userID string) ([]model.HistoryEntry, error) {
	sessions, err := s.quizzes.ListSubmitted(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]model.HistoryEntry, 0, len(sessions))
	for _, session := range sessions {
		entries = append(entries, model.HistoryEntry{
			SessionID:      session.SessionID,
			Email:          session.Email,
			Score:          session.Score,
			TotalQuestions: len(session.Questions),
			Date:           session.EndTime,
			TimeTaken:      session.TimeTaken,
		})
	}
	return entries, nil
}

// Results returns the full detail view of a submitted session.
func (s *QuizService) Results(ctx context.Context, sessionID, userID string) (*model.SessionResults, error) {
	session, err := s.quizzes.GetBySessionID(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if !session.Submitted {
		return nil, ErrNotSubmitted
	}

	results, _ := buildResults(session)

	username := "Unknown"
	if user, err := s.users.GetByID(ctx, session.UserID); err == nil && user != nil {
		username = user.Username
	}

	return &model.SessionResults{
		Username:       username,
		Email:          session.Email,
		Score:          session.Score,
		TotalQuestions: len(session.Questions),
		Results:        results,
		StartTime:      session.StartTime,
		EndTime:        session.EndTime,
		TimeTaken:      session.TimeTaken,
	}, nil
}

func (s *QuizService) cacheSnapshot(ctx context.Context, sessionID, userID string, questions []model.RedactedQuestion) {
	snap := &cache.Snapshot{
		SessionID: sessionID,
		UserID:    userID,
		Questions: questions,
	}
	if err := s.snapshots.Set(ctx, snap); err != nil {
		log.Printf("[QuizService] snapshot cache failed: %v", err)
	}
}

// buildQuestions decodes the raw trivia payload into session questions:
// entities unescaped, options assembled from correct + incorrect answers
// and shuffled, ids assigned 1-based in fetch order.
func buildQuestions(raw []trivia.Question) []model.Question {
	questions := make([]model.Question, 0, len(raw))
	for i, rq := range raw {
		correct := decodeEntities(rq.CorrectAnswer)

		options := make([]string, 0, len(rq.IncorrectAnswers)+1)
		options = append(options, correct)
		for _, opt := range rq.IncorrectAnswers {
			options = append(options, decodeEntities(opt))
		}
		rand.Shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})

		questions = append(questions, model.Question{
			ID:            i + 1,
			Text:          decodeEntities(rq.Text),
			Options:       options,
			CorrectAnswer: correct,
			Type:          rq.Type,
			Difficulty:    rq.Difficulty,
			Category:      decodeEntities(rq.Category),
		})
	}
	return questions
}

// buildResults walks the questions in original order and compares recorded
// answers against the correct ones with exact string equality. Unanswered
// questions score as incorrect with a nil user answer.
func buildResults(session *model.QuizSession) ([]model.QuestionResult, int) {
	score := 0
	results := make([]model.QuestionResult, 0, len(session.Questions))
	for _, q := range session.Questions {
		userAnswer := session.AnswerFor(q.ID)
		isCorrect := userAnswer != nil && *userAnswer == q.CorrectAnswer
		if isCorrect {
			score++
		}

		results = append(results, model.QuestionResult{
			QuestionID:    q.ID,
			Question:      q.Text,
			Options:       q.Options,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			Category:      q.Category,
			Difficulty:    q.Difficulty,
		})
	}
	return results, score
}

func clampChoice(value int, allowed []int, fallback int) int {
	for _, v := range allowed {
		if value == v {
			return value
		}
	}
	return fallback
}
