package repository

import (
	"context"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizarena/internal/model"
)

// QuizRepo handles MongoDB operations for quiz sessions. Every lookup and
// mutation filters on both sessionId and userId, so a session owned by
// another user is indistinguishable from a missing one.
type QuizRepo interface {
	Create(ctx context.Context, session *model.QuizSession) error
	GetBySessionID(ctx context.Context, sessionID, userID string) (*model.QuizSession, error)
	SetAnswer(ctx context.Context, sessionID, userID string, questionID int, answer string) error
	AddVisited(ctx context.Context, sessionID, userID string, questionID int) error
	Finalize(ctx context.Context, sessionID, userID string, score int, endTime time.Time, timeTaken int) (bool, error)
	ListSubmitted(ctx context.Context, userID string) ([]*model.QuizSession, error)
}

type quizRepo struct {
	collection *mongo.Collection
}

// NewQuizRepo creates a new quiz session repository
func NewQuizRepo(db *mongo.Database) QuizRepo {
	return &quizRepo{
		collection: db.Collection("quizzes"),
	}
}

func (r *quizRepo) Create(ctx context.Context, session *model.QuizSession) error {
	if session.StartTime.IsZero() {
		session.StartTime = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, session)
	return err
}

func (r *quizRepo) GetBySessionID(ctx context.Context, sessionID, userID string) (*model.QuizSession, error) {
	var session model.QuizSession
	err := r.collection.FindOne(ctx, bson.M{"sessionId": sessionID, "userId": userID}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *quizRepo) SetAnswer(ctx context.Context, sessionID, userID string, questionID int, answer string) error {
	update := bson.M{"$set": bson.M{"answers." + strconv.Itoa(questionID): answer}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"sessionId": sessionID, "userId": userID}, update)
	return err
}

func (r *quizRepo) AddVisited(ctx context.Context, sessionID, userID string, questionID int) error {
	update := bson.M{"$addToSet": bson.M{"visitedQuestions": questionID}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"sessionId": sessionID, "userId": userID}, update)
	return err
}

// Finalize marks a session submitted with its score and timing fields in a
// single conditional update. The submitted:false filter makes submission
// first-writer-wins under concurrent duplicate submits; the return value
// reports whether this call was the winning write.
func (r *quizRepo) Finalize(ctx context.Context, sessionID, userID string, score int, endTime time.Time, timeTaken int) (bool, error) {
	filter := bson.M{"sessionId": sessionID, "userId": userID, "submitted": false}
	update := bson.M{"$set": bson.M{
		"submitted": true,
		"score":     score,
		"endTime":   endTime,
		"timeTaken": timeTaken,
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

func (r *quizRepo) ListSubmitted(ctx context.Context, userID string) ([]*model.QuizSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "endTime", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID, "submitted": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*model.QuizSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
