// Seeds a demo user for local development.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"quizarena/internal/config"
	"quizarena/internal/model"
)

const (
	demoEmail    = "demo@quizarena.local"
	demoPassword = "password123"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	users := client.Database(cfg.MongoDatabase).Collection("users")

	var existing model.User
	err = users.FindOne(ctx, bson.M{"email": demoEmail}).Decode(&existing)
	if err == nil {
		fmt.Printf("Demo user already exists: %s\n", demoEmail)
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Fatalf("Failed to check for demo user: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := model.User{
		Username:     "demo",
		Email:        demoEmail,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if _, err := users.InsertOne(ctx, user); err != nil {
		log.Fatalf("Failed to insert demo user: %v", err)
	}

	fmt.Printf("Seeded demo user %s (password %q)\n", demoEmail, demoPassword)
}
