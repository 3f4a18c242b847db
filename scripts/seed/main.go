// Seeds a demo account with a few tasks for local development.
package main

import (
	"context"
	"errors"
	"os"

	"tasktrack/internal/apperr"
	"tasktrack/internal/auth"
	"tasktrack/internal/database"
	"tasktrack/internal/models"
	"tasktrack/internal/repository"
	"tasktrack/pkg/logger"
)

const (
	demoUsername = "demo"
	demoPassword = "Demo123!pass"
)

func main() {
	ctx := context.Background()
	db := database.InitDB(ctx)
	if db == nil {
		logger.Error(ctx, "Database not available; exiting")
		os.Exit(1)
	}
	if err := database.MigrateOrCreateSchema(ctx); err != nil {
		logger.Error(ctx, "Schema migration failed", "error", err)
		os.Exit(1)
	}

	users := repository.NewUsers(db)
	tasks := repository.NewTasks(db)

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		logger.Error(ctx, "Hash demo password failed", "error", err)
		os.Exit(1)
	}
	user := &models.User{Username: demoUsername, PasswordHash: hash}
	if err := users.Create(ctx, user); err != nil {
		if !errors.Is(err, apperr.ErrDuplicateUser) {
			logger.Error(ctx, "Seed user failed", "error", err)
			os.Exit(1)
		}
		existing, err := users.GetByUsername(ctx, demoUsername)
		if err != nil {
			logger.Error(ctx, "Lookup demo user failed", "error", err)
			os.Exit(1)
		}
		user = existing
	}

	samples := []models.Task{
		{Title: "Buy milk", Description: "2%"},
		{Title: "Water the plants", Description: "Balcony and kitchen"},
		{Title: "Read a chapter", Description: "Any book will do"},
	}
	for i := range samples {
		samples[i].UserID = user.ID
		if err := tasks.Create(ctx, &samples[i]); err != nil {
			logger.Error(ctx, "Seed task failed", "error", err, "title", samples[i].Title)
			os.Exit(1)
		}
	}
	if err := tasks.Complete(ctx, samples[2].ID, user.ID); err != nil {
		logger.Error(ctx, "Complete seed task failed", "error", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Seed complete", "username", demoUsername, "tasks", len(samples))
}
