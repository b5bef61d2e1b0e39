package usecase

import (
	"context"
	"time"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct{}

func NewHealthUsecase() HealthUsecase {
	return &healthUsecase{}
}

// Check reports liveness only; it deliberately touches no store.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	return map[string]string{
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
}
