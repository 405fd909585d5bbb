package runner

import (
	"context"

	"github.com/janosik-bot/janosik/internal/model"
)

//go:generate mockery --case underscore --output runnermock --outpkg runnermock --name Runner --structname MockRunner

// Runner runs installed programs against a textual input.
//
// A successful run returns a result with non-empty output. Every failure is
// returned as a *model.RunError whose kind is one of the model.Failure* values.
type Runner interface {
	Run(ctx context.Context, req model.RunRequest) (*model.RunResult, error)
}
