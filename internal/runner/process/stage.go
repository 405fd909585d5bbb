package process

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/janosik-bot/janosik/internal/conventions"
	"github.com/janosik-bot/janosik/internal/model"
)

// stageInput writes the run input into a file unique to this run and reopens it
// for reading, so concurrent runs never share their staged input. The returned
// cleanup closes and removes the file.
func (r *Runner) stageInput(runID string, req model.RunRequest) (*os.File, func(), error) {
	f, err := os.CreateTemp(r.stagingDir, fmt.Sprintf(conventions.StagedInputPattern, runID))
	if err != nil {
		return nil, nil, &model.RunError{Kind: model.FailureOther, Program: req.Program, Message: "cannot write tmp file", Err: err}
	}
	path := f.Name()

	remove := func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			r.logger.Warningf("Could not remove staged input %s: %s", path, err)
		}
	}

	if _, err := f.WriteString(req.Input); err != nil {
		_ = f.Close()
		remove()
		return nil, nil, &model.RunError{Kind: model.FailureOther, Program: req.Program, Message: "cannot write tmp file", Err: err}
	}
	if err := f.Close(); err != nil {
		remove()
		return nil, nil, &model.RunError{Kind: model.FailureOther, Program: req.Program, Message: "cannot write tmp file", Err: err}
	}

	in, err := os.Open(path)
	if err != nil {
		remove()
		return nil, nil, &model.RunError{Kind: model.FailureOther, Program: req.Program, Message: "cannot open tmp file", Err: err}
	}

	return in, func() {
		_ = in.Close()
		remove()
	}, nil
}
