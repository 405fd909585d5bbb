package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janosik-bot/janosik/internal/model"
)

func TestRunErrorIs(t *testing.T) {
	tests := map[string]struct {
		err    error
		target error
		expIs  bool
	}{
		"Same kind should match the sentinel": {
			err:    &model.RunError{Kind: model.FailureTimeout, Program: "cat"},
			target: model.ErrTimeout,
			expIs:  true,
		},

		"Wrapped run errors should match the sentinel": {
			err:    fmt.Errorf("blackbox: %w", &model.RunError{Kind: model.FailureCrash}),
			target: model.ErrCrash,
			expIs:  true,
		},

		"Different kind should not match": {
			err:    &model.RunError{Kind: model.FailureNoOutput},
			target: model.ErrCrash,
			expIs:  false,
		},

		"Other errors should not match": {
			err:    errors.New("something"),
			target: model.ErrOther,
			expIs:  false,
		},

		"Cause should be reachable": {
			err:    &model.RunError{Kind: model.FailureOther, Err: model.ErrNotValid},
			target: model.ErrNotValid,
			expIs:  true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expIs, errors.Is(test.err, test.target))
		})
	}
}

func TestRunErrorMessage(t *testing.T) {
	err := &model.RunError{Kind: model.FailureOther, Program: "sort", Message: "cannot write tmp file", Err: errors.New("disk full")}
	assert.Equal(t, `program "sort": other: cannot write tmp file: disk full`, err.Error())
}

func TestFailureKindOf(t *testing.T) {
	kind, ok := model.FailureKindOf(fmt.Errorf("x: %w", &model.RunError{Kind: model.FailureNotFound}))
	assert.True(t, ok)
	assert.Equal(t, model.FailureNotFound, kind)

	_, ok = model.FailureKindOf(errors.New("x"))
	assert.False(t, ok)
}

func TestValidateProgramName(t *testing.T) {
	tests := map[string]struct {
		name    string
		allowed []string
		expErr  bool
	}{
		"A plain name should be valid":                   {name: "cat"},
		"Dots dashes and underscores should be valid":    {name: "zad_1.v2-final"},
		"Empty name should fail":                         {name: "", expErr: true},
		"Parent dir should fail":                         {name: "..", expErr: true},
		"Current dir should fail":                        {name: ".", expErr: true},
		"Path separators should fail":                    {name: "../etc/passwd", expErr: true},
		"Hidden files should fail":                       {name: ".profile", expErr: true},
		"Spaces should fail":                             {name: "cat hello", expErr: true},
		"Allowed program should be valid":                {name: "cat", allowed: []string{"sort", "cat"}},
		"Program missing from the allowlist should fail": {name: "rm", allowed: []string{"cat"}, expErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := model.ValidateProgramName(test.name, test.allowed)
			if test.expErr {
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
