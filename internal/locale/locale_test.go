package locale_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janosik-bot/janosik/internal/locale"
	"github.com/janosik-bot/janosik/internal/model"
)

func TestNew(t *testing.T) {
	_, err := locale.New("pl")
	assert.NoError(t, err)

	_, err = locale.New("de")
	assert.ErrorIs(t, err, model.ErrNotValid)

	assert.Equal(t, []string{"en", "pl"}, locale.Languages())
}

func TestCatalogRunMessage(t *testing.T) {
	tests := map[string]struct {
		lang   string
		err    error
		expMsg string
	}{
		"No input should ask for input": {
			lang:   "en",
			err:    &model.RunError{Kind: model.FailureNoInput},
			expMsg: "No input, put it inside a ```code``` block",
		},

		"Timeout should name the program": {
			lang:   "en",
			err:    &model.RunError{Kind: model.FailureTimeout},
			expMsg: "`sort` ran for too long, check your input",
		},

		"Not found should name the program": {
			lang:   "pl",
			err:    &model.RunError{Kind: model.FailureNotFound},
			expMsg: "Nie znaleziono ` sort `",
		},

		"No output should name the program": {
			lang:   "pl",
			err:    &model.RunError{Kind: model.FailureNoOutput},
			expMsg: "`sort` nic nie wypisał, sprawdź poprawność wejścia",
		},

		"Crash should name the program": {
			lang:   "en",
			err:    fmt.Errorf("wrapped: %w", &model.RunError{Kind: model.FailureCrash}),
			expMsg: "`sort` crashed, check your input",
		},

		"Other should show its message": {
			lang:   "en",
			err:    &model.RunError{Kind: model.FailureOther, Message: "cannot write tmp file", Err: errors.New("disk full")},
			expMsg: "Something went wrong with `sort`: cannot write tmp file",
		},

		"Unknown errors should be rendered as other": {
			lang:   "en",
			err:    errors.New("boom"),
			expMsg: "Something went wrong with `sort`: boom",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := locale.New(test.lang)
			require.NoError(t, err)

			assert.Equal(t, test.expMsg, c.RunMessage("sort", test.err))
		})
	}
}

func TestCatalogFence(t *testing.T) {
	c, err := locale.New("pl")
	require.NoError(t, err)

	assert.Equal(t, "```\n1 2 3\n```", c.Fence("1 2 3\n"))
	assert.Equal(t, "```\n1 2 3\n```", c.Fence("1 2 3"))
}

func TestCatalogProtips(t *testing.T) {
	c, err := locale.New("en")
	require.NoError(t, err)

	assert.Equal(t, "Added protip to `zad1`: use uint64", c.ProtipAdded(model.Protip{Task: "zad1", Content: "use uint64"}))
	assert.Equal(t, "Removed protip 3", c.ProtipRemoved(3))
	assert.Equal(t, "There are no protips", c.Tasks(nil))
	assert.Equal(t, "Tasks with protips:\n\t`zad1`\n\t`zad2`\n", c.Tasks([]string{"zad1", "zad2"}))
	assert.Equal(t, "There are no protips for `zad1`", c.Protips("zad1", nil))
	assert.Equal(t, "Protips for `zad1`:\n\t1. use uint64\n\t4. mind the overflow\n", c.Protips("zad1", []model.Protip{
		{ID: 1, Task: "zad1", Content: "use uint64"},
		{ID: 4, Task: "zad1", Content: "mind the overflow"},
	}))
}
