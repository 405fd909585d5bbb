package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janosik-bot/janosik/internal/model"
	"github.com/janosik-bot/janosik/internal/utils/env"
)

func TestParseSpecs(t *testing.T) {
	t.Setenv("FROM_HOST", "host-value")

	tests := map[string]struct {
		specs  []string
		expEnv map[string]string
		expErr bool
	}{
		"KEY=VALUE should parse": {
			specs:  []string{"LANG=C"},
			expEnv: map[string]string{"LANG": "C"},
		},
		"Values may contain equal signs": {
			specs:  []string{"OPTS=a=b"},
			expEnv: map[string]string{"OPTS": "a=b"},
		},
		"KEY should inherit from host": {
			specs:  []string{"FROM_HOST"},
			expEnv: map[string]string{"FROM_HOST": "host-value"},
		},
		"Later entries should override earlier ones": {
			specs:  []string{"FOO=one", "FOO=two"},
			expEnv: map[string]string{"FOO": "two"},
		},
		"Missing inherited var should fail": {
			specs:  []string{"DOES_NOT_EXIST_JANOSIK"},
			expErr: true,
		},
		"Invalid key should fail": {
			specs:  []string{"1INVALID=value"},
			expErr: true,
		},
		"Empty spec should fail": {
			specs:  []string{""},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := env.ParseSpecs(test.specs)

			if test.expErr {
				assert.ErrorIs(t, err, model.ErrNotValid)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expEnv, got)
		})
	}
}

func TestMerge(t *testing.T) {
	assert.Nil(t, env.Merge(nil, nil))
	assert.Equal(t, map[string]string{}, env.Merge(map[string]string{}, nil))
	assert.Equal(t,
		map[string]string{"A": "1", "B": "3", "C": "4"},
		env.Merge(map[string]string{"A": "1", "B": "2"}, map[string]string{"B": "3", "C": "4"}),
	)
}

func TestEnviron(t *testing.T) {
	assert.Equal(t, []string{}, env.Environ(nil))
	assert.Equal(t, []string{"A=1", "PATH=/bin"}, env.Environ(map[string]string{"PATH": "/bin", "A": "1"}))
}
