//go:build unix

package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/janosik-bot/janosik/internal/log"
	"github.com/janosik-bot/janosik/internal/model"
)

// installProgram writes an executable shell script into binDir.
func installProgram(t *testing.T, binDir, name, script string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(binDir, name), []byte("#!/bin/sh\n"+script+"\n"), 0o755)
	require.NoError(t, err)
}

type testEnv struct {
	binDir     string
	stagingDir string
	workDir    string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	env := testEnv{
		binDir:     t.TempDir(),
		stagingDir: t.TempDir(),
		workDir:    t.TempDir(),
	}

	installProgram(t, env.binDir, "cat", "exec cat")
	installProgram(t, env.binDir, "silent", "cat > /dev/null\nexit 0")
	installProgram(t, env.binDir, "crash", "echo partial output\nexit 3")
	installProgram(t, env.binDir, "crash_silent", "exit 1")
	installProgram(t, env.binDir, "suicide", "kill -9 $$")
	installProgram(t, env.binDir, "upper", "tr 'a-z' 'A-Z'")
	installProgram(t, env.binDir, "both", "cat\necho oops >&2")
	installProgram(t, env.binDir, "showenv", `echo "${JANOSIK_TEST_VAR:-unset} ${HOME:-nohome}"`)
	installProgram(t, env.binDir, "big", "cat > /dev/null\ndd if=/dev/zero bs=200 count=1 2>/dev/null")
	installProgram(t, env.binDir, "huge", "cat > /dev/null\nhead -c 3145728 /dev/zero")
	installProgram(t, env.binDir, "marker", fmt.Sprintf("touch %s\ncat", filepath.Join(env.workDir, "spawned")))
	installProgram(t, env.binDir, "background", fmt.Sprintf("cat > /dev/null\nsleep 30 &\necho $! > %s\necho hi", filepath.Join(env.workDir, "background.pid")))
	installProgram(t, env.binDir, "detached", fmt.Sprintf("cat > /dev/null\nsleep 30 > /dev/null 2>&1 &\necho $! > %s\necho hi", filepath.Join(env.workDir, "detached.pid")))
	installProgram(t, env.binDir, "sleep_forever", fmt.Sprintf("echo $$ > %s\nexec sleep 60", filepath.Join(env.workDir, "pid")))

	// Present but not executable.
	err := os.WriteFile(filepath.Join(env.binDir, "noexec"), []byte("#!/bin/sh\nexec cat\n"), 0o644)
	require.NoError(t, err)

	return env
}

func newTestRunner(t *testing.T, env testEnv, mod func(cfg *RunnerConfig)) *Runner {
	t.Helper()
	cfg := RunnerConfig{
		BinDir:     env.binDir,
		StagingDir: env.stagingDir,
		Timeout:    10 * time.Second,
		WaitDelay:  500 * time.Millisecond,
		Logger:     log.Noop,
	}
	if mod != nil {
		mod(&cfg)
	}
	r, err := NewRunner(cfg)
	require.NoError(t, err)
	return r
}

// readPID reads a pid file written by a test program.
func readPID(t *testing.T, path string) int {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	require.NoError(t, err)
	return pid
}

// processGone is true when pid is not running anymore. Killed orphans can stay
// as zombies until init reaps them, those count as gone.
func processGone(pid int) bool {
	if errors.Is(unix.Kill(pid, 0), unix.ESRCH) {
		return true
	}
	stat, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return false
	}
	_, state, ok := strings.Cut(string(stat), ") ")
	return ok && strings.HasPrefix(state, "Z")
}

func assertStagingEmpty(t *testing.T, env testEnv) {
	t.Helper()
	entries, err := os.ReadDir(env.stagingDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "staged input files should be removed")
}

func TestNewRunner(t *testing.T) {
	tests := map[string]struct {
		cfg    RunnerConfig
		expErr bool
	}{
		"Valid configuration should create the runner": {
			cfg: RunnerConfig{BinDir: "bin"},
		},

		"Missing bin dir should fail": {
			cfg:    RunnerConfig{},
			expErr: true,
		},

		"Negative timeout should fail": {
			cfg:    RunnerConfig{BinDir: "bin", Timeout: -time.Second},
			expErr: true,
		},

		"Invalid allowlist should fail": {
			cfg:    RunnerConfig{BinDir: "bin", Programs: []string{"../sh"}},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			r, err := NewRunner(test.cfg)

			if test.expErr {
				assert.Error(err)
				assert.Nil(r)
			} else {
				assert.NoError(err)
				assert.NotNil(r)
				assert.Equal(model.DefaultTimeout, r.timeout)
				assert.True(filepath.IsAbs(r.binDir))
			}
		})
	}
}

func TestRunnerRun(t *testing.T) {
	tests := map[string]struct {
		cfg       func(cfg *RunnerConfig)
		req       model.RunRequest
		expOutput string
		expErr    error
	}{
		"Echo program should return its input": {
			req:       model.RunRequest{Program: "cat", Input: "hello"},
			expOutput: "hello",
		},

		"Output should be returned verbatim": {
			req:       model.RunRequest{Program: "cat", Input: "  line 1\n\tline 2\n\n"},
			expOutput: "  line 1\n\tline 2\n\n",
		},

		"Program transforming the input should return the transformed output": {
			req:       model.RunRequest{Program: "upper", Input: "janosik"},
			expOutput: "JANOSIK",
		},

		"Empty input should fail with no input": {
			req:    model.RunRequest{Program: "cat", Input: ""},
			expErr: model.ErrNoInput,
		},

		"Missing program should fail with not found": {
			req:    model.RunRequest{Program: "missing_prog", Input: "x"},
			expErr: model.ErrProgramNotFound,
		},

		"Not executable program should fail with not found": {
			req:    model.RunRequest{Program: "noexec", Input: "x"},
			expErr: model.ErrProgramNotFound,
		},

		"Path traversal should fail with not found": {
			req:    model.RunRequest{Program: "../cat", Input: "x"},
			expErr: model.ErrProgramNotFound,
		},

		"Program outside the allowlist should fail with not found": {
			cfg:    func(cfg *RunnerConfig) { cfg.Programs = []string{"upper"} },
			req:    model.RunRequest{Program: "cat", Input: "x"},
			expErr: model.ErrProgramNotFound,
		},

		"Program in the allowlist should run": {
			cfg:       func(cfg *RunnerConfig) { cfg.Programs = []string{"cat"} },
			req:       model.RunRequest{Program: "cat", Input: "x"},
			expOutput: "x",
		},

		"Program without output should fail with no output": {
			req:    model.RunRequest{Program: "silent", Input: "x"},
			expErr: model.ErrNoOutput,
		},

		"Program exiting with non zero should crash even with output": {
			req:    model.RunRequest{Program: "crash", Input: "x"},
			expErr: model.ErrCrash,
		},

		"Program exiting with non zero without output should crash": {
			req:    model.RunRequest{Program: "crash_silent", Input: "x"},
			expErr: model.ErrCrash,
		},

		"Program killed by a signal should crash": {
			req:    model.RunRequest{Program: "suicide", Input: "x"},
			expErr: model.ErrCrash,
		},

		"Standard error should not be part of the output": {
			req:       model.RunRequest{Program: "both", Input: "out"},
			expOutput: "out",
		},

		"Missing staging dir should fail with other": {
			cfg:    func(cfg *RunnerConfig) { cfg.StagingDir = "/nonexistent/janosik/staging" },
			req:    model.RunRequest{Program: "cat", Input: "x"},
			expErr: model.ErrOther,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			env := newTestEnv(t)
			r := newTestRunner(t, env, test.cfg)

			res, err := r.Run(context.TODO(), test.req)

			if test.expErr != nil {
				require.Error(err)
				assert.ErrorIs(err, test.expErr)
				var runErr *model.RunError
				require.ErrorAs(err, &runErr)
				assert.Equal(test.req.Program, runErr.Program)
				assert.Nil(res)
			} else if assert.NoError(err) {
				assert.Equal(test.expOutput, res.Output)
				assert.Equal(test.req.Program, res.Program)
				assert.NotEmpty(res.RunID)
			}

			assertStagingEmpty(t, env)
		})
	}
}

func TestRunnerRunNoInputHasNoSideEffects(t *testing.T) {
	assert := assert.New(t)

	env := newTestEnv(t)
	r := newTestRunner(t, env, nil)

	_, err := r.Run(context.TODO(), model.RunRequest{Program: "marker", Input: ""})
	assert.ErrorIs(err, model.ErrNoInput)

	assertStagingEmpty(t, env)
	_, statErr := os.Stat(filepath.Join(env.workDir, "spawned"))
	assert.True(errors.Is(statErr, os.ErrNotExist), "program should not be spawned")

	// Same program with input does spawn.
	_, err = r.Run(context.TODO(), model.RunRequest{Program: "marker", Input: "x"})
	assert.NoError(err)
	_, statErr = os.Stat(filepath.Join(env.workDir, "spawned"))
	assert.NoError(statErr)
}

func TestRunnerRunTimeout(t *testing.T) {
	defer goleak.VerifyNone(t)

	assert := assert.New(t)
	require := require.New(t)

	env := newTestEnv(t)
	r := newTestRunner(t, env, func(cfg *RunnerConfig) { cfg.Timeout = time.Second })

	start := time.Now()
	_, err := r.Run(context.TODO(), model.RunRequest{Program: "sleep_forever", Input: "x"})
	elapsed := time.Since(start)

	assert.ErrorIs(err, model.ErrTimeout)
	assert.GreaterOrEqual(elapsed, time.Second)
	assert.Less(elapsed, 5*time.Second)

	// The program must not outlive the run.
	rawPID, err := os.ReadFile(filepath.Join(env.workDir, "pid"))
	require.NoError(err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(rawPID)))
	require.NoError(err)
	assert.ErrorIs(unix.Kill(pid, 0), unix.ESRCH)

	assertStagingEmpty(t, env)
}

func TestRunnerRunKillsBackgroundChildren(t *testing.T) {
	tests := map[string]struct {
		program   string
		pidFile   string
		expOutput string
		expErr    error
	}{
		"A child holding the output should fail the run and be killed.": {
			program: "background",
			pidFile: "background.pid",
			expErr:  model.ErrOther,
		},

		"A detached child should not fail the run but be killed.": {
			program:   "detached",
			pidFile:   "detached.pid",
			expOutput: "hi\n",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			r := newTestRunner(t, env, nil)

			res, err := r.Run(context.TODO(), model.RunRequest{Program: test.program, Input: "x"})

			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
			} else if assert.NoError(t, err) {
				assert.Equal(t, test.expOutput, res.Output)
			}

			pid := readPID(t, filepath.Join(env.workDir, test.pidFile))
			assert.Eventually(t, func() bool { return processGone(pid) }, 2*time.Second, 20*time.Millisecond)
			assertStagingEmpty(t, env)
		})
	}
}

func TestRunnerRunKillFailure(t *testing.T) {
	assert := assert.New(t)

	env := newTestEnv(t)
	r := newTestRunner(t, env, func(cfg *RunnerConfig) { cfg.Timeout = 200 * time.Millisecond })
	r.kill = func(cmd *exec.Cmd) error {
		// Don't leave the program behind, but report the kill as failed.
		_ = killProcess(cmd)
		return errors.New("operation not permitted")
	}

	_, err := r.Run(context.TODO(), model.RunRequest{Program: "sleep_forever", Input: "x"})

	assert.ErrorIs(err, model.ErrOther)
	assert.NotErrorIs(err, model.ErrTimeout)
}

func TestRunnerRunCancelled(t *testing.T) {
	assert := assert.New(t)

	env := newTestEnv(t)
	r := newTestRunner(t, env, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := r.Run(ctx, model.RunRequest{Program: "sleep_forever", Input: "x"})

	assert.ErrorIs(err, model.ErrOther)
	assert.ErrorIs(err, context.DeadlineExceeded)
	assertStagingEmpty(t, env)
}

func TestRunnerRunOutputLimit(t *testing.T) {
	tests := map[string]struct {
		maxOutput int
		program   string
		expLen    int
		expErr    error
	}{
		"Without a limit a big output should be returned whole.": {
			program: "huge",
			expLen:  3 << 20,
		},

		"An output under the limit should be returned whole.": {
			maxOutput: 1000,
			program:   "big",
			expLen:    200,
		},

		"An output exactly at the limit should be returned whole.": {
			maxOutput: 200,
			program:   "big",
			expLen:    200,
		},

		"An output over the limit should fail.": {
			maxOutput: 100,
			program:   "big",
			expErr:    model.ErrOther,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			r := newTestRunner(t, env, func(cfg *RunnerConfig) { cfg.MaxOutputBytes = test.maxOutput })

			res, err := r.Run(context.TODO(), model.RunRequest{Program: test.program, Input: "x"})

			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
				assert.ErrorContains(t, err, "output too large")
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			assert.Len(t, res.Output, test.expLen)
		})
	}
}

func TestRunnerRunMultibyteOutputIsExact(t *testing.T) {
	env := newTestEnv(t)
	r := newTestRunner(t, env, nil)

	// Several MiB of 2 and 3 byte runes.
	exp := strings.Repeat("żółć€", 400000)
	res, err := r.Run(context.TODO(), model.RunRequest{Program: "cat", Input: exp})

	require.NoError(t, err)
	assert.Equal(t, exp, res.Output)
}

func TestRunnerRunCaptureStderr(t *testing.T) {
	assert := assert.New(t)

	env := newTestEnv(t)
	r := newTestRunner(t, env, func(cfg *RunnerConfig) { cfg.CaptureStderr = true })

	res, err := r.Run(context.TODO(), model.RunRequest{Program: "both", Input: "out"})

	if assert.NoError(err) {
		assert.Equal("out", res.Output)
		assert.Equal("oops\n", res.Stderr)
	}
}

func TestRunnerRunEnv(t *testing.T) {
	t.Setenv("JANOSIK_TEST_VAR", "inherited")
	t.Setenv("HOME", "/home/janosik")

	tests := map[string]struct {
		env       map[string]string
		expOutput string
	}{
		"Without an environment the programs should inherit the current one.": {
			env:       nil,
			expOutput: "inherited /home/janosik\n",
		},

		"With an environment the programs should only see it.": {
			env:       map[string]string{"JANOSIK_TEST_VAR": "set"},
			expOutput: "set nohome\n",
		},

		"With an empty environment the programs should see nothing.": {
			env:       map[string]string{},
			expOutput: "unset nohome\n",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			r := newTestRunner(t, env, func(cfg *RunnerConfig) { cfg.Env = test.env })

			res, err := r.Run(context.TODO(), model.RunRequest{Program: "showenv", Input: "x"})
			require.NoError(t, err)
			assert.Equal(t, test.expOutput, res.Output)
		})
	}
}

func TestRunnerRunIsRepeatable(t *testing.T) {
	assert := assert.New(t)

	env := newTestEnv(t)
	r := newTestRunner(t, env, nil)

	req := model.RunRequest{Program: "upper", Input: "abc"}
	res1, err1 := r.Run(context.TODO(), req)
	res2, err2 := r.Run(context.TODO(), req)

	assert.NoError(err1)
	assert.NoError(err2)
	assert.Equal(res1.Output, res2.Output)
	assert.NotEqual(res1.RunID, res2.RunID)
}

func TestRunnerRunConcurrentInputsAreIsolated(t *testing.T) {
	defer goleak.VerifyNone(t)

	env := newTestEnv(t)
	r := newTestRunner(t, env, nil)

	const runs = 32
	outputs := make([]string, runs)

	var g errgroup.Group
	for i := range runs {
		g.Go(func() error {
			res, err := r.Run(context.TODO(), model.RunRequest{
				Program: "cat",
				Input:   fmt.Sprintf("input-%d-%s", i, strings.Repeat("x", i*100)),
			})
			if err != nil {
				return err
			}
			outputs[i] = res.Output
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i, out := range outputs {
		assert.Equal(t, fmt.Sprintf("input-%d-%s", i, strings.Repeat("x", i*100)), out)
	}
	assertStagingEmpty(t, env)
}
