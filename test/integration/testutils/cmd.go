package testutils

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

var multiSpaceRegex = regexp.MustCompile(" +")

// RunJanosik executes a janosik command with the given arguments string (split by spaces).
// Use RunJanosikArgs when arguments contain spaces that should be preserved.
func RunJanosik(ctx context.Context, env []string, binary, cmdArgs string, stdin string, nolog bool) (stdout, stderr []byte, err error) {
	cmdArgs = strings.TrimSpace(cmdArgs)
	cmdArgs = multiSpaceRegex.ReplaceAllString(cmdArgs, " ")

	var args []string
	if cmdArgs != "" {
		args = strings.Split(cmdArgs, " ")
	}

	return RunJanosikArgs(ctx, env, binary, args, stdin, nolog)
}

// RunJanosikArgs executes a janosik command with pre-split arguments, so chat
// messages with spaces and fences reach the binary untouched.
func RunJanosikArgs(ctx context.Context, env []string, binary string, args []string, stdin string, nolog bool) (stdout, stderr []byte, err error) {
	var outData, errData bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stdout = &outData
	cmd.Stderr = &errData

	// Last duplicated key wins on exec.Cmd.
	newEnv := append([]string{}, os.Environ()...)
	newEnv = append(newEnv, env...)
	if nolog {
		newEnv = append(newEnv, "JANOSIK_NO_LOG=true")
	}
	cmd.Env = newEnv

	err = cmd.Run()

	return outData.Bytes(), errData.Bytes(), err
}
