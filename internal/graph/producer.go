package graph

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/sourceplane/flowforge/internal/logger"
)

// CommandProducer returns a producer that shells out and uses the command's
// stdout as the artifact content. The call blocks until the command exits;
// stderr is captured and reported on failure.
func CommandProducer(workDir, script string) Producer {
	return func() ([]byte, error) {
		cmd := exec.Command("sh", "-c", script)
		cmd.Dir = workDir

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		logger.Log.Debugw("running producer command", "script", script, "dir", workDir)
		if err := cmd.Run(); err != nil {
			if stderr.Len() > 0 {
				return nil, fmt.Errorf("command failed: %w\n%s", err, stderr.String())
			}
			return nil, fmt.Errorf("command failed: %w", err)
		}
		return stdout.Bytes(), nil
	}
}
