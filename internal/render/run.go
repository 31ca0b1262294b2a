package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Run invokes the configured external renderer with the program artifact
// and subtitle track as trailing arguments. The renderer's own output
// streams through; its errors pass back untouched apart from context.
func Run(ctx context.Context, command, programPath, srtPath string) error {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return fmt.Errorf("no render command configured")
	}

	args := append(parts[1:], programPath, srtPath)
	logrus.WithField("command", parts[0]).Debugf("rendering %s", programPath)

	cmd := exec.CommandContext(ctx, parts[0], args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("renderer failed: %w", err)
	}
	return nil
}
