package whisper

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/xpanvictor/vidquiz/pkg/Logger"
	"github.com/xpanvictor/vidquiz/pkg/io/tailring"
)

// stderrTail is how much of whisper's stderr is kept for error reports.
const stderrTail = 4096

// CLI runs the openai-whisper command line tool as a subprocess, writing
// JSON output into a scratch directory.
type CLI struct {
	// Timeout bounds a single run when positive.
	Timeout time.Duration

	binary   string
	model    string
	language string
	tmpDir   string
	logger   *Logger.Logger
}

func NewCLI(binary, model, language, tmpDir string, logger *Logger.Logger) *CLI {
	if binary == "" {
		binary = "whisper"
	}
	return &CLI{
		binary:   binary,
		model:    model,
		language: language,
		tmpDir:   tmpDir,
		logger:   logger,
	}
}

func (c *CLI) Name() string { return "whisper-cli" }

func (c *CLI) args(mediaPath, outDir string) []string {
	args := []string{mediaPath, "--output_format", "json", "--output_dir", outDir}
	if c.model != "" {
		args = append(args, "--model", c.model)
	}
	if c.language != "" {
		args = append(args, "--language", c.language)
	}
	return args
}

// Transcribe implements stt.Transcriber. The process is killed when ctx
// ends or Timeout passes.
func (c *CLI) Transcribe(ctx context.Context, mediaPath string) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	outDir, err := os.MkdirTemp(c.tmpDir, "whisper-")
	if err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	cmd := exec.CommandContext(ctx, c.binary, c.args(mediaPath, outDir)...)
	stderr := tailring.New(stderrTail)
	cmd.Stderr = stderr

	c.logger.Infof("running %s on %s", c.binary, mediaPath)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("whisper killed: %w", ctx.Err())
		}
		return nil, fmt.Errorf("whisper failed: %w: %s", err, stderr.String())
	}

	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	out, err := os.ReadFile(filepath.Join(outDir, base+".json"))
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}
	return out, nil
}
