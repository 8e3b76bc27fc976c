package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/reelvault/internal/port"
)

var (
	ErrEmptyPath   = errors.New("path is empty")
	ErrInvalidPath = errors.New("path contains invalid characters")
)

// MediaTool shells out to ffprobe/ffmpeg. Every invocation runs under the
// caller's context, so a request timeout kills the child process.
type MediaTool struct{}

func NewMediaTool() port.MediaTool {
	return &MediaTool{}
}

func validatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	return nil
}

type probeOutput struct {
	Streams []struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"streams"`
}

// Probe returns the dimensions of the first video stream of the file.
func (m *MediaTool) Probe(ctx context.Context, path string) (int, int, error) {
	if err := validatePath(path); err != nil {
		return 0, 0, err
	}

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "json",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, 0, fmt.Errorf("ffprobe: %w: %s", err, stderr.String())
	}

	var out probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return 0, 0, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(out.Streams) == 0 {
		return 0, 0, fmt.Errorf("ffprobe: no video streams in %s", path)
	}

	return out.Streams[0].Width, out.Streams[0].Height, nil
}

// FastStart copies all streams into a new mp4 with the moov atom up front.
// The output lives next to the input, suffixed with ".processed".
func (m *MediaTool) FastStart(ctx context.Context, path string) (string, error) {
	if err := validatePath(path); err != nil {
		return "", err
	}

	outPath := path + ".processed"

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", path,
		"-movflags", "faststart",
		"-map_metadata", "0",
		"-codec", "copy",
		"-f", "mp4",
		"-y",
		outPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg faststart: %w: %s", err, stderr.String())
	}

	return outPath, nil
}

var _ port.MediaTool = (*MediaTool)(nil)
