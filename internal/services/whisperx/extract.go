package whisperx

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ExtractFullAudio extracts one audio stream from a source file.
// The output is a mono 16kHz 16-bit WAV file suitable for WhisperX.
func ExtractFullAudio(ctx context.Context, ffmpegBinary, source string, audioIndex int, dest string) error {
	args, err := buildFFmpegExtractArgs(source, audioIndex, dest)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg extract: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func buildFFmpegExtractArgs(source string, audioIndex int, dest string) ([]string, error) {
	if audioIndex < 0 {
		return nil, fmt.Errorf("extract audio: invalid audio stream index %d", audioIndex)
	}
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-map", fmt.Sprintf("0:%d", audioIndex),
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}, nil
}
