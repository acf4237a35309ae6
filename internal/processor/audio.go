package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/mediascribe/internal/media"
)

// extractAudio replaces a video with a mono mp3 of its soundtrack, which is
// far smaller to send. Audio, or any failure, returns d unchanged.
func (p *implProcessor) extractAudio(ctx context.Context, d media.Descriptor) media.Descriptor {
	if !p.cfg.FFmpeg.ExtractAudio || !d.IsVideo() {
		return d
	}
	if !p.executor.Available(p.cfg.FFmpeg.BinaryPath) {
		p.logger.Warn(ctx, "ffmpeg not found at %q, sending video as is", p.cfg.FFmpeg.BinaryPath)
		return d
	}

	out, err := p.runFFmpeg(ctx, d)
	if err != nil {
		p.logger.Warn(ctx, "Audio extraction failed for %s, sending video as is: %v", d.Name, err)
		return d
	}
	p.logger.Info(ctx, "Extracted audio from %s: %d -> %d bytes", d.Name, d.Size, out.Size)
	return out
}

func (p *implProcessor) runFFmpeg(ctx context.Context, d media.Descriptor) (media.Descriptor, error) {
	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return d, fmt.Errorf("create temp dir: %w", err)
	}
	dir, err := os.MkdirTemp(p.cfg.Paths.Temp, "extract-*")
	if err != nil {
		return d, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(dir)

	inPath := filepath.Join(dir, "input"+filepath.Ext(d.Name))
	outPath := filepath.Join(dir, "audio.mp3")
	if err := os.WriteFile(inPath, d.Data, 0644); err != nil {
		return d, fmt.Errorf("write input: %w", err)
	}

	// -vn drops video, -ac 1 downmixes to mono.
	args := []string{
		"-i", inPath,
		"-vn",
		"-ac", "1",
		"-b:a", p.cfg.FFmpeg.AudioBitrate,
		"-y",
		outPath,
	}
	if _, err := p.executor.Execute(ctx, p.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return d, fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return d, fmt.Errorf("read extracted audio: %w", err)
	}
	if len(data) == 0 {
		return d, fmt.Errorf("ffmpeg produced no audio")
	}

	return media.Descriptor{
		Name:       strings.TrimSuffix(d.Name, filepath.Ext(d.Name)) + ".mp3",
		MIMEType:   "audio/mpeg",
		Size:       int64(len(data)),
		Data:       data,
		PreviewURL: d.PreviewURL,
	}, nil
}
