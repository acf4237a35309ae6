package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FromFile reads a local file.
func (i *implIntake) FromFile(ctx context.Context, path string) (Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("open media file: %w", err)
	}
	defer f.Close()

	// Reject on the stat size before reading anything large into memory.
	if info, err := f.Stat(); err == nil && i.maxSize > 0 && info.Size() > i.maxSize {
		return Descriptor{}, Validate(typeFromExt(path), info.Size(), i.maxSize)
	}

	d, err := i.FromUpload(filepath.Base(path), "", f)
	if err != nil {
		return Descriptor{}, err
	}
	i.logger.Debug(ctx, "Loaded media file %s (%s, %d bytes)", path, d.MIMEType, d.Size)
	return d, nil
}

// FromUpload reads an uploaded stream. A declared mimeType is kept as given;
// an empty or generic one is resolved from content and file name.
func (i *implIntake) FromUpload(name, mimeType string, r io.Reader) (Descriptor, error) {
	data, err := i.readBounded(r)
	if err != nil {
		return Descriptor{}, err
	}

	mimeType = resolveType(mimeType, name, data)
	if err := Validate(mimeType, int64(len(data)), i.maxSize); err != nil {
		return Descriptor{}, err
	}

	return Descriptor{
		Name:     name,
		MIMEType: mimeType,
		Size:     int64(len(data)),
		Data:     data,
	}, nil
}

// readBounded reads at most maxSize+1 bytes so oversized input is detected
// without buffering all of it.
func (i *implIntake) readBounded(r io.Reader) ([]byte, error) {
	if i.maxSize <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read media: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(r, i.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read media: %w", err)
	}
	if int64(len(data)) > i.maxSize {
		return nil, &ValidationError{
			Reason: ErrTooLarge,
			Detail: fmt.Sprintf("exceeds the %dMB limit", i.maxSize/1024/1024),
		}
	}
	return data, nil
}

func resolveType(declared, name string, data []byte) string {
	if t := baseType(declared); t != "" && t != "application/octet-stream" {
		return declared
	}
	if t := typeFromExt(name); t != "" {
		return t
	}
	return baseType(mimetype.Detect(data).String())
}

// extensionTypes covers media extensions the platform MIME table may lack.
var extensionTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".mpeg": "video/mpeg",
}

// IsMediaFile reports whether path has a known audio or video extension.
func IsMediaFile(path string) bool {
	_, ok := extensionTypes[strings.ToLower(filepath.Ext(path))]
	return ok
}

func typeFromExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return baseType(mime.TypeByExtension(ext))
}

// baseType drops parameters such as "; charset=utf-8".
func baseType(t string) string {
	if t == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(t)
	if err != nil {
		return strings.TrimSpace(strings.SplitN(t, ";", 2)[0])
	}
	return mt
}
