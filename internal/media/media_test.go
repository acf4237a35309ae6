package media

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/mediascribe/internal/config"
	"github.com/nguyentantai21042004/mediascribe/internal/logger"
)

func newTestIntake(maxMB int) Intake {
	return New(config.IntakeConfig{MaxSizeMB: maxMB, FetchTimeoutSec: 5}, nil, logger.NewNop())
}

func TestValidate(t *testing.T) {
	const max = 10

	tests := []struct {
		name     string
		mimeType string
		size     int64
		want     error
	}{
		{"audio accepted", "audio/mpeg", 5, nil},
		{"video accepted", "video/webm", 10, nil},
		{"image rejected", "image/png", 5, ErrUnsupportedType},
		{"text rejected", "text/plain", 5, ErrUnsupportedType},
		{"empty type rejected", "", 5, ErrUnsupportedType},
		{"too large", "audio/wav", 11, ErrTooLarge},
		{"empty file", "audio/wav", 0, ErrEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mimeType, tt.size, max)
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("Validate() error type = %T, want *ValidationError", err)
			}
		})
	}
}

func TestFromUploadKeepsTypeAndSize(t *testing.T) {
	in := newTestIntake(1)

	tests := []struct {
		name     string
		mimeType string
		data     []byte
	}{
		{"mp3", "audio/mpeg", bytes.Repeat([]byte{0x01}, 1234)},
		{"webm", "video/webm", bytes.Repeat([]byte{0x02}, 4096)},
		{"unusual audio subtype", "audio/x-custom", []byte("abc")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := in.FromUpload("clip", tt.mimeType, bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("FromUpload() error = %v", err)
			}
			if d.MIMEType != tt.mimeType {
				t.Errorf("MIMEType = %v, want %v", d.MIMEType, tt.mimeType)
			}
			if d.Size != int64(len(tt.data)) {
				t.Errorf("Size = %v, want %v", d.Size, len(tt.data))
			}
			if !bytes.Equal(d.Data, tt.data) {
				t.Error("Data does not match source bytes")
			}
		})
	}
}

func TestFromUploadRejects(t *testing.T) {
	in := newTestIntake(1)

	_, err := in.FromUpload("notes.txt", "text/plain", strings.NewReader("hello"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("FromUpload(text) error = %v, want %v", err, ErrUnsupportedType)
	}

	big := bytes.Repeat([]byte{0x00}, 1024*1024+1)
	_, err = in.FromUpload("big.mp3", "audio/mpeg", bytes.NewReader(big))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("FromUpload(big) error = %v, want %v", err, ErrTooLarge)
	}
}

func TestFromUploadResolvesGenericType(t *testing.T) {
	in := newTestIntake(1)

	d, err := in.FromUpload("talk.mp3", "application/octet-stream", strings.NewReader("ID3"))
	if err != nil {
		t.Fatalf("FromUpload() error = %v", err)
	}
	if d.MIMEType != "audio/mpeg" {
		t.Errorf("MIMEType = %v, want %v", d.MIMEType, "audio/mpeg")
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meeting.wav")
	data := bytes.Repeat([]byte{0x07}, 2048)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	d, err := newTestIntake(1).FromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	if d.Name != "meeting.wav" {
		t.Errorf("Name = %v, want %v", d.Name, "meeting.wav")
	}
	if d.MIMEType != "audio/wav" {
		t.Errorf("MIMEType = %v, want %v", d.MIMEType, "audio/wav")
	}
	if d.Size != int64(len(data)) {
		t.Errorf("Size = %v, want %v", d.Size, len(data))
	}
}

func TestFromFileTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.mp4")
	if err := os.WriteFile(path, bytes.Repeat([]byte{0x01}, 1024*1024+10), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := newTestIntake(1).FromFile(context.Background(), path)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("FromFile() error = %v, want %v", err, ErrTooLarge)
	}
}

func TestFromURL(t *testing.T) {
	payload := bytes.Repeat([]byte{0x05}, 512)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files/podcast.mp3":
			w.Header().Set("Content-Type", "audio/mpeg")
			w.Write(payload)
		case "/files/image.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write(payload)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	in := New(config.IntakeConfig{MaxSizeMB: 1}, srv.Client(), logger.NewNop())
	ctx := context.Background()

	d, err := in.FromURL(ctx, srv.URL+"/files/podcast.mp3")
	if err != nil {
		t.Fatalf("FromURL() error = %v", err)
	}
	if d.Name != "podcast.mp3" {
		t.Errorf("Name = %v, want %v", d.Name, "podcast.mp3")
	}
	if d.MIMEType != "audio/mpeg" {
		t.Errorf("MIMEType = %v, want %v", d.MIMEType, "audio/mpeg")
	}
	if d.Size != int64(len(payload)) {
		t.Errorf("Size = %v, want %v", d.Size, len(payload))
	}
	if d.SourceURL != srv.URL+"/files/podcast.mp3" {
		t.Errorf("SourceURL = %v, want request URL", d.SourceURL)
	}

	if _, err := in.FromURL(ctx, srv.URL+"/files/image.png"); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("FromURL(image) error = %v, want %v", err, ErrUnsupportedType)
	}
	if _, err := in.FromURL(ctx, srv.URL+"/missing.mp3"); !errors.Is(err, ErrFetchFailed) {
		t.Errorf("FromURL(missing) error = %v, want %v", err, ErrFetchFailed)
	}
}

func TestFromURLRejectsSource(t *testing.T) {
	in := newTestIntake(1)
	ctx := context.Background()

	for _, u := range []string{
		"https://www.youtube.com/watch?v=abc",
		"https://youtu.be/abc",
		"ftp://example.com/a.mp3",
		"not a url",
	} {
		if _, err := in.FromURL(ctx, u); !errors.Is(err, ErrUnsupportedSource) {
			t.Errorf("FromURL(%q) error = %v, want %v", u, err, ErrUnsupportedSource)
		}
	}
}

func TestIsMediaFile(t *testing.T) {
	tests := map[string]bool{
		"a.mp3":       true,
		"b.MP4":       true,
		"c.mkv":       true,
		"notes.txt":   false,
		"noextension": false,
	}
	for path, want := range tests {
		if got := IsMediaFile(path); got != want {
			t.Errorf("IsMediaFile(%q) = %v, want %v", path, got, want)
		}
	}
}
