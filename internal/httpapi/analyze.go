package httpapi

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/mediascribe/internal/media"
	"github.com/nguyentantai21042004/mediascribe/internal/models"
	"github.com/nguyentantai21042004/mediascribe/internal/processor"
	"github.com/nguyentantai21042004/mediascribe/pkg/response"
)

// AnalyzeResponse is the data of POST /api/analyze. ArchiveError is set
// when the analysis succeeded but saving it did not.
type AnalyzeResponse struct {
	Outcome      string                `json:"outcome"`
	Degraded     bool                  `json:"degraded"`
	Result       models.AnalysisResult `json:"result"`
	Record       *models.ArchiveRecord `json:"record,omitempty"`
	PreviewURL   string                `json:"previewUrl,omitempty"`
	ArchiveError string                `json:"archiveError,omitempty"`
}

// analyze handles POST /api/analyze with a multipart "file" or a "url" form
// field.
func (s *Server) analyze(c *gin.Context) {
	ctx := c.Request.Context()

	d, err := s.readMedia(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	save := true
	if v := c.PostForm("save"); v != "" {
		if save, err = strconv.ParseBool(v); err != nil {
			response.BadRequest(c, "save must be true or false")
			return
		}
	}

	resp, err := s.processor.TryAnalyze(ctx, processor.Request{
		Media:    d,
		Language: c.PostForm("language"),
		Title:    c.PostForm("title"),
		FolderID: c.PostForm("folderId"),
		Save:     save,
	})
	out := AnalyzeResponse{
		Outcome:    resp.Outcome.Kind.String(),
		Degraded:   resp.Outcome.Degraded(),
		Result:     resp.Outcome.Result,
		Record:     resp.Record,
		PreviewURL: d.PreviewURL,
	}
	switch {
	case errors.Is(err, processor.ErrNotArchived):
		s.logger.Warn(ctx, "Analysis of %s not archived: %v", d.Name, err)
		out.ArchiveError = "archive storage is unavailable"
	case err != nil:
		s.fail(c, err)
		return
	}
	response.OK(c, out)
}

func (s *Server) readMedia(c *gin.Context) (media.Descriptor, error) {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return media.Descriptor{}, err
		}
		defer f.Close()
		return s.intake.FromUpload(fh.Filename, fh.Header.Get("Content-Type"), f)
	}
	if u := c.PostForm("url"); u != "" {
		return s.intake.FromURL(c.Request.Context(), u)
	}
	return media.Descriptor{}, &media.ValidationError{
		Reason: media.ErrUnsupportedSource,
		Detail: "send a multipart \"file\" or a \"url\" field",
	}
}
