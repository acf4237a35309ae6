package httpapi

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/mediascribe/internal/export"
	"github.com/nguyentantai21042004/mediascribe/internal/models"
	"github.com/nguyentantai21042004/mediascribe/internal/transcript"
	"github.com/nguyentantai21042004/mediascribe/pkg/response"
)

type MoveRequest struct {
	FolderID string `json:"folderId" binding:"required"`
}

type SegmentRequest struct {
	Text string `json:"text"`
}

// listRecords handles GET /api/records?q=&folder=.
func (s *Server) listRecords(c *gin.Context) {
	ctx := c.Request.Context()
	q, folder := c.Query("q"), c.Query("folder")

	var (
		recs []models.ArchiveRecord
		err  error
	)
	switch {
	case q != "":
		recs, err = s.archive.Search(ctx, q)
	case folder != "":
		recs, err = s.archive.ListInFolder(ctx, folder)
	default:
		recs, err = s.archive.List(ctx)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	if q != "" && folder != "" {
		kept := []models.ArchiveRecord{}
		for _, r := range recs {
			if r.FolderID == folder {
				kept = append(kept, r)
			}
		}
		recs = kept
	}
	response.OK(c, recs)
}

func (s *Server) getRecord(c *gin.Context) {
	rec, err := s.archive.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	response.OK(c, rec)
}

// deleteRecord is idempotent: unknown ids also get 204.
func (s *Server) deleteRecord(c *gin.Context) {
	if err := s.archive.DeleteRecord(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	response.NoContent(c)
}

func (s *Server) moveRecord(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := s.archive.MoveRecord(c.Request.Context(), c.Param("id"), req.FolderID); err != nil {
		s.fail(c, err)
		return
	}
	response.NoContent(c)
}

// editSegment handles PATCH /api/records/:id/segments/:index and persists
// the edited result.
func (s *Server) editSegment(c *gin.Context) {
	ctx := c.Request.Context()
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "segment index must be a number")
		return
	}
	var req SegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	rec, err := s.archive.Get(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	editor := transcript.NewEditor(rec.Result)
	if err := editor.SetText(index, req.Text); err != nil {
		s.fail(c, err)
		return
	}
	updated, err := s.archive.UpdateResult(ctx, rec.ID, editor.Result())
	if err != nil {
		s.fail(c, err)
		return
	}
	response.OK(c, updated)
}

// exportRecord streams the record as an attachment.
func (s *Server) exportRecord(c *gin.Context) {
	ctx := c.Request.Context()
	format, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.archive.Get(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	var buf bytes.Buffer
	doc := export.FromRecord(rec)
	if err := s.exporter.Render(ctx, &buf, format, doc); err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(rec.Title, format)+`"`)
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}
