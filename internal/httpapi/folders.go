package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/mediascribe/pkg/response"
)

type FolderRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) listFolders(c *gin.Context) {
	folders, err := s.archive.ListFolders(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	response.OK(c, folders)
}

func (s *Server) createFolder(c *gin.Context) {
	var req FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		response.BadRequest(c, "folder name is required")
		return
	}
	f, err := s.archive.CreateFolder(c.Request.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		s.fail(c, err)
		return
	}
	response.Created(c, f)
}

// deleteFolder refuses the default folder and folders that still hold
// records.
func (s *Server) deleteFolder(c *gin.Context) {
	if err := s.archive.DeleteFolder(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	response.NoContent(c)
}
