package export

import (
	"time"

	"github.com/nguyentantai21042004/mediascribe/internal/logger"
)

type implExporter struct {
	logger logger.Logger
	now    func() time.Time
}

// New creates an Exporter.
func New(log logger.Logger) Exporter {
	return &implExporter{
		logger: log,
		now:    time.Now,
	}
}
