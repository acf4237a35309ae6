package media

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/mediascribe/internal/config"
	"github.com/nguyentantai21042004/mediascribe/internal/logger"
)

type implIntake struct {
	maxSize int64
	client  *http.Client
	logger  logger.Logger
}

// New creates an Intake. A nil client gets one with the configured fetch
// timeout.
func New(cfg config.IntakeConfig, client *http.Client, log logger.Logger) Intake {
	if client == nil {
		client = &http.Client{Timeout: time.Duration(cfg.FetchTimeoutSec) * time.Second}
	}
	return &implIntake{
		maxSize: cfg.MaxSizeBytes(),
		client:  client,
		logger:  log,
	}
}
