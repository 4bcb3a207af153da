// handler.go
package email

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"AirQualityEurope/src/storage"
)

// XLSXAttachmentHandler saves the spreadsheet attachments of matching mails
// into the data directory, where the file watcher picks them up. Mails are
// deduplicated by IMAP UID for the process lifetime.
type XLSXAttachmentHandler struct {
	TargetSubject string
	DataDir       string
	processedUIDs map[uint32]bool
	mu            sync.RWMutex
}

func NewXLSXAttachmentHandler(subject, dataDir string) *XLSXAttachmentHandler {
	return &XLSXAttachmentHandler{
		TargetSubject: subject,
		DataDir:       dataDir,
		processedUIDs: make(map[uint32]bool),
	}
}

func (h *XLSXAttachmentHandler) isProcessed(uid uint32) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.processedUIDs[uid]
}

func (h *XLSXAttachmentHandler) markAsProcessed(uid uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.processedUIDs[uid] = true
}

// Handle saves every .xlsx attachment of the mail. Already-processed mails
// and mails with a non-matching subject are skipped without error.
func (h *XLSXAttachmentHandler) Handle(email *Email, logger *storage.Logger) error {
	if email == nil || h.isProcessed(email.UID) {
		return nil
	}

	if !strings.Contains(email.Subject, h.TargetSubject) {
		logger.Debug("skipping mail with unrelated subject: " + email.Subject)
		return nil
	}

	logger.Info(fmt.Sprintf("processing mail %q from %s (%s)",
		email.Subject, email.From, email.Date.Format("2006-01-02 15:04:05")))

	if err := os.MkdirAll(h.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir %s: %w", h.DataDir, err)
	}

	hasXLSX := false
	for _, attachment := range email.Attachments {
		if filepath.Ext(attachment.Filename) != ".xlsx" {
			continue
		}

		filePath := filepath.Join(h.DataDir, attachment.Filename)
		if err := os.WriteFile(filePath, attachment.Content, 0644); err != nil {
			return fmt.Errorf("save attachment %s: %w", attachment.Filename, err)
		}

		logger.Info("attachment saved to " + filePath)
		hasXLSX = true
	}

	if hasXLSX {
		h.markAsProcessed(email.UID)
	}
	return nil
}
