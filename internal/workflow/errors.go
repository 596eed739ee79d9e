// Package workflow implements the conversation analysis workflow for
// Cadence. It provides foundational types, prompt composition, and
// response parsing used by the state graph
// (load → analyze → draft? → finalize).
package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyTranscript      = errors.New("conversation has no messages")
	ErrAnalyzeFailed        = errors.New("analysis failed")
	ErrDraftFailed          = errors.New("draft generation failed")
)
