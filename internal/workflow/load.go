package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/cadencehq/cadence/internal/conversations"
	"github.com/cadencehq/cadence/internal/prospects"
)

// LoadNode returns a state node that loads the conversation, its
// prospect, and its transcript, and stores a formatted transcript in
// the workflow state bag. Empty conversations fail the workflow here,
// before any model call is spent.
func LoadNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		conversationID, err := extractConversationID(s)
		if err != nil {
			return s, fmt.Errorf("load: %w", err)
		}

		conv, err := rt.Conversations.Find(ctx, conversationID)
		if err != nil {
			return s, fmt.Errorf("load: %w: %w", ErrConversationNotFound, err)
		}

		msgs, err := rt.Conversations.Messages(ctx, conversationID)
		if err != nil {
			return s, fmt.Errorf("load: query transcript: %w", err)
		}

		if len(msgs) == 0 {
			return s, fmt.Errorf("load: %w", ErrEmptyTranscript)
		}

		prospect, err := rt.Prospects.Find(ctx, conv.ProspectID)
		if err != nil {
			return s, fmt.Errorf("load: find prospect: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "load node complete",
			"conversation_id", conversationID,
			"messages", len(msgs),
		)

		s = s.Set(KeyProspect, *prospect)
		s = s.Set(KeyTranscript, formatTranscript(prospect, conv, msgs, time.Now().UTC()))

		return s, nil
	})
}

func extractConversationID(s state.State) (uuid.UUID, error) {
	val, ok := s.Get(KeyConversationID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: missing %s in state", ErrConversationNotFound, KeyConversationID)
	}

	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s is not uuid.UUID", ErrConversationNotFound, KeyConversationID)
	}

	return id, nil
}

// formatTranscript renders the conversation as model-readable text:
// a profile header, temporal context, then the ordered exchange.
func formatTranscript(
	prospect *prospects.Prospect,
	conv *conversations.Conversation,
	msgs []conversations.Message,
	now time.Time,
) string {
	var sb strings.Builder

	sb.WriteString("Prospect profile:\n")
	fmt.Fprintf(&sb, "- Name: %s\n", prospect.Name)
	fmt.Fprintf(&sb, "- Role: %s\n", prospect.JobTitle)
	fmt.Fprintf(&sb, "- Company: %s\n", prospect.Company)
	if prospect.Sector != "" {
		fmt.Fprintf(&sb, "- Sector: %s\n", prospect.Sector)
	}

	days := int(now.Sub(conv.LastMessageAt).Hours() / 24)
	by := "us"
	if conv.LastMessageBy == conversations.SenderOther {
		by = "the prospect"
	}
	fmt.Fprintf(&sb, "\nLast message was sent %d day(s) ago by %s.\n", days, by)

	sb.WriteString("\nConversation:\n")
	for _, m := range msgs {
		label := "Me"
		if m.Sender == conversations.SenderOther {
			label = "Prospect"
		}
		fmt.Fprintf(&sb, "[%s] %s: %s\n", m.SentAt.Format("2006-01-02 15:04"), label, m.Content)
	}

	return sb.String()
}
