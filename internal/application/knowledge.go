package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"jarvis/internal/domain"
)

// Encyclopedia returns short topic summaries.
// Failures are domain.ErrPageNotFound, *domain.DisambiguationError or anything else.
type Encyclopedia interface {
	Summary(ctx context.Context, topic string, opts domain.SummaryOptions) (string, error)
}

const maxListedOptions = 5

// questionPrefixes route an utterance to the knowledge lookup and are
// stripped from it before the lookup.
var questionPrefixes = []string{"who is", "what is", "tell me about", "define "}

func strippablePrefixes() []string {
	prefixes := make([]string, 0, len(questionPrefixes)+1)
	prefixes = append(prefixes, questionPrefixes...)
	return append(prefixes, "wikipedia")
}

// Topic strips the first matching question prefix from a question.
func Topic(question string) string {
	q := strings.TrimSpace(question)
	for _, prefix := range strippablePrefixes() {
		if strings.HasPrefix(q, prefix) {
			return strings.Trim(q[len(prefix):], " ?")
		}
	}
	return q
}

type Knowledge struct {
	encyclopedia Encyclopedia
	speaker      Speaker
	logger       *slog.Logger
}

func NewKnowledge(encyclopedia Encyclopedia, speaker Speaker, logger *slog.Logger) *Knowledge {
	return &Knowledge{
		encyclopedia: encyclopedia,
		speaker:      speaker,
		logger:       logger,
	}
}

// Answer speaks exactly one line for the question.
func (k *Knowledge) Answer(ctx context.Context, question string, sentences int) {
	k.speaker.Say(ctx, k.answer(ctx, question, sentences))
}

func (k *Knowledge) answer(ctx context.Context, question string, sentences int) string {
	topic := Topic(question)
	if topic == "" {
		return "Please tell me what to search on Wikipedia."
	}

	opts := domain.DefaultSummaryOptions(sentences)

	summary, err := k.encyclopedia.Summary(ctx, topic, opts)
	if err == nil {
		return summary
	}

	var ambiguous *domain.DisambiguationError
	switch {
	case errors.As(err, &ambiguous):
		k.logger.Info("topic is ambiguous", "topic", topic, "options", len(ambiguous.Options))
		return k.resolve(ctx, ambiguous, opts)
	case errors.Is(err, domain.ErrPageNotFound):
		return fmt.Sprintf("I couldn't find anything about '%s' on Wikipedia.", topic)
	default:
		k.logger.Warn("looking up topic", "topic", topic, "error", err)
		return "Sorry, I had trouble reaching Wikipedia."
	}
}

// resolve summarizes the first candidate, or lists a few when that fails too.
func (k *Knowledge) resolve(ctx context.Context, ambiguous *domain.DisambiguationError, opts domain.SummaryOptions) string {
	if len(ambiguous.Options) > 0 {
		summary, err := k.encyclopedia.Summary(ctx, ambiguous.Options[0], opts)
		if err == nil {
			return summary
		}
		k.logger.Warn("summarizing first option", "option", ambiguous.Options[0], "error", err)
	}

	listed := ambiguous.Options
	if len(listed) > maxListedOptions {
		listed = listed[:maxListedOptions]
	}
	if len(listed) == 0 {
		return "That has multiple meanings."
	}
	return fmt.Sprintf("That has multiple meanings. For example: %s.", strings.Join(listed, ", "))
}
