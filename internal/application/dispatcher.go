package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"jarvis/internal/domain"
)

const (
	msgFarewell     = "Goodbye!"
	msgGreeting     = "Hello! How can I help you?"
	msgContinuation = "Would you like to ask me something else?"
)

var (
	exitWords     = []string{"exit", "quit", "stop", "goodbye", "bye"}
	greetingWords = []string{"hello", "hi jarvis", "hey jarvis", "wake up jarvis"}
	questionWords = []string{"who", "what", "when", "where", "why", "how", "tell me"}
)

// Classify picks the intent for an utterance. Rules are checked in a fixed
// order and the first match wins.
func Classify(utterance string) domain.Intent {
	q := utterance
	intent := func(kind domain.IntentKind, arg string) domain.Intent {
		return domain.Intent{Kind: kind, Argument: arg, RawText: q}
	}

	switch {
	case q == "":
		return intent(domain.IntentNone, "")
	case containsAny(q, exitWords):
		return intent(domain.IntentExit, "")
	case containsAny(q, greetingWords):
		return intent(domain.IntentGreeting, "")
	case strings.Contains(q, "time"):
		return intent(domain.IntentTime, "")
	case strings.Contains(q, "date"):
		return intent(domain.IntentDate, "")
	case strings.HasPrefix(q, "open "):
		target := strings.TrimPrefix(q, "open ")
		if IsKnownSite(target) {
			return intent(domain.IntentOpenSite, target)
		}
		return intent(domain.IntentOpenApp, target)
	case strings.HasPrefix(q, "search for "):
		return intent(domain.IntentSearch, strings.TrimPrefix(q, "search for "))
	case strings.Contains(q, "wikipedia") || hasAnyPrefix(q, questionPrefixes):
		return intent(domain.IntentKnowledge, q)
	case hasAnyPrefix(q, questionWords):
		return intent(domain.IntentKnowledge, q)
	default:
		return intent(domain.IntentFallbackSearch, q)
	}
}

type Dispatcher struct {
	speaker   Speaker
	commands  *Commands
	knowledge *Knowledge
	sentences int
	logger    *slog.Logger
}

func NewDispatcher(speaker Speaker, commands *Commands, knowledge *Knowledge, sentences int, logger *slog.Logger) *Dispatcher {
	if sentences <= 0 {
		sentences = 2
	}
	return &Dispatcher{
		speaker:   speaker,
		commands:  commands,
		knowledge: knowledge,
		sentences: sentences,
		logger:    logger,
	}
}

// Handle classifies and acts on one utterance. It returns false when the
// conversation should end.
func (d *Dispatcher) Handle(ctx context.Context, utterance string) bool {
	intent := Classify(utterance)
	if intent.Kind != domain.IntentNone {
		d.logger.Info("dispatching",
			"turn", uuid.NewString(),
			"intent", intent.Kind,
			"argument", intent.Argument,
			"utterance", intent.RawText,
		)
	}
	return d.Dispatch(ctx, intent)
}

func (d *Dispatcher) Dispatch(ctx context.Context, intent domain.Intent) bool {
	switch intent.Kind {
	case domain.IntentNone:
	case domain.IntentExit:
		d.speaker.Say(ctx, msgFarewell)
	case domain.IntentGreeting:
		d.speaker.Say(ctx, msgGreeting)
	case domain.IntentTime:
		d.commands.SayTime(ctx)
	case domain.IntentDate:
		d.commands.SayDate(ctx)
	case domain.IntentOpenSite:
		d.commands.OpenSite(ctx, intent.Argument)
	case domain.IntentOpenApp:
		d.commands.OpenApp(ctx, intent.Argument)
	case domain.IntentKnowledge:
		d.knowledge.Answer(ctx, intent.Argument, d.sentences)
	case domain.IntentSearch, domain.IntentFallbackSearch:
		d.commands.Search(ctx, intent.Argument)
	default:
		d.logger.Warn("unhandled intent", "kind", intent.Kind)
	}

	if intent.Prompts() {
		d.speaker.Say(ctx, msgContinuation)
	}
	return !intent.Terminal()
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
