package domain

type IntentKind string

const (
	IntentNone           IntentKind = "none"
	IntentExit           IntentKind = "exit"
	IntentGreeting       IntentKind = "greeting"
	IntentTime           IntentKind = "time"
	IntentDate           IntentKind = "date"
	IntentOpenSite       IntentKind = "open_site"
	IntentOpenApp        IntentKind = "open_app"
	IntentSearch         IntentKind = "search"
	IntentKnowledge      IntentKind = "knowledge"
	IntentFallbackSearch IntentKind = "fallback_search"
)

// TextCommandPrefix is the marker used to indicate text commands (vs audio)
const TextCommandPrefix = "__TEXT__:"

// Intent is the branch the dispatcher picked for one utterance.
// Argument carries the part of the utterance the handler works on.
type Intent struct {
	Kind     IntentKind
	Argument string
	RawText  string
}

// Terminal reports whether the intent ends the conversation.
func (i Intent) Terminal() bool {
	return i.Kind == IntentExit
}

// Prompts reports whether the continuation question follows the intent.
func (i Intent) Prompts() bool {
	return i.Kind != IntentNone && i.Kind != IntentExit
}
