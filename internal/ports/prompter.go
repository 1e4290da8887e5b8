package ports

import "context"

// Choice is the user's answer to the upgrade prompt.
type Choice int

const (
	// ChoiceKeepReminding declines deactivation; the prompt reappears on the
	// next startup pass. Nothing is persisted about the decline.
	ChoiceKeepReminding Choice = iota
	// ChoiceUnsubscribe asks the gate to deactivate the channel now.
	ChoiceUnsubscribe
)

// Message selects one of the fixed terminal texts. Rendering belongs entirely
// to the implementation; the gate only picks which message applies.
type Message int

const (
	// MessageReviewChanges: the channel was deactivated and persisted, but the
	// reviewer tool could not be launched; the user should run it themselves.
	MessageReviewChanges Message = iota
	// MessageManualPersist: the flag was flipped but the catalog could not be
	// written (read-only medium); manual steps are needed before review.
	MessageManualPersist
	// MessageManualUnsubscribe: automatic deactivation failed outright; full
	// manual unsubscription instructions.
	MessageManualUnsubscribe
)

// Prompter presents the upgrade warning and the terminal hand-off messages.
type Prompter interface {
	// Interactive reports whether a user is present to prompt. On a headless
	// host the gate skips prompting entirely.
	Interactive() bool

	// PromptUpgrade shows the two-way choice between unsubscribing and being
	// reminded again. An error is treated as ChoiceKeepReminding.
	PromptUpgrade(ctx context.Context, current, required int) (Choice, error)

	// Inform shows a terminal message. detail carries the causing condition
	// for failure messages and may be empty.
	Inform(ctx context.Context, msg Message, detail string)
}
