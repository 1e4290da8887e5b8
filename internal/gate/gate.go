package gate

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"vergate/internal/adapter"
	"vergate/internal/ports"
	"vergate/internal/types"
	"vergate/internal/version"
)

// State tracks the gate's progress through one startup pass.
type State int

const (
	StateUnchecked State = iota
	// StateCompliant: the runtime meets the requirement. Terminal, no action.
	StateCompliant
	// StateNonCompliant: the runtime is below the requirement.
	StateNonCompliant
	// StateSilent: already deactivated in a prior run, nothing to prompt.
	StateSilent
	// StatePrompting: the user is being shown the two choices.
	StatePrompting
	// StateReminded: the user declined (or no user was present). Nothing is
	// persisted; the prompt reappears on the next pass.
	StateReminded
	// StateUnsubscribed: deactivation was negotiated; see Result.Outcome.
	StateUnsubscribed
)

func (s State) String() string {
	switch s {
	case StateCompliant:
		return "compliant"
	case StateNonCompliant:
		return "non_compliant"
	case StateSilent:
		return "silent"
	case StatePrompting:
		return "prompting"
	case StateReminded:
		return "reminded"
	case StateUnsubscribed:
		return "unsubscribed"
	default:
		return "unchecked"
	}
}

// Result is the terminal report of one gate pass.
type Result struct {
	State   State
	Current int // observed runtime major version
	// Outcome is set only when State is StateUnsubscribed.
	Outcome types.Outcome
}

// Gate runs the startup compatibility check and, when the user agrees, drives
// the channel deactivation. Nothing in here is fatal to the host process:
// every failure path degrades to an instructional message.
type Gate struct {
	cfg      types.GateConfig
	oracle   version.Oracle
	adapter  *adapter.Adapter
	prompter ports.Prompter
	reviewer ports.Reviewer
	notifier ports.Notifier // optional
	log      *log.Entry
}

func New(cfg types.GateConfig,
	env ports.Environment,
	opener ports.CatalogOpener,
	prompter ports.Prompter,
	reviewer ports.Reviewer,
	notifier ports.Notifier,
	logger *log.Entry,
) *Gate {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Gate{
		cfg:      cfg,
		oracle:   version.NewOracle(env),
		adapter:  adapter.New(opener, logger),
		prompter: prompter,
		reviewer: reviewer,
		notifier: notifier,
		log:      logger,
	}
}

// Run executes one pass of the state machine. The host runs it once at
// startup; a second negotiation happens only inside this pass, when the user
// actively chooses to unsubscribe.
func (g *Gate) Run(ctx context.Context) Result {
	res := Result{State: StateUnchecked, Current: g.oracle.CurrentMajor()}
	defer g.notify(ctx, &res)

	if res.Current >= g.cfg.RequiredVersion {
		res.State = StateCompliant
		return res
	}
	res.State = StateNonCompliant
	g.log.Warnf("runtime is major version %d but %s requires %d; gated features will not function",
		res.Current, g.cfg.ChannelName, g.cfg.RequiredVersion)

	active, err := g.adapter.QueryActive(ctx, g.cfg.ChannelName, g.cfg.CatalogDir)
	if err != nil {
		g.log.WithError(err).Debug("channel state undeterminable, assuming active")
	}
	if !active {
		// User already unsubscribed in a prior run. Files linger on disk
		// until the reviewer tool cleans them up.
		g.log.Infof("%s channel is already deactivated; run the reviewer to remove leftover files",
			g.cfg.ChannelName)
		res.State = StateSilent
		return res
	}

	if !g.prompter.Interactive() {
		g.log.Debug("no interactive user present, skipping prompt")
		res.State = StateReminded
		return res
	}
	if !g.pause(ctx) {
		return res
	}
	res.State = StatePrompting
	choice, err := g.prompter.PromptUpgrade(ctx, res.Current, g.cfg.RequiredVersion)
	if err != nil || choice != ports.ChoiceUnsubscribe {
		res.State = StateReminded
		return res
	}

	res.State = StateUnsubscribed
	res.Outcome = g.adapter.NegotiateActivation(ctx, g.cfg.ChannelName, false, g.cfg.CatalogDir)
	switch res.Outcome.Code {
	case types.OutcomeApplied:
		g.log.Infof("%s channel has been deactivated, launching reviewer", g.cfg.ChannelName)
		g.handOff(ctx)
	case types.OutcomeAppliedNotPersisted:
		g.prompter.Inform(ctx, ports.MessageManualPersist, "")
		g.handOff(ctx)
	case types.OutcomeNotFound:
		g.prompter.Inform(ctx, ports.MessageManualUnsubscribe,
			fmt.Sprintf("the %s channel was not found in this installation", g.cfg.ChannelName))
	default:
		g.log.WithError(res.Outcome.Reason).Warn("failed to deactivate channel")
		detail := ""
		if res.Outcome.Reason != nil {
			detail = res.Outcome.Reason.Error()
		}
		g.prompter.Inform(ctx, ports.MessageManualUnsubscribe, detail)
	}
	return res
}

// pause waits out the one-shot prompt delay, which keeps the prompt from
// racing the host's startup theme transition. Single fire, no repeat; only
// shutdown cuts it short.
func (g *Gate) pause(ctx context.Context) bool {
	d := g.cfg.PromptDelay()
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// handOff launches the external reviewer tool. Launch failure never
// propagates; the fallback is an instructional message.
func (g *Gate) handOff(ctx context.Context) {
	if err := g.reviewer.Launch(ctx); err != nil {
		g.log.WithError(err).Debug("could not launch reviewer")
		g.prompter.Inform(ctx, ports.MessageReviewChanges, "")
	}
}

// notify publishes the pass result for operational visibility. Best effort.
func (g *Gate) notify(ctx context.Context, res *Result) {
	if g.notifier == nil || g.cfg.NotifyTopicARN == "" {
		return
	}
	event := map[string]any{
		"channel":          g.cfg.ChannelName,
		"state":            res.State.String(),
		"current_version":  res.Current,
		"required_version": g.cfg.RequiredVersion,
	}
	if res.Outcome.Code != 0 {
		event["outcome"] = res.Outcome.Code.String()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := g.notifier.PublishRaw(ctx, g.cfg.NotifyTopicARN, payload); err != nil {
		g.log.WithError(err).Debug("outcome notification failed")
	}
}
