package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"vergate/internal/backends/file"
	"vergate/internal/ports"
	"vergate/internal/types"
)

type GateTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestGateTestSuite(t *testing.T) {
	suite.Run(t, new(GateTestSuite))
}

func (s *GateTestSuite) SetupTest() {
	s.ctx = context.Background()
}

// fakePrompter records interactions and answers with a fixed choice.
type fakePrompter struct {
	headless  bool
	choice    ports.Choice
	promptErr error
	prompts   int
	messages  []ports.Message
}

func (p *fakePrompter) Interactive() bool { return !p.headless }

func (p *fakePrompter) PromptUpgrade(_ context.Context, current, required int) (ports.Choice, error) {
	p.prompts++
	return p.choice, p.promptErr
}

func (p *fakePrompter) Inform(_ context.Context, msg ports.Message, _ string) {
	p.messages = append(p.messages, msg)
}

type fakeReviewer struct {
	launches  int
	launchErr error
}

func (r *fakeReviewer) Launch(context.Context) error {
	r.launches++
	return r.launchErr
}

type fakeNotifier struct {
	payloads [][]byte
}

func (n *fakeNotifier) PublishRaw(_ context.Context, _ string, payload []byte) error {
	n.payloads = append(n.payloads, payload)
	return nil
}

func staticEnv(v string) ports.Environment {
	return ports.EnvironmentFunc(func() string { return v })
}

func (s *GateTestSuite) seedCatalog(active bool) string {
	dir := s.T().TempDir()
	require.NoError(s.T(), file.WriteChannels(dir, []types.Channel{
		{Name: "Neuroanatomy", Rank: 3, Active: active},
	}))
	return dir
}

func (s *GateTestSuite) config(dir string) types.GateConfig {
	return types.GateConfig{
		RequiredVersion: 21,
		ChannelName:     "Neuroanatomy",
		CatalogDir:      dir,
	}
}

func (s *GateTestSuite) TestCompliantRuntimeIsTerminal() {
	p := &fakePrompter{}
	r := &fakeReviewer{}
	g := New(s.config(s.seedCatalog(true)), staticEnv("21.0.2"), file.Opener{}, p, r, nil, nil)

	res := g.Run(s.ctx)

	s.Equal(StateCompliant, res.State)
	s.Equal(21, res.Current)
	s.Zero(p.prompts)
	s.Zero(r.launches)
}

func (s *GateTestSuite) TestAlreadyDeactivatedIsSilent() {
	p := &fakePrompter{choice: ports.ChoiceUnsubscribe}
	g := New(s.config(s.seedCatalog(false)), staticEnv("1.8.0_392"), file.Opener{}, p, &fakeReviewer{}, nil, nil)

	res := g.Run(s.ctx)

	s.Equal(StateSilent, res.State)
	s.Equal(8, res.Current)
	s.Zero(p.prompts)
}

func (s *GateTestSuite) TestHeadlessSkipsPrompt() {
	p := &fakePrompter{headless: true}
	g := New(s.config(s.seedCatalog(true)), staticEnv("1.8.0_392"), file.Opener{}, p, &fakeReviewer{}, nil, nil)

	res := g.Run(s.ctx)

	s.Equal(StateReminded, res.State)
	s.Zero(p.prompts)
}

func (s *GateTestSuite) TestDeclineLeavesChannelActive() {
	dir := s.seedCatalog(true)
	p := &fakePrompter{choice: ports.ChoiceKeepReminding}
	g := New(s.config(dir), staticEnv("11.0.21"), file.Opener{}, p, &fakeReviewer{}, nil, nil)

	res := g.Run(s.ctx)

	s.Equal(StateReminded, res.State)
	s.Equal(1, p.prompts)
	// Nothing persisted about the decline, nothing mutated.
	cat, err := file.Opener{}.Open(s.ctx, dir)
	s.Require().NoError(err)
	r, err := cat.Find(s.ctx, "Neuroanatomy")
	s.Require().NoError(err)
	s.True(r.(ports.ActiveReporter).IsActive())
}

func (s *GateTestSuite) TestUnsubscribeDeactivatesAndHandsOff() {
	dir := s.seedCatalog(true)
	p := &fakePrompter{choice: ports.ChoiceUnsubscribe}
	r := &fakeReviewer{}
	n := &fakeNotifier{}
	cfg := s.config(dir)
	cfg.NotifyTopicARN = "arn:aws:sns:us-east-1:000000000000:vergate"
	g := New(cfg, staticEnv("1.8.0_392"), file.Opener{}, p, r, n, nil)

	res := g.Run(s.ctx)

	s.Equal(StateUnsubscribed, res.State)
	s.Equal(types.OutcomeApplied, res.Outcome.Code)
	s.Equal(1, r.launches)
	// Successful launch needs no terminal message.
	s.Empty(p.messages)
	s.Len(n.payloads, 1)

	cat, err := file.Opener{}.Open(s.ctx, dir)
	s.Require().NoError(err)
	handle, err := cat.(ports.InactiveFinder).FindAny(s.ctx, "Neuroanatomy", true)
	s.Require().NoError(err)
	s.False(handle.(ports.ActiveReporter).IsActive())
}

func (s *GateTestSuite) TestReviewerLaunchFailureFallsBackToMessage() {
	p := &fakePrompter{choice: ports.ChoiceUnsubscribe}
	r := &fakeReviewer{launchErr: errors.New("no display")}
	g := New(s.config(s.seedCatalog(true)), staticEnv("1.8.0_392"), file.Opener{}, p, r, nil, nil)

	res := g.Run(s.ctx)

	s.Equal(types.OutcomeApplied, res.Outcome.Code)
	s.Equal([]ports.Message{ports.MessageReviewChanges}, p.messages)
}

func (s *GateTestSuite) TestPersistFailureStillHandsOff() {
	p := &fakePrompter{choice: ports.ChoiceUnsubscribe}
	r := &fakeReviewer{}
	g := New(s.config("persist-fails"), staticEnv("1.8.0_392"), persistFailOpener{}, p, r, nil, nil)

	res := g.Run(s.ctx)

	s.Equal(StateUnsubscribed, res.State)
	s.Equal(types.OutcomeAppliedNotPersisted, res.Outcome.Code)
	s.Equal([]ports.Message{ports.MessageManualPersist}, p.messages)
	s.Equal(1, r.launches)
}

func (s *GateTestSuite) TestMissingChannelGivesManualInstructions() {
	dir := s.T().TempDir() // empty catalog
	p := &fakePrompter{choice: ports.ChoiceUnsubscribe}
	r := &fakeReviewer{}
	g := New(s.config(dir), staticEnv("1.8.0_392"), file.Opener{}, p, r, nil, nil)

	res := g.Run(s.ctx)

	// Empty catalog reads as "state unknown", so the prompt is still shown;
	// the negotiation then reports the channel missing.
	s.Equal(StateUnsubscribed, res.State)
	s.Equal(types.OutcomeNotFound, res.Outcome.Code)
	s.Equal([]ports.Message{ports.MessageManualUnsubscribe}, p.messages)
	s.Zero(r.launches)
}

func (s *GateTestSuite) TestMissingLocationGivesManualInstructions() {
	p := &fakePrompter{choice: ports.ChoiceUnsubscribe}
	g := New(s.config(""), staticEnv("1.8.0_392"), file.Opener{}, p, &fakeReviewer{}, nil, nil)

	res := g.Run(s.ctx)

	s.Equal(types.OutcomeFailed, res.Outcome.Code)
	s.ErrorIs(res.Outcome.Reason, types.ErrNoLocation)
	s.Equal([]ports.Message{ports.MessageManualUnsubscribe}, p.messages)
}

// persistFailOpener serves a single active channel whose catalog cannot be
// written, standing in for a read-only installation.
type persistFailOpener struct{}

func (persistFailOpener) Open(context.Context, string) (ports.Catalog, error) {
	return &persistFailCatalog{rec: &types.Channel{Name: "Neuroanatomy", Active: true}}, nil
}

type persistFailCatalog struct {
	rec *types.Channel
}

func (c *persistFailCatalog) Find(_ context.Context, name string) (ports.Resource, error) {
	if name != c.rec.Name {
		return nil, types.ErrNotFound
	}
	return c.rec, nil
}

func (c *persistFailCatalog) Persist(context.Context) error {
	return types.Err(types.ErrPersist, nil, "read-only medium")
}
