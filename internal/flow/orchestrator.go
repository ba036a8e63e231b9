package flow

import (
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/sitegen-cli/internal/fusion"
	"github.com/sells-group/sitegen-cli/internal/model"
)

// InferenceConfidence is the fixed confidence for user-answer-derived
// inferences. It comes from the inference source tier, never from a
// catalog default.
const InferenceConfidence = 0.8

// maxShown bounds the total questions a session may ever present, set by
// the quality tier at session start: fewer knowns, more questions tolerated.
func maxShown(tier model.QualityTier) int {
	switch tier {
	case model.TierRich:
		return 3
	case model.TierModerate:
		return 4
	default:
		return 5
	}
}

// Session is the adaptive question orchestrator for one business. Not
// reentrant: callers must not pipeline overlapping Answer calls against the
// same session. Independent sessions share no mutable state.
type Session struct {
	catalog *Catalog
	sources []model.SourcedFacts

	state   model.FlowState
	facts   model.ConfirmedFacts
	conf    model.ConfidenceMap
	quality model.DataQuality
}

// NewSession fuses the normalized sources, plans the first batch, and
// returns a session ready for Current/Answer.
func NewSession(id, industryKey string, sources []model.SourcedFacts, catalog *Catalog) *Session {
	s := &Session{
		catalog: catalog,
		sources: sources,
		state: model.FlowState{
			SessionID: id,
			Industry:  industryKey,
			Phase:     model.PhasePlanning,
			Answers:   make(map[string]model.Answer),
			CreatedAt: time.Now().UTC(),
		},
	}

	for _, q := range catalog.Plannable() {
		s.state.Remaining = append(s.state.Remaining, q.ID)
	}

	s.refuse()
	s.state.StartTier = s.quality.Tier
	s.plan()

	zap.L().Info("flow: session started",
		zap.String("session", id),
		zap.String("industry", industryKey),
		zap.String("start_tier", string(s.state.StartTier)),
		zap.Float64("quality", s.quality.Overall),
	)

	return s
}

// Resume reconstructs a session from a serialized FlowState blob plus the
// caller-owned immutable inputs.
func Resume(blob []byte, sources []model.SourcedFacts, catalog *Catalog) (*Session, error) {
	var state model.FlowState
	if err := json.Unmarshal(blob, &state); err != nil {
		return nil, eris.Wrap(err, "flow: deserialize state")
	}
	if state.Answers == nil {
		state.Answers = make(map[string]model.Answer)
	}
	s := &Session{catalog: catalog, sources: sources, state: state}
	s.refuse()
	return s, nil
}

// Serialize renders the FlowState as an opaque blob for external storage.
func (s *Session) Serialize() ([]byte, error) {
	blob, err := json.Marshal(s.state)
	if err != nil {
		return nil, eris.Wrap(err, "flow: serialize state")
	}
	return blob, nil
}

// Current returns the question awaiting an answer, if any.
func (s *Session) Current() (model.Question, bool) {
	if s.state.Phase != model.PhaseAwaitingAnswer || s.state.Current == "" {
		return model.Question{}, false
	}
	return s.catalog.Get(s.state.Current)
}

// Complete reports whether the flow has terminated.
func (s *Session) Complete() bool {
	return s.state.Phase == model.PhaseComplete
}

// State returns a copy of the flow state.
func (s *Session) State() model.FlowState { return s.state }

// Facts returns the current fused record.
func (s *Session) Facts() model.ConfirmedFacts { return s.facts }

// Confidence returns the current confidence map.
func (s *Session) Confidence() model.ConfidenceMap { return s.conf }

// Quality returns the current data quality assessment.
func (s *Session) Quality() model.DataQuality { return s.quality }

// Answer integrates exactly one answer for the current question. A
// mismatched question id, or answering after Complete, is a usage error.
// "unsure" is recorded as a terminal non-answer: no facts, no inferences.
func (s *Session) Answer(questionID, value string) error {
	if s.state.Phase == model.PhaseComplete {
		return ErrFlowComplete
	}
	if s.state.Phase != model.PhaseAwaitingAnswer {
		return ErrNotAwaiting
	}
	if questionID != s.state.Current {
		return eris.Wrapf(ErrWrongQuestion, "got %q, current is %q", questionID, s.state.Current)
	}

	q, _ := s.catalog.Get(questionID)
	s.pushHistory()

	if isUnsure(value) {
		// A retracted answer (go back, then unsure) leaves nothing behind.
		delete(s.state.Answers, questionID)
		s.clearInferred(questionID)
		s.state.Skips = append(s.state.Skips, model.SkipEntry{
			QuestionID: questionID,
			Reason:     "unsure",
			Step:       s.state.Step,
		})
	} else {
		s.state.Answers[questionID] = model.Answer{
			QuestionID: questionID,
			Value:      value,
			Step:       s.state.Step,
			AnsweredAt: time.Now().UTC(),
		}
		s.integrate(q, value)
	}

	s.removeRemaining(questionID)
	s.refuse()
	s.resuppress()
	s.advance()
	return nil
}

// Skip advances past the current question without an answer, recording the
// reason but inferring nothing.
func (s *Session) Skip(reason string) error {
	if s.state.Phase == model.PhaseComplete {
		return ErrFlowComplete
	}
	if s.state.Phase != model.PhaseAwaitingAnswer {
		return ErrNotAwaiting
	}

	s.pushHistory()
	s.state.Skips = append(s.state.Skips, model.SkipEntry{
		QuestionID: s.state.Current,
		Reason:     reason,
		Step:       s.state.Step,
	})
	s.removeRemaining(s.state.Current)
	s.advance()
	return nil
}

// GoBack rewinds one step without discarding integrated inferences;
// re-answering simply overwrites. Returns false when there is nothing to
// rewind.
func (s *Session) GoBack() bool {
	n := len(s.state.History)
	if n == 0 {
		return false
	}
	snap := s.state.History[n-1]
	s.state.History = s.state.History[:n-1]
	s.state.Current = snap.Current
	s.state.BatchIndex = snap.BatchIndex
	s.state.FollowUp = ""
	s.state.Phase = model.PhaseAwaitingAnswer
	return true
}

// --- internals ---

// refuse recomputes facts, confidence, and quality from scratch. Facts are
// never patched incrementally; full recomputation guarantees consistency.
func (s *Session) refuse() {
	all := make([]model.SourcedFacts, 0, len(s.sources)+2)
	all = append(all, s.sources...)
	if facts := answerFacts(s.catalog, s.state.Answers); len(facts) > 0 {
		all = append(all, model.SourcedFacts{Source: model.SourceUser, Facts: facts})
	}
	if facts := inferredFacts(s.state.Inferred); len(facts) > 0 {
		all = append(all, model.SourcedFacts{Source: model.SourceInferred, Facts: facts})
	}
	s.facts, s.conf, s.quality = fusion.Fuse(all)
}

// integrate derives inferences and a possible follow-up from the answer.
// Re-answering always replaces this question's previous inferences, even
// when the new answer infers nothing.
func (s *Session) integrate(q model.Question, value string) {
	s.clearInferred(q.ID)

	opt, ok := matchOption(q, value)
	if !ok {
		return
	}

	for key, val := range opt.Infers {
		s.state.Inferred = append(s.state.Inferred, model.InferredFact{
			Key:        key,
			Value:      val,
			Confidence: InferenceConfidence,
			FromAnswer: q.ID,
		})
	}

	if opt.FollowUp != "" && !s.asked(opt.FollowUp) {
		s.state.FollowUp = opt.FollowUp
	}
}

// resuppress drops now-irrelevant remaining candidates. Once suppressed, a
// question never returns for this session.
func (s *Session) resuppress() {
	var kept []string
	for _, id := range s.state.Remaining {
		q, ok := s.catalog.Get(id)
		if !ok {
			continue
		}
		if Suppressed(q, s.conf, s.facts) {
			s.state.Suppressed = append(s.state.Suppressed, id)
			zap.L().Debug("flow: question suppressed",
				zap.String("session", s.state.SessionID),
				zap.String("question", id),
			)
			continue
		}
		kept = append(kept, id)
	}
	s.state.Remaining = kept
}

// plan selects the next bounded batch, or completes the flow when no batch
// is warranted. Early termination applies once data quality reaches the
// rich threshold mid-flow.
func (s *Session) plan() {
	s.state.Phase = model.PhasePlanning

	capacity := maxShown(s.state.StartTier) - len(s.state.Asked)
	if capacity <= 0 {
		s.complete("question budget exhausted")
		return
	}
	if len(s.state.Asked) > 0 && s.quality.Overall >= model.RichThreshold {
		s.complete("data quality rich")
		return
	}

	s.resuppress()

	var candidates []model.Question
	for _, id := range s.state.Remaining {
		if q, ok := s.catalog.Get(id); ok {
			candidates = append(candidates, q)
		}
	}
	if len(candidates) == 0 {
		s.complete("no applicable questions")
		return
	}

	sorted := model.SortQuestions(candidates, s.conf)
	size := maxShown(s.quality.Tier)
	if size > capacity {
		size = capacity
	}
	if size > len(sorted) {
		size = len(sorted)
	}

	batch := make([]string, 0, size)
	for _, q := range sorted[:size] {
		batch = append(batch, q.ID)
	}
	s.state.Batch = batch
	s.state.BatchIndex = 0
	s.present(batch[0])
}

// advance moves to the pending follow-up, the next surviving batch entry,
// or back to planning. Every presentation spends session budget, so batch
// entries re-check it after a follow-up interleaves mid-batch.
func (s *Session) advance() {
	budget := maxShown(s.state.StartTier)

	if fu := s.state.FollowUp; fu != "" {
		s.state.FollowUp = ""
		if !s.asked(fu) && len(s.state.Asked) < budget {
			s.present(fu)
			return
		}
	}

	for s.state.BatchIndex+1 < len(s.state.Batch) {
		s.state.BatchIndex++
		id := s.state.Batch[s.state.BatchIndex]
		if !s.inRemaining(id) {
			continue
		}
		if len(s.state.Asked) >= budget {
			break
		}
		s.present(id)
		return
	}

	s.plan()
}

func (s *Session) present(id string) {
	s.state.Current = id
	s.state.Phase = model.PhaseAwaitingAnswer
	s.state.Step++
	if !s.asked(id) {
		s.state.Asked = append(s.state.Asked, id)
	}
}

func (s *Session) complete(reason string) {
	s.state.Phase = model.PhaseComplete
	s.state.Current = ""
	zap.L().Info("flow: session complete",
		zap.String("session", s.state.SessionID),
		zap.String("reason", reason),
		zap.Int("questions_shown", len(s.state.Asked)),
		zap.Int("answers", len(s.state.Answers)),
		zap.Float64("quality", s.quality.Overall),
	)
}

// clearInferred drops every inference derived from the question's answer.
func (s *Session) clearInferred(questionID string) {
	kept := s.state.Inferred[:0]
	for _, inf := range s.state.Inferred {
		if inf.FromAnswer != questionID {
			kept = append(kept, inf)
		}
	}
	s.state.Inferred = kept
}

func (s *Session) pushHistory() {
	s.state.History = append(s.state.History, model.StepSnapshot{
		Current:    s.state.Current,
		BatchIndex: s.state.BatchIndex,
	})
}

func (s *Session) asked(id string) bool {
	for _, a := range s.state.Asked {
		if a == id {
			return true
		}
	}
	return false
}

func (s *Session) inRemaining(id string) bool {
	for _, r := range s.state.Remaining {
		if r == id {
			return true
		}
	}
	return false
}

func (s *Session) removeRemaining(id string) {
	for i, r := range s.state.Remaining {
		if r == id {
			s.state.Remaining = append(s.state.Remaining[:i], s.state.Remaining[i+1:]...)
			return
		}
	}
}
