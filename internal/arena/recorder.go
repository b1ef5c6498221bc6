package arena

import (
	"context"

	"github.com/abhisek/homebook/internal/logging"
	"github.com/abhisek/homebook/internal/session"
	"github.com/abhisek/homebook/internal/store"
)

// Recorder observes a session, logging its progress and persisting answers,
// the final result and the resume level. Persistence failures are logged
// and never interrupt play.
//
// Observer hooks carry no context, so every store write uses the context
// given to NewRecorder. A recorder lives no longer than that context;
// once it is cancelled, writes fail and are only logged.
type Recorder struct {
	ctx     context.Context
	log     *logging.Logger
	answers store.AnswerRepo
	results store.ResultRepo
	levels  store.LevelRepo
	sess    *session.Session
}

// NewRecorder creates a recorder. A nil st only logs; a nil ctx means
// context.Background.
func NewRecorder(ctx context.Context, st *store.Store, log *logging.Logger) *Recorder {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = logging.Nop()
	}
	r := &Recorder{ctx: ctx, log: log}
	if st != nil {
		r.answers = st.Answers()
		r.results = st.Results()
		r.levels = st.Levels()
	}
	return r
}

// NewSession creates a session observed by rec. A nil rec observes nothing.
func NewSession(cfg session.Config, src session.Source, rec *Recorder, opts ...session.Option) *session.Session {
	if rec != nil {
		opts = append(opts, session.WithObserver(rec))
	}
	s := session.New(cfg, src, opts...)
	if rec != nil {
		rec.Bind(s)
	}
	return s
}

// Bind attaches the session whose summary is recorded when it ends.
func (r *Recorder) Bind(s *session.Session) {
	r.sess = s
	r.log = r.log.With("game", s.Game())
}

func (r *Recorder) OnPhase(from, to session.Phase) {
	r.log.Debug("session phase", "from", from.String(), "to", to.String())
	if r.sess == nil {
		return
	}

	switch to {
	case session.PhaseCountdown:
		r.log.Info("session started", "session_id", r.sess.ID(), "level", r.sess.Level())
	case session.PhaseSummary, session.PhaseAbandoned:
		r.finish(r.sess.Summary())
	}
}

func (r *Recorder) OnAnswer(fb session.Feedback) {
	r.log.Debug("answer",
		"round", fb.Round,
		"correct", fb.Correct,
		"fast", fb.Fast,
		"level", fb.Level,
		"adjustment", string(fb.Adjustment.Kind),
	)
	if r.answers == nil || r.sess == nil {
		return
	}
	err := r.answers.Append(r.ctx, store.AnswerEvent{
		SessionID:  r.sess.ID(),
		Game:       r.sess.Game(),
		Round:      fb.Round,
		ItemKey:    fb.Item.Key,
		Correct:    fb.Correct,
		Fast:       fb.Fast,
		LevelAfter: fb.Level,
		Adjustment: string(fb.Adjustment.Kind),
		Magnitude:  fb.Adjustment.Magnitude,
		AnsweredAt: fb.At,
	})
	if err != nil {
		r.log.Warn("failed to record answer", "error", err)
	}
}

func (r *Recorder) finish(sum session.Summary) {
	r.log.Info("session ended",
		"session_id", sum.SessionID,
		"outcome", string(sum.Outcome),
		"reason", string(sum.Reason),
		"rounds", sum.Rounds,
		"final_level", sum.FinalLevel,
		"accuracy", sum.Accuracy,
	)
	if r.results == nil {
		return
	}

	if err := r.results.Append(r.ctx, ResultFromSummary(sum)); err != nil {
		r.log.Warn("failed to record result", "error", err)
	}
	if sum.Rounds > 0 {
		if err := r.levels.Save(r.ctx, sum.Game, sum.FinalLevel); err != nil {
			r.log.Warn("failed to save resume level", "error", err)
		}
	}
}

// ResultFromSummary converts a session summary into its stored form.
func ResultFromSummary(sum session.Summary) store.Result {
	return store.Result{
		SessionID:    sum.SessionID,
		Game:         sum.Game,
		StartLevel:   sum.StartLevel,
		FinalLevel:   sum.FinalLevel,
		TotalCorrect: sum.TotalCorrect,
		TotalWrong:   sum.TotalWrong,
		BestStreak:   sum.BestStreak,
		Rounds:       sum.Rounds,
		Accuracy:     sum.Accuracy,
		Outcome:      string(sum.Outcome),
		Reason:       string(sum.Reason),
		Tier:         sum.Tier.Label,
		StartedAt:    sum.StartedAt,
		Duration:     sum.Duration,
	}
}

// ResumeLevel returns the saved level for game, or fallback when none is
// stored or the lookup fails.
func ResumeLevel(ctx context.Context, st *store.Store, game string, fallback float64) float64 {
	if st == nil {
		return fallback
	}
	level, err := st.Levels().Load(ctx, game)
	if err != nil {
		return fallback
	}
	return level
}
