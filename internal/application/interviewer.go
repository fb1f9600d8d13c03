package application

import (
	"context"
	"log/slog"
	"time"

	"interview-agent/internal/domain"
)

const (
	welcomeMessage = "Welcome to the asylum interview system. I am an AI assistant that will help collect your information for your asylum application. " +
		"I will ask you several questions about your background and reasons for seeking asylum. Please speak clearly after each question. " +
		"You can ask me to repeat a question at any time. Let's begin."

	completionMessage = "Thank you for completing the interview. Your responses have been recorded and will be processed for your asylum application. " +
		"The information will be reviewed and may be used to prepare for your official interview with the authorities."

	recordingApology     = "I couldn't record your response. Let me try again."
	understandingApology = "I couldn't understand your response. Please try again."
	genericClarification = "Could you provide more details or rephrase your answer?"
	requiredNotice       = "This is a required question. Let me try a different approach."
)

// InterviewConfig bounds one interview run.
type InterviewConfig struct {
	MaxRetries       int
	RecordDuration   time.Duration
	FollowUpDuration time.Duration
	// QuestionTimeout, when positive, is the deadline for the
	// transcribe+classify pair of a single attempt. Recording has its own
	// duration bound and is not covered.
	QuestionTimeout time.Duration
	LanguageHint    string
}

// Interviewer drives the interview: for each question it speaks the prompt,
// records and transcribes the answer, asks the classifier whether the answer
// is adequate, and either advances, retries, or gives up once the retry
// budget is spent.
type Interviewer struct {
	speaker     Speaker
	recorder    Recorder
	transcriber Transcriber
	classifier  Classifier
	questions   []domain.Question
	cfg         InterviewConfig
	logger      *slog.Logger
}

func NewInterviewer(
	speaker Speaker,
	recorder Recorder,
	transcriber Transcriber,
	classifier Classifier,
	questions []domain.Question,
	cfg InterviewConfig,
	logger *slog.Logger,
) *Interviewer {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	if cfg.LanguageHint == "" {
		cfg.LanguageHint = LanguageAuto
	}
	return &Interviewer{
		speaker:     speaker,
		recorder:    recorder,
		transcriber: transcriber,
		classifier:  classifier,
		questions:   questions,
		cfg:         cfg,
		logger:      logger,
	}
}

// attemptOutcome is the terminal state of one ask→record→transcribe→classify
// cycle.
type attemptOutcome int

const (
	outcomeCaptureFailed attemptOutcome = iota
	outcomeNoTranscript
	outcomeInadequate
	outcomeAdequate
)

// Run conducts the whole interview and returns the accumulated session. The
// only errors returned are context cancellations; every per-question failure
// is absorbed by the retry protocol.
func (iv *Interviewer) Run(ctx context.Context) (*domain.Session, error) {
	session := domain.NewSession()

	iv.speak(ctx, welcomeMessage, PriorityImportant)

	for i, q := range iv.questions {
		if err := ctx.Err(); err != nil {
			return session, err
		}

		iv.logger.Info("asking question",
			"number", i+1,
			"total", len(iv.questions),
			"id", q.ID,
			"category", q.Category,
		)

		answered, err := iv.askWithRetry(ctx, session, q)
		if err != nil {
			return session, err
		}
		if !answered && q.Required {
			iv.speak(ctx, requiredNotice, PriorityNormal)
		}
	}

	iv.speak(ctx, completionMessage, PriorityImportant)

	return session, nil
}

// askWithRetry runs the attempt loop for one question. The single exit
// predicate is: an attempt came back adequate, or the budget is exhausted.
func (iv *Interviewer) askWithRetry(ctx context.Context, session *domain.Session, q domain.Question) (bool, error) {
	for attempt := 1; attempt <= iv.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		iv.logger.Info("attempt", "id", q.ID, "attempt", attempt, "max", iv.cfg.MaxRetries)

		outcome, cls := iv.runAttempt(ctx, session, q, attempt)

		switch outcome {
		case outcomeCaptureFailed:
			iv.speak(ctx, recordingApology, PriorityNormal)

		case outcomeNoTranscript:
			iv.speak(ctx, understandingApology, PriorityNormal)

		case outcomeAdequate:
			if cls.FollowUpNeeded && q.FollowUp != "" {
				iv.askFollowUp(ctx, session, q)
			}
			return true, nil

		case outcomeInadequate:
			if attempt < iv.cfg.MaxRetries {
				clarification := cls.SuggestedFollowUp
				if clarification == "" {
					clarification = genericClarification
				}
				iv.speak(ctx, "I need a bit more information. "+clarification, PriorityNormal)
			}
		}
	}

	iv.logger.Warn("retries exhausted", "id", q.ID, "max", iv.cfg.MaxRetries)
	return false, nil
}

// runAttempt performs one full cycle for a question. The answer is stored
// regardless of adequacy, so a final failed attempt is what survives when
// retries run out.
func (iv *Interviewer) runAttempt(ctx context.Context, session *domain.Session, q domain.Question, attempt int) (attemptOutcome, domain.Classification) {
	iv.speak(ctx, q.Prompt, PriorityNormal)

	audioPath, err := iv.recorder.Record(ctx, iv.cfg.RecordDuration)
	if err != nil {
		iv.logger.Error("recording failed", "id", q.ID, "error", err)
		return outcomeCaptureFailed, domain.Classification{}
	}

	attemptCtx, cancel := iv.attemptContext(ctx)
	defer cancel()

	tr, err := iv.transcriber.Transcribe(attemptCtx, audioPath, iv.cfg.LanguageHint)
	if err != nil {
		iv.logger.Error("transcription failed", "id", q.ID, "error", err)
		return outcomeNoTranscript, domain.Classification{}
	}

	// Any successful transcription counts toward the language set, even one
	// with no usable text.
	session.RecordLanguage(tr.Language)

	if tr.Text == "" {
		iv.logger.Warn("empty transcript", "id", q.ID)
		return outcomeNoTranscript, domain.Classification{}
	}

	iv.logger.Info("transcribed", "id", q.ID, "language", tr.Language, "chars", len(tr.Text))

	cls, err := iv.classifier.Classify(attemptCtx, tr.Text, q)
	if err != nil {
		iv.logger.Error("classification failed, using fallback", "id", q.ID, "error", err)
		cls = domain.FallbackClassification(tr.Text, err)
	}

	session.SetAnswer(q.ID, domain.Answer{
		Question:    q.Prompt,
		Category:    q.Category,
		RawResponse: tr.Text,
		Processed:   cls,
		Language:    tr.Language,
		Timestamp:   time.Now(),
		Attempt:     attempt,
	})

	if cls.AdequatelyAnswered {
		return outcomeAdequate, cls
	}
	return outcomeInadequate, cls
}

// askFollowUp runs the one-shot supplementary question after a successful
// main answer. No classification, no retry: a failed capture is dropped
// silently and the main answer stands.
func (iv *Interviewer) askFollowUp(ctx context.Context, session *domain.Session, q domain.Question) {
	iv.logger.Info("follow-up question", "id", q.ID)
	iv.speak(ctx, q.FollowUp, PriorityNormal)

	audioPath, err := iv.recorder.Record(ctx, iv.cfg.FollowUpDuration)
	if err != nil {
		iv.logger.Warn("follow-up recording failed", "id", q.ID, "error", err)
		return
	}

	tr, err := iv.transcriber.Transcribe(ctx, audioPath, iv.cfg.LanguageHint)
	if err != nil {
		iv.logger.Warn("follow-up transcription failed", "id", q.ID, "error", err)
		return
	}

	session.RecordLanguage(tr.Language)

	if tr.Text == "" {
		iv.logger.Warn("follow-up transcription yielded nothing", "id", q.ID)
		return
	}

	session.AttachFollowUp(q.ID, domain.FollowUpAnswer{
		Question:  q.FollowUp,
		Response:  tr.Text,
		Language:  tr.Language,
		Timestamp: time.Now(),
	})
}

func (iv *Interviewer) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if iv.cfg.QuestionTimeout > 0 {
		return context.WithTimeout(ctx, iv.cfg.QuestionTimeout)
	}
	return context.WithCancel(ctx)
}

// speak logs and swallows speech failures: losing audio output must not
// abort the interview.
func (iv *Interviewer) speak(ctx context.Context, text string, priority Priority) {
	iv.logger.Info("agent speaking", "priority", priority, "text", text)
	if err := iv.speaker.Speak(ctx, text, priority); err != nil {
		iv.logger.Error("speech output failed", "error", err)
	}
}
