package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"interview-agent/internal/domain"
)

// Metadata is the run configuration echoed into the persisted outputs.
type Metadata struct {
	TotalQuestions  int
	MaxRetries      int
	RecordDuration  time.Duration
	DefaultLanguage string
	AgentVersion    string
}

type sessionDocument struct {
	InterviewMetadata metadataDocument `json:"interview_metadata"`
	InterviewData     *domain.Session  `json:"interview_data"`
}

type metadataDocument struct {
	SessionID         string         `json:"session_id"`
	Timestamp         string         `json:"timestamp"`
	TotalQuestions    int            `json:"total_questions"`
	AnsweredQuestions int            `json:"answered_questions"`
	DetectedLanguages []string       `json:"detected_languages"`
	AgentVersion      string         `json:"agent_version"`
	Configuration     configDocument `json:"configuration"`
}

type configDocument struct {
	MaxRetries      int    `json:"max_retries"`
	RecordDuration  int    `json:"record_duration"`
	DefaultLanguage string `json:"default_language"`
}

// Writer persists one finished interview: a structured JSON record and a
// human-readable summary, both under dir with timestamped names derived from
// prefix.
type Writer struct {
	dir    string
	prefix string
	logger *slog.Logger
}

func NewWriter(dir, prefix string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, prefix: prefix, logger: logger}
}

// SaveSession writes the full structured record and returns the file path.
func (w *Writer) SaveSession(session *domain.Session, meta Metadata) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	now := time.Now()
	doc := sessionDocument{
		InterviewMetadata: metadataDocument{
			SessionID:         session.ID,
			Timestamp:         now.Format(time.RFC3339),
			TotalQuestions:    meta.TotalQuestions,
			AnsweredQuestions: session.Answered(),
			DetectedLanguages: session.Languages(),
			AgentVersion:      agentVersion(meta),
			Configuration: configDocument{
				MaxRetries:      meta.MaxRetries,
				RecordDuration:  int(meta.RecordDuration.Seconds()),
				DefaultLanguage: meta.DefaultLanguage,
			},
		},
		InterviewData: session,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling session: %w", err)
	}

	path := filepath.Join(w.dir, w.prefix+now.Format("20060102_150405")+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing session file: %w", err)
	}

	w.logger.Info("session saved", "path", path, "answered", session.Answered())
	return path, nil
}

// SaveSummary writes the human-readable report and returns the file path.
func (w *Writer) SaveSummary(session *domain.Session, meta Metadata) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	now := time.Now()
	var b strings.Builder

	b.WriteString("ASYLUM INTERVIEW SUMMARY REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&b, "Interview Date: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total Questions: %d\n", meta.TotalQuestions)
	fmt.Fprintf(&b, "Questions Answered: %d\n", session.Answered())

	langs := session.Languages()
	if len(langs) == 0 {
		b.WriteString("Languages Detected: None detected\n\n")
	} else {
		fmt.Fprintf(&b, "Languages Detected: %s\n\n", strings.Join(langs, ", "))
	}

	for _, id := range session.QuestionIDs() {
		answer, ok := session.Answer(id)
		if !ok {
			continue
		}

		fmt.Fprintf(&b, "QUESTION: %s\n", answer.Question)
		fmt.Fprintf(&b, "CATEGORY: %s\n", answer.Category)
		fmt.Fprintf(&b, "RESPONSE: %s\n", answer.RawResponse)

		if answer.Processed.Summary != "" {
			fmt.Fprintf(&b, "SUMMARY: %s\n", answer.Processed.Summary)
		}
		if answer.FollowUp != nil {
			fmt.Fprintf(&b, "FOLLOW-UP: %s\n", answer.FollowUp.Response)
		}

		b.WriteString(strings.Repeat("-", 30) + "\n\n")
	}

	path := filepath.Join(w.dir, w.prefix+"summary_"+now.Format("20060102_150405")+".txt")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("writing summary file: %w", err)
	}

	w.logger.Info("summary saved", "path", path)
	return path, nil
}

func agentVersion(meta Metadata) string {
	if meta.AgentVersion == "" {
		return "1.0"
	}
	return meta.AgentVersion
}
