// Package chat runs one chat exchange: session resolution, prompt
// construction, the model call, interpretation and state update.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/iammorganparry/clive/apps/uigen/internal/interpret"
	"github.com/iammorganparry/clive/apps/uigen/internal/llm"
	"github.com/iammorganparry/clive/apps/uigen/internal/models"
	"github.com/iammorganparry/clive/apps/uigen/internal/prompt"
	"github.com/iammorganparry/clive/apps/uigen/internal/sessions"
	"github.com/iammorganparry/clive/apps/uigen/internal/store"
)

var (
	ErrEmptyText        = errors.New("text is required")
	ErrInvalidSessionID = errors.New("invalid session_id")
)

// Service orchestrates chat exchanges against a session store.
type Service struct {
	sessions  *sessions.Store
	persist   *sessions.Persistence
	builder   *prompt.Builder
	generator llm.Generator
	logger    *slog.Logger
}

// NewService wires the exchange pipeline. persist may be nil to keep sessions in memory only.
func NewService(
	sessionStore *sessions.Store,
	persist *sessions.Persistence,
	builder *prompt.Builder,
	generator llm.Generator,
	logger *slog.Logger,
) *Service {
	return &Service{
		sessions:  sessionStore,
		persist:   persist,
		builder:   builder,
		generator: generator,
		logger:    logger,
	}
}

// Handle processes one user message. Requests for the same session id are
// serialized. Model failures are returned wrapping llm.ErrUpstream.
func (s *Service) Handle(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyText
	}

	id := req.SessionID
	if id == "" {
		id = uuid.New().String()
	} else if !store.ValidID(id) {
		return nil, ErrInvalidSessionID
	}

	unlock := s.sessions.Lock(id)
	defer unlock()

	if req.SessionID != "" && s.persist != nil && !s.sessions.Exists(id) {
		s.persist.Load(id)
	}
	id, _ = s.sessions.GetOrCreate(id)

	s.sessions.Append(id, models.RoleUser, req.Text)
	s.sessions.Touch(id)

	history := s.sessions.History(id)
	artifact := s.sessions.Artifact(id)
	promptText, mode := s.builder.Build(req.Text, history, artifact)

	raw, err := s.generator.Generate(ctx, promptText)
	if err != nil {
		// No assistant turn follows, so apply the retention limit here.
		s.sessions.Trim(id)
		return nil, fmt.Errorf("generate component: %w", err)
	}

	s.sessions.AppendAndTrim(id, models.RoleAssistant, raw)

	result := interpret.Parse(raw)
	if result.HasCode() {
		s.sessions.SetArtifact(id, result.Component.Code)
		s.logger.Debug("component stored",
			"session_id", id,
			"code_bytes", len(result.Component.Code),
			"explanation", result.Component.Explanation,
		)
	}

	if s.persist != nil {
		s.persist.SaveAsync(id)
	}

	s.logger.Info("chat exchange",
		"session_id", id,
		"mode", string(mode),
		"outcome", result.Outcome.String(),
	)

	resp := &models.ChatResponse{SessionID: id}
	if result.HasCode() {
		resp.Response = result.Fields
	} else {
		resp.Raw = &raw
	}
	return resp, nil
}

// IsUpstream reports whether err came from the model provider.
func IsUpstream(err error) bool {
	return errors.Is(err, llm.ErrUpstream)
}
