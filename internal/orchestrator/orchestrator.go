package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/jarvis/internal/config"
	"github.com/sandevgo/jarvis/internal/conversation"
	"github.com/sandevgo/jarvis/internal/core"
	"github.com/sandevgo/jarvis/internal/intent"
	"github.com/sandevgo/jarvis/internal/memory"
	"github.com/sandevgo/jarvis/internal/skill"
	"github.com/sandevgo/jarvis/pkg/log"
)

const systemPrompt = `You are JARVIS, a concise and helpful personal assistant.
Answer directly and keep replies short unless the user asks for detail.`

// Result is the outcome of one completed turn.
type Result struct {
	Reply     string
	Skill     string
	Intent    core.IntentResult
	Timestamp time.Time
}

// Orchestrator drives one turn end to end: record the user message,
// detect intent, route to a skill or fall back to the language model,
// record the reply. Each session admits one in-flight turn at a time.
type Orchestrator struct {
	detector *intent.Detector
	registry *skill.Registry
	llm      core.LLMProvider
	memories *memory.Store

	appCfg      *config.AppConfig
	providerCfg *config.ProviderConfig

	sessions *sessionRegistry
}

func New(
	detector *intent.Detector,
	registry *skill.Registry,
	llm core.LLMProvider,
	memories *memory.Store,
	convStore *conversation.FileStore,
	appCfg *config.AppConfig,
	providerCfg *config.ProviderConfig,
) *Orchestrator {
	return &Orchestrator{
		detector:    detector,
		registry:    registry,
		llm:         llm,
		memories:    memories,
		appCfg:      appCfg,
		providerCfg: providerCfg,
		sessions:    newSessionRegistry(convStore),
	}
}

// Turn processes one user message. Fails with core.ErrSessionBusy when
// the session already has a turn in flight. A cancelled turn returns
// the context error and records no assistant message.
func (o *Orchestrator) Turn(ctx context.Context, sessionID, text string) (Result, error) {
	sess, err := o.sessions.acquire(sessionID)
	if err != nil {
		return Result{}, err
	}
	defer sess.release()

	logger := log.FromCtx(ctx)
	res := o.detector.Detect(text)
	sess.manager.AddMessage(core.RoleUser, text)

	logger.Debug().
		Str("session", sessionID).
		Str("intent", res.Primary).
		Strs("all", res.All).
		Msg("intent detected")

	reply, skillName := o.resolve(ctx, sess, sessionID, text, res)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	sess.manager.AddMessage(core.RoleAssistant, reply)

	o.persistExchange(ctx, sessionID, text, reply)

	return Result{
		Reply:     reply,
		Skill:     skillName,
		Intent:    res,
		Timestamp: time.Now(),
	}, nil
}

// resolve produces the assistant reply, via a skill when one matches
// and through the language model otherwise.
func (o *Orchestrator) resolve(ctx context.Context, sess *session, sessionID, text string, res core.IntentResult) (reply, skillName string) {
	resp, handled := o.registry.Dispatch(ctx, skill.Request{
		SessionID: sessionID,
		Text:      text,
		Intent:    res,
	})
	if handled {
		if resp.Success {
			return resp.Message, resp.Skill
		}
		log.FromCtx(ctx).Warn().
			Str("skill", resp.Skill).
			Str("error", resp.Error).
			Msg("skill execution failed")
		return fmt.Sprintf("Sorry, I couldn't do that: %s", resp.Error), resp.Skill
	}

	return o.generate(ctx, sess, text), ""
}

// generate asks the language model, with recent history trimmed to the
// token budget and relevant memories folded into the system prompt.
func (o *Orchestrator) generate(ctx context.Context, sess *session, text string) string {
	logger := log.FromCtx(ctx)

	prompt := systemPrompt
	if recalled := o.recall(ctx, text); recalled != "" {
		prompt += "\n\nRelevant things you remember about the user:\n" + recalled
	}

	history := sess.manager.ContextMessages(o.appCfg.ContextMaxTokens)
	messages := make([]core.Message, 0, len(history)+1)
	messages = append(messages, core.Message{Role: core.RoleSystem, Content: prompt})
	messages = append(messages, history...)

	reply, err := o.llm.Generate(ctx, messages, o.providerCfg.MaxTokens, o.providerCfg.Temperature)
	if err != nil {
		if ctx.Err() != nil {
			return ""
		}
		logger.Error().Err(err).Msg("language model request failed")
		return "Sorry, I'm having trouble thinking right now. Please try again in a moment."
	}
	return reply
}

// recall fetches memories relevant to the message. Failures degrade to
// an unaugmented prompt, never to a failed turn.
func (o *Orchestrator) recall(ctx context.Context, text string) string {
	records, err := o.memories.Retrieve(ctx, text, o.appCfg.MemoryResults, "")
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.FromCtx(ctx).Warn().Err(err).Msg("memory recall failed")
		}
		return ""
	}

	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, "- "+r.Content)
	}
	return strings.Join(lines, "\n")
}

// persistExchange stores the completed exchange in long-term memory.
// Best effort: it runs detached from the turn and only logs failure.
func (o *Orchestrator) persistExchange(ctx context.Context, sessionID, userMessage, reply string) {
	detached := context.WithoutCancel(ctx)
	go func() {
		saveCtx, cancel := context.WithTimeout(detached, 30*time.Second)
		defer cancel()

		if _, err := o.memories.SaveConversation(saveCtx, userMessage, reply); err != nil {
			log.FromCtx(saveCtx).Warn().
				Err(err).
				Str("session", sessionID).
				Msg("failed to persist exchange")
		}
	}()
}

// ClearSession wipes the session history and rotates its conversation id.
func (o *Orchestrator) ClearSession(sessionID string) {
	o.sessions.get(sessionID).manager.Clear()
}

// SaveSession writes the session history to disk and returns the filename.
func (o *Orchestrator) SaveSession(sessionID, filename string) (string, error) {
	return o.sessions.get(sessionID).manager.Save(filename)
}

// LoadSession replaces the session history with a saved conversation.
func (o *Orchestrator) LoadSession(sessionID, filename string) error {
	return o.sessions.get(sessionID).manager.Load(filename)
}

func (o *Orchestrator) SessionSummary(sessionID string) string {
	return o.sessions.get(sessionID).manager.Summary()
}

func (o *Orchestrator) SessionMessages(sessionID string, limit int) []core.Message {
	return o.sessions.get(sessionID).manager.Messages(limit, false)
}

// Stats aggregates memory store statistics with live session state.
func (o *Orchestrator) Stats(ctx context.Context) (Stats, error) {
	memStats, err := o.memories.Stats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("memory stats: %w", err)
	}
	return Stats{
		Memory:         memStats,
		ActiveSessions: o.sessions.count(),
	}, nil
}

type Stats struct {
	Memory         core.MemoryStats `json:"memory"`
	ActiveSessions int              `json:"active_sessions"`
}
