// Package pipeline drives a natural-language question through entity
// extraction, Cypher synthesis, query execution, and answer presentation
// against the Internet Yellow Pages graph.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/JustinLoye/network-agents/internal/examples"
	"github.com/JustinLoye/network-agents/internal/iyp"
	"github.com/JustinLoye/network-agents/internal/llm"
	"github.com/JustinLoye/network-agents/internal/prompt"
	"github.com/JustinLoye/network-agents/internal/schema"
	"github.com/JustinLoye/network-agents/internal/types"
	"github.com/JustinLoye/network-agents/internal/vocab"
)

// DefaultTopK is the number of few-shot examples injected into the Cypher
// synthesis prompt.
const DefaultTopK = 5

// Pipeline is the three-stage retrieval chain. It is safe for concurrent
// use; each Run gets its own session.
type Pipeline struct {
	provider llm.Provider
	schema   *schema.Schema
	vocab    *vocab.Vocabulary
	selector *examples.Selector
	executor iyp.Executor
	logger   *slog.Logger
	tracer   trace.Tracer
	topK     int
}

// Option adjusts pipeline construction.
type Option func(*Pipeline)

// WithTopK overrides the few-shot example count.
func WithTopK(topK int) Option {
	return func(p *Pipeline) { p.topK = topK }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// New assembles a pipeline from its stage dependencies.
func New(provider llm.Provider, s *schema.Schema, v *vocab.Vocabulary, selector *examples.Selector, executor iyp.Executor, opts ...Option) *Pipeline {
	p := &Pipeline{
		provider: provider,
		schema:   s,
		vocab:    v,
		selector: selector,
		executor: executor,
		logger:   slog.Default(),
		tracer:   otel.Tracer("pipeline"),
		topK:     DefaultTopK,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RunOption adjusts a single run.
type RunOption func(*runOptions)

type runOptions struct {
	raw bool
}

// Raw stops after query execution and returns the normalized records
// without the presentation stage.
func Raw() RunOption {
	return func(o *runOptions) { o.raw = true }
}

// Run processes one question. The returned session always reflects how far
// the run got; on error its State is StateFailed and Err is set to the
// same error.
func (p *Pipeline) Run(ctx context.Context, userQuery string, opts ...RunOption) (*Session, error) {
	var options runOptions
	for _, opt := range opts {
		opt(&options)
	}

	sess := newSession(userQuery)
	ctx, span := p.tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(attribute.String("session.id", sess.ID)))
	defer span.End()

	if err := p.extractEntities(ctx, sess); err != nil {
		span.RecordError(err)
		return sess.fail(err), err
	}
	p.logger.Debug("entities extracted", "session", sess.ID, "entities", sess.Entities)

	if err := p.synthesizeQuery(ctx, sess); err != nil {
		span.RecordError(err)
		return sess.fail(err), err
	}
	p.logger.Debug("query synthesized", "session", sess.ID, "query", sess.CypherQuery)

	if err := p.executeQuery(ctx, sess); err != nil {
		span.RecordError(err)
		return sess.fail(err), err
	}
	p.logger.Debug("query executed", "session", sess.ID, "rows", len(sess.Records))

	if options.raw {
		sess.State = StateDone
		return sess, nil
	}

	if err := p.present(ctx, sess); err != nil {
		span.RecordError(err)
		return sess.fail(err), err
	}

	sess.State = StateDone
	return sess, nil
}

// extractEntities asks the model for the entity labels involved in the
// question and validates them against the closed vocabulary.
func (p *Pipeline) extractEntities(ctx context.Context, sess *Session) error {
	sess.State = StateExtractingEntities
	ctx, span := p.tracer.Start(ctx, "pipeline.extract_entities")
	defer span.End()

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			llm.NewSystemMessage(prompt.EntityExtraction(p.vocab)),
			llm.NewUserMessage(sess.UserQuery),
		},
	})
	if err != nil {
		return types.WrapError(types.ENTITY_EXTRACTION_FAILED, "completion failed", err)
	}

	entities, err := llm.ParseStringList(resp.Message.Content)
	if err != nil {
		return types.WrapError(types.ENTITY_EXTRACTION_FAILED, "cannot parse entity list", err)
	}
	if len(entities) == 0 {
		return types.NewError(types.ENTITY_EXTRACTION_FAILED, "no entities extracted")
	}
	if unknown := p.vocab.Validate(entities); len(unknown) > 0 {
		return types.NewError(types.ENTITY_EXTRACTION_FAILED,
			fmt.Sprintf("labels outside vocabulary: %s", strings.Join(unknown, ", ")))
	}

	span.SetAttributes(attribute.StringSlice("entities", entities))
	sess.Entities = entities
	return nil
}

// synthesizeQuery builds the schema-grounded prompt and asks the model for
// a single Cypher statement.
func (p *Pipeline) synthesizeQuery(ctx context.Context, sess *Session) error {
	sess.State = StateSynthesizingQuery
	ctx, span := p.tracer.Start(ctx, "pipeline.synthesize_query")
	defer span.End()

	shots, err := p.selector.Select(sess.Entities, p.topK)
	if err != nil {
		return types.WrapError(types.QUERY_SYNTHESIS_FAILED, "example selection failed", err)
	}

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			llm.NewSystemMessage(prompt.CypherSynthesis(p.vocab, p.schema, sess.Entities, shots)),
			llm.NewUserMessage(sess.UserQuery),
		},
	})
	if err != nil {
		return types.WrapError(types.QUERY_SYNTHESIS_FAILED, "completion failed", err)
	}

	query := strings.TrimSpace(resp.Text())
	if query == "" {
		return types.NewError(types.QUERY_SYNTHESIS_FAILED, "empty query from model")
	}

	sess.CypherQuery = query
	return nil
}

// executeQuery runs the synthesized statement against IYP.
func (p *Pipeline) executeQuery(ctx context.Context, sess *Session) error {
	sess.State = StateExecutingQuery
	ctx, span := p.tracer.Start(ctx, "pipeline.execute_query")
	defer span.End()

	records, err := p.executor.Execute(ctx, sess.CypherQuery)
	if err != nil {
		p.logger.Warn("query failed", "session", sess.ID, "query", sess.CypherQuery, "error", err)
		return err
	}

	span.SetAttributes(attribute.Int("rows", len(records)))
	sess.Records = records
	return nil
}

// present turns the raw rows into a readable answer.
func (p *Pipeline) present(ctx context.Context, sess *Session) error {
	sess.State = StatePresenting
	ctx, span := p.tracer.Start(ctx, "pipeline.present")
	defer span.End()

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			llm.NewSystemMessage(prompt.Presenter(p.vocab, sess.Entities)),
			llm.NewUserMessage(prompt.PresenterInput(sess.UserQuery, sess.CypherQuery, sess.Records)),
		},
	})
	if err != nil {
		return types.WrapError(types.PRESENTATION_FAILED, "completion failed", err)
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return types.NewError(types.PRESENTATION_FAILED, "empty answer from model")
	}

	sess.Answer = answer
	return nil
}
