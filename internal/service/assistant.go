package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_assistant.go -package=mocks -mock_names=Assistant=MockAssistant github.com/Sadra-Dezdar/IBGPT/internal/service Assistant

import (
	"context"
	"fmt"

	"github.com/Sadra-Dezdar/IBGPT/internal/classify"
	"github.com/Sadra-Dezdar/IBGPT/internal/collections"
	"github.com/Sadra-Dezdar/IBGPT/internal/contextutil"
	"github.com/Sadra-Dezdar/IBGPT/internal/llm"
	"github.com/Sadra-Dezdar/IBGPT/internal/retrieval"
)

const (
	classifierSystemPrompt = "You are a query router for IB student questions. " +
		"Classify the query and return a JSON object with keys: " +
		"query_type (general_info, ia_feedback or exam_question), subject, level (HL or SL), search_terms."

	answerSystemPrompt = "You are an expert IB educator. Use the provided context " +
		"to give accurate, helpful responses following IB standards. If the context " +
		"does not contain relevant information, say so rather than inventing sources."
)

// ChatClient is the surface of the LLM layer the assistant consumes.
type ChatClient interface {
	Chat(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// ContextSearcher runs the cross-collection retrieval. Satisfied by
// *retrieval.Retriever.
type ContextSearcher interface {
	SearchAll(ctx context.Context, collections []string, query string, filter retrieval.MetadataFilter, perCollection, topK int) ([]retrieval.ScoredDocument, error)
}

// AskRequest is a student question.
type AskRequest struct {
	Question string
}

// Reference is the provenance of one context document used in the answer.
type Reference struct {
	Source    string  `json:"source,omitempty"`
	Subject   string  `json:"subject,omitempty"`
	Section   string  `json:"section,omitempty"`
	Relevance float64 `json:"relevance"`
}

// AskResponse is the assistant's answer along with how the query was
// understood and what context backed the answer.
type AskResponse struct {
	Answer     string
	QueryType  string
	Subject    string
	Level      string
	References []Reference
}

// Assistant answers student questions through the classify-retrieve-generate-
// refine pipeline.
type Assistant interface {
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// Models names the model for each agent role.
type Models struct {
	Classifier string
	Answer     string
	Refiner    string
}

// assistant implements Assistant.
type assistant struct {
	chat     ChatClient
	searcher ContextSearcher
	models   Models
}

// NewAssistant creates the query pipeline service.
func NewAssistant(chat ChatClient, searcher ContextSearcher, models Models) Assistant {
	return &assistant{
		chat:     chat,
		searcher: searcher,
		models:   models,
	}
}

// Ask runs the full pipeline. Every model-facing stage degrades gracefully: a
// failed classifier falls back to keyword classification, failed retrieval
// leaves the generation step to answer without context, a failed generation
// yields a degraded answer that still goes through the refiner, and a failed
// refiner returns the unrefined answer. Only input validation and cancellation
// surface as errors.
func (a *assistant) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.Question == "" {
		logger.WarnContext(ctx, "empty question in ask request")
		return AskResponse{}, &ValidationError{
			Field:   "question",
			Message: "cannot be empty",
		}
	}

	// Step 1: classify. Never fails; any model trouble means keyword fallback.
	classification := a.classifyQuery(ctx, req.Question)
	logger.InfoContext(ctx, "query classified",
		"query_type", classification.QueryType,
		"subject", classification.Subject,
		"level", classification.Level,
	)

	// Step 2: retrieve context from the routed collections.
	filter := retrieval.BuildFilter(classification.Subject, classification.Level, "")
	routed := collections.Route(classification)

	docs, err := a.searcher.SearchAll(ctx, routed, req.Question, filter, 0, retrieval.DefaultTopK)
	if err != nil {
		// SearchAll only errors on cancellation; a cancelled query produces
		// no answer.
		return AskResponse{}, fmt.Errorf("retrieval cancelled: %w", err)
	}

	block := retrieval.BuildContextBlock(docs)
	contextText := block.Render()
	logger.InfoContext(ctx, "context assembled", "documents", len(block.Entries), "context_length", len(contextText))

	// Step 3: generate the answer with the retrieved context. A failed
	// generation degrades to an apology answer, which still goes through the
	// refiner; only cancellation aborts.
	answer, err := a.chat.Chat(ctx, []llm.Message{
		{Role: "system", Content: answerSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("%s\n\n%s", req.Question, contextText)},
	}, llm.ChatParams{Model: a.models.Answer, Temperature: 0.7})
	if err != nil {
		if ctx.Err() != nil {
			return AskResponse{}, fmt.Errorf("answer generation cancelled: %w", ctx.Err())
		}
		logger.WarnContext(ctx, "answer generation failed, returning degraded answer", "error", err)
		answer = fmt.Sprintf("I encountered an error processing your query: %v", err)
	}

	// Step 4: refine. A refiner failure returns the unrefined answer.
	refined, err := a.chat.Chat(ctx, []llm.Message{
		{Role: "system", Content: "Review and refine responses for accuracy and clarity."},
		{Role: "user", Content: fmt.Sprintf("Review and refine this response:\n%s\n\nOriginal query: %s", answer, req.Question)},
	}, llm.ChatParams{Model: a.models.Refiner, Temperature: 0.7})
	if err != nil {
		logger.WarnContext(ctx, "refinement failed, returning unrefined answer", "error", err)
		refined = answer
	}

	references := make([]Reference, 0, len(block.Entries))
	for _, entry := range block.Entries {
		references = append(references, Reference{
			Source:    entry.Source,
			Subject:   entry.Subject,
			Section:   entry.Section,
			Relevance: entry.Relevance,
		})
	}

	logger.InfoContext(ctx, "ask request processed",
		"question_length", len(req.Question),
		"references", len(references),
		"answer_length", len(refined),
	)
	return AskResponse{
		Answer:     refined,
		QueryType:  string(classification.QueryType),
		Subject:    classification.Subject,
		Level:      classification.Level,
		References: references,
	}, nil
}

// classifyQuery asks the classifier model for a structured classification and
// falls back to the deterministic keyword classifier when the model is
// unreachable or its output cannot be parsed.
func (a *assistant) classifyQuery(ctx context.Context, question string) classify.Classification {
	logger := contextutil.LoggerFromContext(ctx)

	output, err := a.chat.Chat(ctx, []llm.Message{
		{Role: "system", Content: classifierSystemPrompt},
		{Role: "user", Content: question},
	}, llm.ChatParams{Model: a.models.Classifier})
	if err != nil {
		logger.WarnContext(ctx, "classifier model unavailable, using keyword fallback", "error", err)
		return classify.Fallback(question)
	}

	classification, err := classify.ParseModelOutput(question, output)
	if err != nil {
		logger.WarnContext(ctx, "classifier output unusable, using keyword fallback", "error", err)
		return classify.Fallback(question)
	}
	return classification
}
