// Package coach produces the spoken-style response to a user question,
// either grounded in retrieved knowledge (coach mode) or as a roleplay
// partner (practice mode).
package coach

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// Mode selects the response style. It is chosen once at the CLI boundary
// and passed as a typed parameter; no string sniffing.
type Mode int

const (
	// ModeCoach retrieves knowledge and answers with cited advice.
	ModeCoach Mode = iota

	// ModePractice answers in character as a roleplay partner, without
	// retrieval.
	ModePractice
)

// ParseMode converts a CLI flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "coach":
		return ModeCoach, nil
	case "practice":
		return ModePractice, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (expected coach or practice)", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeCoach:
		return "coach"
	case ModePractice:
		return "practice"
	default:
		return "unknown"
	}
}

// ContextAssembler provides the retrieved knowledge block for a query.
// Satisfied by *retrieval.Assembler.
type ContextAssembler interface {
	AssembleContext(ctx context.Context, query string) (string, error)
}

// Coach generates responses through Genkit.
type Coach struct {
	g         *genkit.Genkit
	model     string
	assembler ContextAssembler
	logger    *slog.Logger
}

// New creates a Coach. logger may be nil to use the default.
func New(g *genkit.Genkit, model string, assembler ContextAssembler, logger *slog.Logger) *Coach {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coach{g: g, model: model, assembler: assembler, logger: logger}
}

// Respond answers question in the given mode.
//
// Coach mode assembles retrieved context first; an empty context is passed
// through as-is and the model answers from general knowledge. Practice
// mode skips retrieval entirely.
func (c *Coach) Respond(ctx context.Context, question string, mode Mode) (string, error) {
	var prompt string

	switch mode {
	case ModeCoach:
		knowledgeBlock, err := c.assembler.AssembleContext(ctx, question)
		if err != nil {
			return "", fmt.Errorf("assembling context: %w", err)
		}
		prompt = coachPrompt(question, knowledgeBlock)
	case ModePractice:
		prompt = practicePrompt(question)
	default:
		return "", fmt.Errorf("unknown mode %d", mode)
	}

	resp, err := genkit.Generate(ctx, c.g,
		ai.WithModelName("googleai/"+c.model),
		ai.WithPrompt(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("generating response: %w", err)
	}

	c.logger.Debug("generated response", "mode", mode.String())
	return resp.Text(), nil
}

func coachPrompt(question, knowledgeBlock string) string {
	return fmt.Sprintf(`You are an expert communication coach.
USER QUESTION: %s

RELEVANT KNOWLEDGE:
%s

ADVICE: Provide succinct advice based on the knowledge above. Cite the source if possible.`,
		question, knowledgeBlock)
}

func practicePrompt(question string) string {
	return fmt.Sprintf("You are a roleplay partner. User said: %s. Respond in character (2 sentences max).", question)
}
