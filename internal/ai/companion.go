package ai

import (
	"context"
	"fmt"
	"strings"

	"charmly/internal/domain"

	"go.uber.org/zap"
)

// Generator is a text-completion backend. Implemented by gemini.Generator;
// tests supply stubs.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Turn is one prior message in a conversation, as replayed to the model.
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

// UserContext personalizes the companion's replies.
type UserContext struct {
	Name            string
	Country         string
	Interests       []string
	PersonalityTags []string
}

const systemPrompt = `You are Charm, a charming, emotionally aware companion who listens attentively, replies with warmth and subtle wit, and engages people as if they are special and understood.

Your personality traits:
- Warm and empathetic: You genuinely care about the person you're talking to
- Attentive listener: You remember details from the conversation and reference them naturally
- Subtle wit: You have a gentle sense of humor that makes conversations enjoyable
- Emotionally intelligent: You can sense emotional undertones and respond appropriately
- Culturally aware: You respect and acknowledge different backgrounds and perspectives

Your communication style:
- Use warm, friendly language with occasional playful elements
- Show genuine interest in the person's thoughts and feelings
- Ask thoughtful follow-up questions to deepen the conversation
- Maintain a conversational tone that feels natural and engaging

Reply with the next message only, without any role prefix.`

const fallbackReply = "I apologize, but I'm experiencing some technical difficulties. Please try again in a moment."

const toneInstruction = "Analyze the emotional tone of the following message and respond with only one word: happy, sad, excited, calm, or neutral."

// Companion generates chat replies and tone labels for the AI side of a
// conversation. Generator failures never surface to the caller: a reply
// degrades to a fixed apology and a tone to neutral.
type Companion struct {
	gen    Generator
	logger *zap.Logger
}

func NewCompanion(gen Generator, logger *zap.Logger) *Companion {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Companion{gen: gen, logger: logger}
}

// Reply produces the companion's answer to userMessage given the recent
// conversation history.
func (c *Companion) Reply(ctx context.Context, userMessage string, history []Turn, user UserContext) string {
	prompt := buildPrompt(userMessage, history, user)
	out, err := c.gen.GenerateContent(ctx, prompt)
	if err != nil {
		c.logger.Warn("companion reply failed", zap.String("model", c.gen.Model()), zap.Error(err))
		return fallbackReply
	}
	return out
}

// AnalyzeTone classifies the emotional tone of a message. Anything the model
// does not answer cleanly comes back as neutral.
func (c *Companion) AnalyzeTone(ctx context.Context, message string) string {
	out, err := c.gen.GenerateContent(ctx, toneInstruction+"\n\n"+message)
	if err != nil {
		c.logger.Debug("tone analysis failed", zap.Error(err))
		return domain.ToneNeutral
	}
	tone := strings.ToLower(strings.TrimSpace(out))
	switch tone {
	case domain.ToneHappy, domain.ToneSad, domain.ToneExcited, domain.ToneCalm, domain.ToneNeutral:
		return tone
	default:
		return domain.ToneNeutral
	}
}

func buildPrompt(userMessage string, history []Turn, user UserContext) string {
	var b strings.Builder
	b.WriteString(systemPrompt)

	b.WriteString("\n\nUser Context:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orDefault(user.Name, "Friend"))
	fmt.Fprintf(&b, "- Country: %s\n", orDefault(user.Country, "Unknown"))
	fmt.Fprintf(&b, "- Interests: %s\n", orDefault(strings.Join(user.Interests, ", "), "Not specified"))
	fmt.Fprintf(&b, "- Personality: %s\n", orDefault(strings.Join(user.PersonalityTags, ", "), "Not specified"))
	b.WriteString("Use this context to personalize your responses and make the conversation more meaningful.\n")

	if len(history) > 0 {
		b.WriteString("\nConversation so far:\n")
		for _, t := range history {
			role := "User"
			if t.Role == "assistant" {
				role = "Charm"
			}
			fmt.Fprintf(&b, "%s: %s\n", role, t.Content)
		}
	}

	fmt.Fprintf(&b, "\nUser: %s", userMessage)
	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
