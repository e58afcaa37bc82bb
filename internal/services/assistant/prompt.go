package assistant

import (
	"pauz-backend/internal/models"
	"pauz-backend/internal/utils"
)

const personaPreamble = "You're a warm, friendly journaling buddy. " +
	"Respond like a real friend - casual, supportive, maybe a little playful. " +
	"Use contractions and keep it to 1-2 sentences. " +
	"Always guide them toward journaling in a natural way: free writing, guided prompts, or mood tracking."

// promptBuilder folds recent conversation turns into a provider prompt.
type promptBuilder struct {
	pool *utils.BufferPool
}

func newPromptBuilder() *promptBuilder {
	return &promptBuilder{pool: utils.NewBufferPool()}
}

// Build assembles the prompt: persona, recent turns, then the new input.
// Only recent turns go in; older context dilutes the reply.
func (b *promptBuilder) Build(history []models.ConversationTurn, input string) string {
	buf := b.pool.Get()
	defer b.pool.Put(buf)

	buf.WriteString(personaPreamble)
	buf.WriteString("\n\n")

	if len(history) > 0 {
		buf.WriteString("Recent conversation:\n")
		for _, turn := range history {
			if turn.Role == models.RoleUser {
				buf.WriteString("Them: ")
			} else {
				buf.WriteString("You: ")
			}
			buf.WriteString(turn.Content)
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
	}

	buf.WriteString("They just said: \"")
	buf.WriteString(input)
	buf.WriteString("\"\n\nYour reply:")

	return buf.String()
}
