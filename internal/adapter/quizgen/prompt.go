package quizgen

import (
	"fmt"
	"strings"
)

const systemInstructionTemplate = `
You are an expert AI consultant creating a high-quality quiz for company executives and management.
Create a set of multiple-choice questions specifically focusing on the following categories:

%s

**Requirements:**
- The target audience is **Management Executives**. The questions should be practical but strictly check their knowledge.
- **Strictly output in %s.**
- Ensure the "correctAnswerIndex" is 0-based.
- Ensure there are exactly 4 options per question.
- Respond with a single JSON array and nothing else. Every element must have the fields
  "id" (integer), "text" (string), "options" (array of 4 strings),
  "correctAnswerIndex" (integer 0-3) and "explanation" (string, why the answer is correct).
`

// topicDetails expands the default topics with the guidance the quiz was
// designed around. Topics without an entry are listed by name only.
var topicDetails = map[string]string{
	"AI Terminology": `Deeply test understanding of key terms like LLM, RAG, Fine-tuning, Token, Temperature, Zero-shot prompting, Hallucination, Multimodal, Agent, etc.
   Explain what they mean in a business or practical context.`,
	"AI Tool Usage": `Practical application of specific tools, e.g. when to use Midjourney vs. Stable Diffusion, the specific strengths of Claude vs. GPT-4o, what GitHub Copilot is best for, how to use Gemini for data analysis.
   Focus on distinct features and best use cases for productivity.`,
	"AI Industry Information & Trends": `Major industry moves (e.g. the Microsoft/OpenAI partnership, Google DeepMind updates, Anthropic).
   Enterprise adoption trends, regulatory landscape (EU AI Act basics) and major tech company strategies.
   Recent significant AI news.`,
}

func buildSystemInstruction(topics []string, language string) string {
	var b strings.Builder
	for i, topic := range topics {
		fmt.Fprintf(&b, "%d. **%s**", i+1, topic)
		if detail, ok := topicDetails[topic]; ok {
			fmt.Fprintf(&b, ":\n   %s", detail)
		}
		b.WriteString("\n")
	}
	return fmt.Sprintf(systemInstructionTemplate, strings.TrimRight(b.String(), "\n"), language)
}

func buildUserPrompt(count int, topics []string, language string) string {
	return fmt.Sprintf(
		"Generate %d difficult and practical AI knowledge questions for managers in %s. Focus strictly on %s.",
		count, language, strings.Join(topics, ", "))
}
