package gateway

import (
	"fmt"
	"strings"

	"vidsum/pkg/summary"
)

const basePrompt = `You are an AI assistant skilled at breaking down complex videos into easy-to-follow steps.

The user will either upload a video or provide a video link. Your task is to:

1. Analyze the content of the provided video or link.
2. Identify and summarize the main topic.
3. Break it down into clear, easy-to-understand steps.
4. Use beginner-friendly language to explain each step.
5. Give answers using visually attractive emojis/logos (like 🧠, 📘, ➤, 💡, etc.).
6. Add helpful tips or short explanations wherever necessary.
`

const closingPrompt = `
Make sure the output is simple enough for someone with no prior knowledge to follow.
`

// BuildPrompt returns the instruction text sent with every video. English (or
// an empty name) adds no language constraint.
func BuildPrompt(languageName string) string {
	var b strings.Builder
	b.WriteString(basePrompt)

	name := strings.TrimSpace(languageName)
	if !summary.IsDefaultLanguage(name) {
		fmt.Fprintf(&b, "7. You are a multilingual AI assistant. You MUST respond in %s language only.\n", name)
		fmt.Fprintf(&b, "\nRespond in %s.\n", name)
	}

	b.WriteString(closingPrompt)
	return b.String()
}

// withVideoLink appends the link for providers that only accept text.
func withVideoLink(prompt, sourceReference string) string {
	return prompt + "\nVideo link: " + sourceReference + "\n"
}
