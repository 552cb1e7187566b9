package rag

import (
	"fmt"
	"strings"

	"github.com/poiesic/soundshelf/core"
)

// FallbackReply is shown to the user when reply generation fails outright.
const FallbackReply = "I'm having trouble reaching the language model right now. " +
	"Please check that the model service is running and try again."

const replySystemPrompt = `You are a helpful assistant for speech-language teachers.
You help them find and use teaching resources for speech sound practice.
When resources are listed in the prompt, ground your answer in them and refer
to them by title. Do not invent resources that are not listed. If no resources
are listed, answer conversationally and say that nothing in the library
matched.`

const notesSystemPrompt = `You are a helpful assistant for speech-language teachers.
You write one-line usage notes for teaching resources.`

// buildReplyPrompt assembles the user prompt for the main chat reply. The
// shortlist is briefed entry by entry so the model can ground its answer;
// prior turns are replayed before the current question.
func buildReplyPrompt(query string, history []core.ChatTurn, shortlist []*core.RankedResource) string {
	var sb strings.Builder

	if len(shortlist) > 0 {
		sb.WriteString("Relevant resources from the library:\n")
		for i, ranked := range shortlist {
			writeResourceBriefing(&sb, i+1, ranked.Resource)
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("No resources in the library matched this question.\n\n")
	}

	if len(history) > 0 {
		sb.WriteString("Conversation so far:\n")
		for _, turn := range history {
			switch turn.Speaker {
			case core.SpeakerTypeHuman:
				sb.WriteString("Teacher: ")
			case core.SpeakerTypeAI:
				sb.WriteString("Assistant: ")
			}
			sb.WriteString(turn.Contents)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Teacher: ")
	sb.WriteString(query)
	return sb.String()
}

// buildNotesPrompt assembles the user prompt asking for one numbered usage
// note per shortlisted resource, in shortlist order.
func buildNotesPrompt(query string, shortlist []*core.RankedResource) string {
	var sb strings.Builder

	sb.WriteString("The teacher asked: ")
	sb.WriteString(query)
	sb.WriteString("\n\nResources:\n")
	for i, ranked := range shortlist {
		writeResourceBriefing(&sb, i+1, ranked.Resource)
	}
	sb.WriteString("\nFor each resource above, write one usage note of at most ")
	sb.WriteString("28 words explaining how it could help with the teacher's ")
	sb.WriteString("question. Reply with a numbered list, one note per line, ")
	sb.WriteString("in the same order as the resources. No other text.")
	return sb.String()
}

// writeResourceBriefing appends a numbered one-entry briefing covering the
// fields the model needs to reason about a resource.
func writeResourceBriefing(sb *strings.Builder, position int, r *core.Resource) {
	fmt.Fprintf(sb, "%d. %s\n", position, r.Title)
	fmt.Fprintf(sb, "   Description: %s\n", r.Description)
	if r.Type != "" {
		fmt.Fprintf(sb, "   Type: %s\n", r.Type)
	}
	if r.AgeRange != "" {
		fmt.Fprintf(sb, "   Ages: %s\n", r.AgeRange)
	}
	if len(r.Tags) > 0 {
		fmt.Fprintf(sb, "   Tags: %s\n", strings.Join(r.Tags, ", "))
	}
}
