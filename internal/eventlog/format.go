package eventlog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/agusx1211/agentwatch/internal/api"
)

// FormatDetails projects one event into human-readable detail text. The
// projection is pure and deterministic: known type tags get a dedicated
// section, unknown types fall back to the header plus the raw payload dump.
func FormatDetails(evt api.Event) string {
	return DetailHeader(evt) + "\n\npayload:\n" + payloadDump(evt.Payload)
}

// DetailHeader is FormatDetails without the trailing payload dump, for
// callers that render the payload separately (e.g. with highlighting).
func DetailHeader(evt api.Event) string {
	payload := evt.Payload
	eventType := evt.Type
	if eventType == "" {
		eventType = "unknown"
	}
	agentID := evt.AgentID
	if agentID == "" {
		agentID = "unknown"
	}

	lines := []string{
		"Event: " + eventType,
		"Agent: " + agentID,
		"Time: " + isoTime(evt.TS),
	}
	if evt.ID != nil {
		lines = append(lines, fmt.Sprintf("ID: %d", *evt.ID))
	}

	switch eventType {
	case "eval":
		lines = append(lines, "", "Evaluation")
		lines = appendField(lines, payload, "iteration")
		lines = appendField(lines, payload, "status")
		lines = appendField(lines, payload, "duration_ms")
		lines = appendField(lines, payload, "code_bytes")
		lines = appendPreview(lines, payload, "code_preview")
	case "lm_query":
		lines = append(lines, "", "Subagent Dispatch")
		lines = appendField(lines, payload, "child_agent_id")
		lines = appendField(lines, payload, "model_size")
		lines = appendField(lines, payload, "assessment_sampled")
		lines = appendField(lines, payload, "text_bytes")
		lines = appendField(lines, payload, "text_chars")
		lines = appendPreview(lines, payload, "query_preview")
	case "llm":
		lines = append(lines, "", "Raw LLM Dispatch")
		lines = appendField(lines, payload, "iteration")
		lines = appendField(lines, payload, "model")
		lines = appendField(lines, payload, "status")
		lines = appendField(lines, payload, "duration_ms")
		lines = appendField(lines, payload, "message_count")
		lines = appendField(lines, payload, "context_chars")
		lines = append(lines, "request_tail (delta context):")
		lines = append(lines, indentLines(formatRequestTail(payload), "  "))
	case "survey_requested":
		lines = append(lines, "", "Survey Requested")
		lines = appendField(lines, payload, "survey_id")
		lines = appendField(lines, payload, "child_agent_id")
		lines = appendField(lines, payload, "scope")
		lines = appendField(lines, payload, "required")
		lines = appendField(lines, payload, "question")
	case "survey_answered":
		lines = append(lines, "", "Survey Answered")
		lines = appendField(lines, payload, "survey_id")
		lines = appendField(lines, payload, "child_agent_id")
		lines = appendField(lines, payload, "scope")
		lines = appendField(lines, payload, "response")
		lines = appendField(lines, payload, "reason")
	case "survey_missing":
		lines = append(lines, "", "Survey Missing")
		lines = appendField(lines, payload, "survey_id")
		lines = appendField(lines, payload, "child_agent_id")
		lines = appendField(lines, payload, "scope")
		lines = appendField(lines, payload, "status")
	}

	return strings.Join(lines, "\n")
}

// PayloadJSON returns the pretty-printed payload dump on its own, for
// callers that want to style it separately from the header text.
func PayloadJSON(payload map[string]any) string {
	return payloadDump(payload)
}

func payloadDump(payload map[string]any) string {
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", payload)
	}
	return string(data)
}

func isoTime(ts int64) string {
	if ts <= 0 {
		return "unknown"
	}
	return time.UnixMilli(ts).UTC().Format("2006-01-02T15:04:05.000Z")
}

func appendField(lines []string, payload map[string]any, field string) []string {
	v, ok := payload[field]
	if !ok || v == nil {
		return lines
	}
	return append(lines, fmt.Sprintf("%s: %v", field, v))
}

func appendPreview(lines []string, payload map[string]any, field string) []string {
	v, ok := payload[field]
	if !ok || v == nil {
		return lines
	}
	text, _ := v.(string)
	if text == "" {
		return lines
	}
	lines = append(lines, field+":")
	return append(lines, indentLines(text, "  "))
}

func indentLines(text, prefix string) string {
	parts := strings.Split(text, "\n")
	for i := range parts {
		parts[i] = prefix + parts[i]
	}
	return strings.Join(parts, "\n")
}

// formatRequestTail renders the llm event's trailing request context: a
// numbered list of role-tagged previews, or a "(not captured)" marker.
func formatRequestTail(payload map[string]any) string {
	tail, _ := payload["request_tail"].([]any)
	if len(tail) == 0 {
		return "  (not captured)"
	}

	entries := make([]string, 0, len(tail))
	for i, item := range tail {
		entry, _ := item.(map[string]any)
		role := "unknown"
		if r, ok := entry["role"].(string); ok && r != "" {
			role = r
		}
		chars := "?"
		if c, ok := entry["chars"].(float64); ok {
			chars = fmt.Sprintf("%v", c)
		}
		preview := ""
		if p, ok := entry["preview"].(string); ok {
			preview = p
		}
		entries = append(entries, fmt.Sprintf("%d. [%s] (%s chars)\n%s",
			i+1, role, chars, indentLines(preview, "   ")))
	}
	return strings.Join(entries, "\n\n")
}
