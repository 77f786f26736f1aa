package router

import (
	"fmt"
	"strings"
)

const (
	finalAnswerMarker = "Final Answer:"
	actionMarker      = "Action:"
	actionInputMarker = "Action Input:"
	observationMarker = "Observation:"
)

type parsed struct {
	final   bool
	answer  string
	thought string
	tool    string
	input   string
}

// cutObservation drops anything the model generated at or after its own
// observation, in case the vendor ignored the stop sequence.
func cutObservation(out string) string {
	if i := strings.Index(out, observationMarker); i >= 0 {
		return out[:i]
	}
	return strings.TrimSuffix(out, "\nObservation")
}

// parse the model output of one step. A 'Final Answer:' starting a line
// before any 'Action:' makes the output final. A 'Final Answer:' mentioned in
// prose only counts when there's no action at all.
func parse(out string) (parsed, error) {
	actionIdx := strings.Index(out, actionMarker)
	finalIdx := lineIndex(out, finalAnswerMarker)
	if finalIdx < 0 && actionIdx < 0 {
		finalIdx = strings.Index(out, finalAnswerMarker)
	}

	if finalIdx >= 0 && (actionIdx < 0 || finalIdx < actionIdx) {
		body := out
		if actionIdx > finalIdx {
			body = out[:actionIdx]
		}
		last := strings.LastIndex(body, finalAnswerMarker)
		return parsed{
			final:   true,
			answer:  strings.TrimSpace(body[last+len(finalAnswerMarker):]),
			thought: strings.TrimSpace(out[:finalIdx]),
		}, nil
	}
	if actionIdx < 0 {
		return parsed{}, &ParseError{
			Reason: "Invalid Format: Missing 'Action:' after 'Thought:'",
			Output: out,
		}
	}

	rest := out[actionIdx+len(actionMarker):]
	inputIdx := strings.Index(rest, actionInputMarker)
	if inputIdx < 0 {
		return parsed{}, &ParseError{
			Reason: "Invalid Format: Missing 'Action Input:' after 'Action:'",
			Output: out,
		}
	}
	tool := strings.TrimSpace(rest[:inputIdx])
	input := rest[inputIdx+len(actionInputMarker):]
	// The action won, a trailing hallucinated answer is not part of the input
	if i := strings.Index(input, finalAnswerMarker); i >= 0 {
		input = input[:i]
	}
	return parsed{
		thought: strings.TrimSpace(out[:actionIdx]),
		tool:    tool,
		input:   cleanInput(input),
	}, nil
}

// lineIndex of the first marker which starts a line, indentation aside.
func lineIndex(s, marker string) int {
	off := 0
	for {
		i := strings.Index(s[off:], marker)
		if i < 0 {
			return -1
		}
		i += off
		lineStart := strings.LastIndex(s[:i], "\n") + 1
		if strings.TrimSpace(s[lineStart:i]) == "" {
			return i
		}
		off = i + len(marker)
	}
}

// cleanInput strips whitespace, quotes and markdown code fences.
func cleanInput(in string) string {
	s := strings.TrimSpace(in)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// drop the language tag, if any
		if nl := strings.Index(s, "\n"); nl >= 0 && !strings.ContainsAny(s[:nl], "()=+*/") {
			s = s[nl+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	s = strings.TrimSpace(s)
	for _, q := range []string{`"`, "'", "`"} {
		if len(s) >= 2 && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			s = s[len(q) : len(s)-len(q)]
		}
	}
	return strings.TrimSpace(s)
}

func unknownToolError(tool string, names []string, out string) *ParseError {
	return &ParseError{
		Reason: fmt.Sprintf("%v is not a valid tool, try one of [%v].", tool, strings.Join(names, ", ")),
		Output: out,
	}
}
