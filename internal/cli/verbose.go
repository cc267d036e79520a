package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"engage/internal/pager"
	"engage/internal/quiz"
)

const verbosePrefix = "[verbose]"

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiGray  = "\x1b[90m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
)

type verboseStyle int

const (
	styleDefault verboseStyle = iota
	styleQuiz
	styleSection
	styleError
)

func logVerbose(enabled bool, writer io.Writer, noColor bool, style verboseStyle, format string, args ...any) {
	if !enabled || writer == nil {
		return
	}
	palette := paletteFor(writer, noColor)
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(writer, "%s %s\n", palette.prefix(verbosePrefix), palette.apply(style, line))
}

// verboseLogger reports each section before handing it to the next logger.
type verboseLogger struct {
	next    pager.Logger
	writer  io.Writer
	noColor bool
}

func (v verboseLogger) Log(ctx context.Context, entry pager.Entry) error {
	logVerbose(true, v.writer, v.noColor, styleSection, "section %s quiz=%s attempt=%s keys=%s",
		entry.Section, entry.QuizID, entry.AttemptID, formatPayloadKeys(entry.Payload))
	if err := v.next.Log(ctx, entry); err != nil {
		logVerbose(true, v.writer, v.noColor, styleError, "section %s failed: %v", entry.Section, err)
		return err
	}
	return nil
}

func formatPayloadKeys(payload map[string]any) string {
	if len(payload) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

func formatAnswerCounts(answers quiz.Answers) string {
	if len(answers) == 0 {
		return "none"
	}
	ids := answers.IDs()
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		value := answers[id]
		size := value.Len()
		if !value.IsMulti() {
			size = utf8.RuneCountInString(value.String())
		}
		parts = append(parts, fmt.Sprintf("%s=%d", id, size))
	}
	return strings.Join(parts, " ")
}

type verbosePalette struct {
	enabled bool
}

func paletteFor(writer io.Writer, noColor bool) verbosePalette {
	if noColor {
		return verbosePalette{enabled: false}
	}
	return verbosePalette{enabled: shouldUseStyling(writer)}
}

func shouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	return isTerminal(unwrapWriter(writer))
}

func (p verbosePalette) prefix(text string) string {
	if !p.enabled {
		return text
	}
	return ansiDim + ansiGray + text + ansiReset
}

func (p verbosePalette) apply(style verboseStyle, text string) string {
	if !p.enabled {
		return text
	}
	switch style {
	case styleQuiz:
		return ansiBold + ansiBlue + text + ansiReset
	case styleSection:
		return ansiBold + ansiGreen + text + ansiReset
	case styleError:
		return ansiBold + ansiRed + text + ansiReset
	default:
		return text
	}
}
