package plain

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// readLine reads a line from the reader, trimming line endings.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return strings.TrimRight(line, "\r\n"), io.EOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptLine prints label and returns the raw reply. EOF with no input is
// reported as io.EOF.
func promptLine(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "%s: ", label)
	line, err := readLine(reader)
	if err != nil && err != io.EOF {
		return "", err
	}
	if err == io.EOF && line == "" {
		fmt.Fprintln(out)
		return "", io.EOF
	}
	return line, nil
}

// PromptYesNo prompts for a yes/no response with a default. An empty answer
// takes the default, and input that ends first is an error wrapping io.EOF.
func PromptYesNo(reader *bufio.Reader, out io.Writer, label string, defaultYes bool) (bool, error) {
	suffix := "y/N"
	if defaultYes {
		suffix = "Y/n"
	}
	for {
		fmt.Fprintf(out, "%s [%s]: ", label, suffix)
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return false, err
		}
		line = strings.TrimSpace(strings.ToLower(line))
		if line == "" {
			if err == io.EOF {
				return false, fmt.Errorf("missing input for %s: %w", label, io.EOF)
			}
			return defaultYes, nil
		}
		switch line {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			if err == io.EOF {
				return false, fmt.Errorf("invalid response %q", line)
			}
			fmt.Fprintln(out, "Please answer yes or no.")
		}
	}
}

// parseSelection maps a comma separated list of option labels or 1-based
// numbers onto options. Numbers may also be separated by spaces.
func parseSelection(input string, options []string) ([]string, error) {
	var selected []string
	for _, token := range strings.Split(input, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if option, ok := matchOption(token, options); ok {
			selected = append(selected, option)
			continue
		}
		for _, part := range strings.Fields(token) {
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("unknown option %q", token)
			}
			if n < 1 || n > len(options) {
				return nil, fmt.Errorf("choose a number between 1 and %d", len(options))
			}
			selected = append(selected, options[n-1])
		}
	}
	return selected, nil
}

func matchOption(token string, options []string) (string, bool) {
	for _, option := range options {
		if strings.EqualFold(option, token) {
			return option, true
		}
	}
	return "", false
}
