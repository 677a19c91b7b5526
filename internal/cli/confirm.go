package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// confirmPrompt asks the user to confirm before destructively editing
// files in place, unless --yes was passed. Reads the y/N answer
// through a liner.State rather than a bare bufio.Scanner so the
// prompt gets line editing for free, matching the interactive-prompt
// pattern the teacher already carries a dependency for (its sloty
// REPL). A package-level variable rather than a plain function so
// tests can substitute a canned answer without a real terminal.
var confirmPrompt = func(prompt string) (bool, error) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	answer, err := line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return false, nil
		}

		return false, err
	}

	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes", nil
}
