package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/aidanlsb/jot/internal/ui"
)

type confirmAnswer int

const (
	answerInvalid confirmAnswer = iota
	answerYes
	answerNo
)

// promptForConfirm prints message and reads one line from the app's input.
// Only "y"/"yes" confirm and only "n"/"no" decline, case-insensitively;
// anything else, including end of input, is invalid.
func promptForConfirm(a *App, message string) confirmAnswer {
	fmt.Fprintf(a.Out, "%s %s ", message, ui.Hint("(y/n):"))

	reader := bufio.NewReader(a.In)
	response, _ := reader.ReadString('\n')
	fmt.Fprintln(a.Out)

	return parseConfirmAnswer(response)
}

func parseConfirmAnswer(response string) confirmAnswer {
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return answerYes
	case "n", "no":
		return answerNo
	default:
		return answerInvalid
	}
}

// confirmDestructive asks before a destructive change. skip is the value of
// --yes. JSON output never prompts, so it requires --yes.
func confirmDestructive(a *App, skip bool, message string) (confirmAnswer, error) {
	if skip {
		return answerYes, nil
	}
	if a.JSON {
		return answerNo, handleErrorMsg(a, ErrConfirmationRequired,
			"confirmation required", "Re-run with --yes to confirm")
	}
	return promptForConfirm(a, message), nil
}
