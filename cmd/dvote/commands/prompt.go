package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var errNotTerminal = errors.New("stdin is not a terminal: pass the value with a flag")

// readSecret prompts on stderr and reads a line without echo.
func readSecret(prompt string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errNotTerminal
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	defer clear(raw)
	if len(raw) == 0 {
		return "", errors.New("input cannot be empty")
	}
	return string(raw), nil
}

// getPassphrase returns the -p flag or prompts for it.
func getPassphrase(confirm bool) (string, error) {
	if passphrase != "" {
		return passphrase, nil
	}
	p, err := readSecret("Passphrase: ")
	if err != nil {
		return "", err
	}
	if confirm {
		again, err := readSecret("Repeat passphrase: ")
		if err != nil {
			return "", err
		}
		if again != p {
			return "", errors.New("passphrases do not match")
		}
	}
	return p, nil
}

// readArgOrStdin returns args[i] when present, "-" meaning stdin. Without the
// argument the value is read from stdin too.
func readArgOrStdin(in io.Reader, args []string, i int) (string, error) {
	if i < len(args) && args[i] != "-" {
		return args[i], nil
	}
	b, err := io.ReadAll(bufio.NewReader(in))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

// readFileArgOrStdin reads the file named by args[0], or stdin for "-" or no
// argument.
func readFileArgOrStdin(in io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		return readArgOrStdin(in, nil, 0)
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(b), nil
}
