package client

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Input helpers are package vars so command tests can stub user interaction.
var (
	getSimpleText = func(r *bufio.Reader, prompt string, w io.Writer) (string, error) {
		fmt.Fprintf(w, "%s: ", prompt)
		line, err := r.ReadString('\n')
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	getIndex = func(r *bufio.Reader, prompt string, w io.Writer) (int, error) {
		text, err := getSimpleText(r, prompt, w)
		if err != nil {
			return 0, err
		}
		var n int
		if _, err := fmt.Sscanf(text, "%d", &n); err != nil {
			return 0, fmt.Errorf("not a number: %q", text)
		}
		return n, nil
	}
)
