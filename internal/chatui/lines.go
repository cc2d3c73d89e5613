package chatui

import (
	"bufio"
	"fmt"
	"io"
)

// RunLines answers one question per input line until EOF. It is used when
// stdin is not a terminal.
func RunLines(conv *Conversation, r io.Reader, w io.Writer) error {
	if _, err := fmt.Fprintln(w, conv.Messages()[0].Text); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		reply, ok := conv.Ask(scanner.Text())
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(w, reply.Text); err != nil {
			return err
		}
	}
	return scanner.Err()
}
