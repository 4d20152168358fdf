package source

import (
	"bufio"
	"io"
	"strings"
)

// Prompt is written before each line is read from the console
const Prompt = "Enter message: "

// Console reads one message per line
type Console struct {
	sc       *bufio.Scanner
	prompt   io.Writer
	sentinel string
}

// NewConsole creates a Console that reads lines from in. The Prompt is written on prompt before
// each read unless prompt is nil. A line equal to sentinel ends the input.
func NewConsole(in io.Reader, prompt io.Writer, sentinel string) *Console {
	return &Console{sc: bufio.NewScanner(in), prompt: prompt, sentinel: sentinel}
}

// Next returns the next line as a message. The line terminator is not included.
func (c *Console) Next() (Message, error) {
	if c.prompt != nil {
		_, _ = io.WriteString(c.prompt, Prompt)
	}
	if !c.sc.Scan() {
		err := c.sc.Err()
		if err == nil {
			err = io.EOF
		}
		return Message{}, err
	}
	line := strings.TrimSuffix(c.sc.Text(), "\r")
	if line == c.sentinel {
		return Message{}, io.EOF
	}
	return Message{Payload: []byte(line)}, nil
}
