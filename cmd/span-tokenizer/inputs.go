package main

import (
	"fmt"
	"io"
	"os"
)

type input struct {
	name string
	text string
}

// readInputs reads every file argument, or stdin when there are none.
// The argument "-" also stands for stdin.
func readInputs(stdin io.Reader, args []string) ([]input, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	inputs := make([]input, 0, len(args))
	for _, arg := range args {
		if arg == "-" {
			text, err := readFromStdin(stdin)
			if err != nil {
				return nil, fmt.Errorf("reading from stdin: %w", err)
			}
			inputs = append(inputs, input{name: "<stdin>", text: text})
			continue
		}
		text, err := readFromFile(arg)
		if err != nil {
			return nil, fmt.Errorf("reading file '%s': %w", arg, err)
		}
		inputs = append(inputs, input{name: arg, text: text})
	}
	return inputs, nil
}

// readFromStdin reads all input from stdin.
func readFromStdin(stdin io.Reader) (string, error) {
	bytes, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// readFromFile reads the contents of a file.
func readFromFile(filename string) (string, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
