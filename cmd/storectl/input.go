package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var readPassword = term.ReadPassword

// getPassword prompts on w and reads the password from the terminal with
// echo disabled.
func getPassword(w io.Writer) ([]byte, error) {
	fmt.Fprint(w, "Enter temporary password: ")
	password, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return password, nil
}
