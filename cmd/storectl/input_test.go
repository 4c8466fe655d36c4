package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGetPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("s3cret"), nil
	}
	var out bytes.Buffer
	got, err := getPassword(&out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "s3cret" {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(out.String(), "Enter temporary password") {
		t.Fatalf("prompt missing, got %q", out.String())
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("no tty")
	}
	var out bytes.Buffer
	if _, err := getPassword(&out); err == nil {
		t.Fatal("expected error")
	}
}
