package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdoutline/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"shebang bash", "#!/bin/bash\necho hello\n", "bash"},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')\n", "python"},
		{"shebang wins over signature", "#!/bin/bash\ndef foo():\n    pass\n", "bash"},
		{"go package", "package main\n\nfunc main() {}\n", "go"},
		{"python def", "def foo():\n    return 1\n", "python"},
		{"python from import", "from os import path\n", "python"},
		{"json object", `{"key": "value", "n": 1}`, "json"},
		{"yaml mapping", "name: vault\nversion: 2\n", "yaml"},
		{"rust main", "fn main() {\n    let mut x = 1;\n}\n", "rust"},
		{"sql select", "select * from notes where id = 1;\n", "sql"},
		{"html document", "<!DOCTYPE html>\n<html></html>\n", "html"},
		{"dockerfile", "FROM golang:1.25\nRUN go build ./...\n", "dockerfile"},
		{"empty", "", langdetect.Text},
		{"whitespace only", "   \n\t\n", langdetect.Text},
		{"prose", "just some words without structure", langdetect.Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.Detect([]byte(tt.content)))
		})
	}
}

func TestInfoString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "go", langdetect.InfoString([]byte("package vault\n")))
	assert.Empty(t, langdetect.InfoString(nil))
	assert.Empty(t, langdetect.InfoString([]byte("plain words here")))
}
