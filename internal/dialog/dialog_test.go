package dialog

import (
	"os/exec"
	"reflect"
	"testing"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  int
		expectErr bool
	}{
		{name: "plain number", input: "45", expected: 45},
		{name: "trailing newline", input: "120\n", expected: 120},
		{name: "surrounding spaces", input: "  30  ", expected: 30},
		{name: "zero", input: "0", expected: 0},
		{name: "negative", input: "-5", expectErr: true},
		{name: "fraction", input: "59.94", expectErr: true},
		{name: "text", input: "sixty", expectErr: true},
		{name: "empty", input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseNumber(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Errorf("parseNumber(%q) = %d, want error", tt.input, result)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseNumber(%q) error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("parseNumber(%q) = %d, want %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNumberArgs(t *testing.T) {
	tests := []struct {
		name     string
		tool     tool
		expected []string
	}{
		{
			name:     "kdialog",
			tool:     toolKDialog,
			expected: []string{"--title", "InstantReplay Settings", "--inputbox", "Framerate", "0"},
		},
		{
			name:     "zenity",
			tool:     toolZenity,
			expected: []string{"--entry", "--title", "InstantReplay Settings", "--text", "Framerate", "--entry-text", "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := numberArgs(tt.tool, "InstantReplay Settings", "Framerate", 0)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("numberArgs() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestDirectoryArgs(t *testing.T) {
	tests := []struct {
		name     string
		tool     tool
		expected []string
	}{
		{
			name:     "kdialog",
			tool:     toolKDialog,
			expected: []string{"--title", "Select replay folder", "--getexistingdirectory", "/home/u/Videos"},
		},
		{
			name:     "zenity",
			tool:     toolZenity,
			expected: []string{"--file-selection", "--directory", "--title", "Select replay folder", "--filename", "/home/u/Videos/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := directoryArgs(tt.tool, "Select replay folder", "/home/u/Videos")
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("directoryArgs() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestRunMapsCancelToOk(t *testing.T) {
	// Exit status 1 is the cancel convention shared by kdialog and zenity.
	path, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false not available")
	}

	s := &Service{tool: toolKDialog, path: path}
	_, ok, err := s.run(nil)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if ok {
		t.Error("run() ok = true for exit status 1, want false")
	}
}

func TestRunCapturesOutput(t *testing.T) {
	path, err := exec.LookPath("echo")
	if err != nil {
		t.Skip("echo not available")
	}

	s := &Service{tool: toolKDialog, path: path}
	out, ok, err := s.run([]string{"42"})
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if !ok {
		t.Fatal("run() ok = false, want true")
	}

	n, err := parseNumber(out)
	if err != nil {
		t.Fatalf("parseNumber(%q) error: %v", out, err)
	}
	if n != 42 {
		t.Errorf("parseNumber(%q) = %d, want 42", out, n)
	}
}

func TestRunReportsMissingTool(t *testing.T) {
	s := &Service{tool: toolKDialog, path: "/nonexistent/kdialog"}
	_, _, err := s.run(nil)
	if err == nil {
		t.Error("run() = nil error for a missing binary, want error")
	}
}
