package errors

import "testing"

func TestValidateDottedName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single", "epydoc", false},
		{"dotted", "epydoc.docwriter.dotgraph", false},
		{"underscores", "_private.__init__", false},

		{"empty", "", true},
		{"leading dot", ".pkg", true},
		{"trailing dot", "pkg.", true},
		{"double dot", "pkg..mod", true},
		{"spaces", "my pkg", true},
		{"angle brackets", "<pkg>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDottedName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDottedName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"gif", false},
		{"cmapx", false},
		{"svg", false},
		{"png:cairo", false},

		{"", true},
		{"-V", true},
		{"gif -o /tmp/x", true},
		{"GIF", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDirection(t *testing.T) {
	for _, dir := range []string{"", "TB", "BT", "LR", "RL"} {
		if err := ValidateDirection(dir); err != nil {
			t.Errorf("ValidateDirection(%q) = %v, want nil", dir, err)
		}
	}
	for _, dir := range []string{"tb", "up", "LRX"} {
		err := ValidateDirection(dir)
		if !Is(err, ErrCodeInvalidDirection) {
			t.Errorf("ValidateDirection(%q) = %v, want %s", dir, err, ErrCodeInvalidDirection)
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "package_tree_for_epydoc.gif", false},
		{"valid nested", "graphs/import_graph.html", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidName,
		ErrCodeInvalidPath,
		ErrCodeInvalidDirection,
		ErrCodeInvalidGraphKind,
		ErrCodeContractViolation,
		ErrCodeNotFound,
		ErrCodeNoProfile,
		ErrCodeToolUnavailable,
		ErrCodeToolFailed,
		ErrCodeUnsupportedFormat,
		ErrCodeCache,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
