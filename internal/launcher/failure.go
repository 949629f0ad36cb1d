package launcher

import "strings"

// FailureClass classifies a startup failure from the captured output lines.
type FailureClass string

const (
	FailureNone        FailureClass = ""
	FailureAppNotFound FailureClass = "app-not-found"
	FailureImport      FailureClass = "import-error"
	FailurePermission  FailureClass = "permission"
	FailureGeneric     FailureClass = "generic"
)

var successSignatures = []string{
	"running on",
	"serving flask app",
	"* running on http",
}

// IsStartupSuccess reports whether a line signals that the development
// server came up.
func IsStartupSuccess(line string) bool {
	lower := strings.ToLower(line)
	for _, sig := range successSignatures {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return false
}

var errorSignatures = []string{
	"traceback",
	"error:",
	"failed to",
	"could not",
	"importerror",
	"modulenotfounderror",
}

// IsErrorLine reports whether a line looks like part of a startup error.
func IsErrorLine(line string) bool {
	lower := strings.ToLower(line)
	for _, sig := range errorSignatures {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return false
}

// Classify inspects captured error lines and picks the failure class that
// selects the remediation suggestions.
func Classify(lines []string) FailureClass {
	if len(lines) == 0 {
		return FailureNone
	}
	text := strings.ToLower(strings.Join(lines, " "))
	switch {
	case strings.Contains(text, "could not locate a flask application"),
		strings.Contains(text, "failed to find flask application"):
		return FailureAppNotFound
	case strings.Contains(text, "importerror"),
		strings.Contains(text, "modulenotfounderror"):
		return FailureImport
	case strings.Contains(text, "permission denied"):
		return FailurePermission
	default:
		return FailureGeneric
	}
}

// Suggestions returns operator-facing remediation steps for a failure class.
func Suggestions(class FailureClass) []string {
	switch class {
	case FailureAppNotFound:
		return []string{
			"Check the FLASK_APP reference (flaskstudio detect --all lists candidates)",
			"Try --direct instead of flask run",
			"Ensure the entry file binds the app instance to a variable named 'app'",
		}
	case FailureImport:
		return []string{
			"Verify required packages are installed in the project's virtualenv",
			"Check that --python points at the right interpreter",
			"Run 'pip install -r requirements.txt' if the project has one",
		}
	case FailurePermission:
		return []string{
			"Check file permissions on the project directory",
			"Ensure the interpreter is executable",
		}
	case FailureGeneric:
		return []string{
			"Inspect the server output above for the underlying error",
			"Try --direct",
			"Check whether the port is already in use",
		}
	default:
		return nil
	}
}
