// Package langdetect guesses the language of code block content.
// vellum uses it to label fenced code blocks that carry no info string.
// A few fast structural checks run before go-enry's classifier so the
// common cases never pay for classification.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language can be determined with confidence.
const Unknown = "text"

// Fence tags for languages the structural checks recognize.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langBash       = "bash"
)

// classifierCandidates bounds the classifier's search to languages that
// plausibly appear in documentation code blocks.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// NormalizeTag reduces a fence info string to a bare language tag: the
// first word, lowercased, with shell aliased to bash. An empty info
// string yields "".
func NormalizeTag(info string) string {
	tag, _, _ := strings.Cut(strings.TrimSpace(info), " ")
	tag = strings.ToLower(tag)
	if tag == "sh" || tag == "shell" {
		return langBash
	}
	return tag
}

// Detect returns the fence tag for the detected language of content, or
// Unknown when detection fails or confidence is low.
func Detect(content string) string {
	if content == "" {
		return Unknown
	}

	// A shebang names the interpreter outright.
	if lang, safe := enry.GetLanguageByShebang([]byte(content)); safe {
		return normalize(lang)
	}

	// Structural patterns beat the classifier on the common languages.
	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	// Only trust the classifier when it reports high confidence.
	if lang, safe := enry.GetLanguageByClassifier([]byte(content), classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Unknown
}

// detectByPattern checks for highly indicative language patterns, most
// specific first.
func detectByPattern(content string) string {
	trimmed := strings.TrimSpace(content)

	if lang := detectGo(trimmed); lang != "" {
		return lang
	}
	if lang := detectPython(content); lang != "" {
		return lang
	}
	if lang := detectHTML(trimmed); lang != "" {
		return lang
	}
	if lang := detectJSON(trimmed); lang != "" {
		return lang
	}
	if lang := detectDockerfile(content, trimmed); lang != "" {
		return lang
	}
	if lang := detectSQL(trimmed); lang != "" {
		return lang
	}
	if lang := detectRust(content); lang != "" {
		return lang
	}
	if lang := detectJavaScript(content); lang != "" {
		return lang
	}
	if lang := detectYAML(content); lang != "" {
		return lang
	}

	return ""
}

func detectGo(trimmed string) string {
	if strings.HasPrefix(trimmed, "package ") {
		return langGo
	}
	return ""
}

func detectPython(content string) string {
	// def/class definitions ending in a colon.
	if strings.Contains(content, "def ") && strings.Contains(content, "):") {
		return langPython
	}
	// Python imports, as opposed to Go's "import (" blocks.
	if strings.Contains(content, "import ") && !strings.Contains(content, "import (") {
		if strings.Contains(content, "from ") || strings.HasPrefix(strings.TrimSpace(content), "import ") {
			return langPython
		}
	}
	if strings.Contains(content, "__name__") || strings.Contains(content, "__main__") {
		return langPython
	}
	return ""
}

func detectHTML(trimmed string) string {
	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "<!doctype html") ||
		strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<head>") ||
		strings.Contains(lower, "<body>") {
		return langHTML
	}
	return ""
}

func detectJSON(trimmed string) string {
	if (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) &&
		strings.Contains(trimmed, `"`) {
		return langJSON
	}
	return ""
}

func detectDockerfile(content, trimmed string) string {
	if strings.HasPrefix(trimmed, "FROM ") ||
		(strings.Contains(content, "\nFROM ") && strings.Contains(content, "\nRUN ")) ||
		(strings.Contains(content, "WORKDIR ") && strings.Contains(content, "COPY ")) {
		return langDockerfile
	}
	return ""
}

func detectSQL(trimmed string) string {
	upper := strings.ToUpper(trimmed)
	if strings.HasPrefix(upper, "SELECT ") ||
		strings.HasPrefix(upper, "INSERT ") ||
		strings.HasPrefix(upper, "UPDATE ") ||
		strings.HasPrefix(upper, "DELETE ") ||
		strings.HasPrefix(upper, "CREATE ") {
		return langSQL
	}
	return ""
}

func detectRust(content string) string {
	if strings.Contains(content, "fn main()") ||
		strings.Contains(content, "println!") ||
		strings.Contains(content, "let mut ") {
		return langRust
	}
	return ""
}

func detectJavaScript(content string) string {
	if strings.Contains(content, "=>") ||
		strings.Contains(content, "const ") ||
		strings.Contains(content, "let ") ||
		strings.Contains(content, "console.log") {
		return langJavaScript
	}
	return ""
}

// detectYAML counts mapping keys and root-level list items; two or more
// make YAML likely.
func detectYAML(content string) string {
	yamlKeyCount := 0

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Key followed by a value, excluding lines that look like code.
		if strings.Contains(line, ": ") {
			if !strings.Contains(line, "(") &&
				!strings.Contains(line, "{") &&
				!strings.HasPrefix(line, `"`) {
				yamlKeyCount++
			}
		}
		if strings.HasPrefix(line, "- ") {
			yamlKeyCount++
		}
	}

	if yamlKeyCount >= 2 {
		return langYAML
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
