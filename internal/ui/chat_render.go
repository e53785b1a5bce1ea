package ui

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
)

var (
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// renderInlineMarkdown applies bold, inline code and link formatting.
// Each rendered span is swapped for a placeholder until the end so later
// patterns never match inside escape sequences.
func renderInlineMarkdown(line string) string {
	var spans []string
	protect := func(rendered string) string {
		spans = append(spans, rendered)
		return spanPlaceholder(len(spans) - 1)
	}

	line = inlineCodePattern.ReplaceAllStringFunc(line, func(match string) string {
		return protect(MarkdownInlineCodeStyle.Render(inlineCodePattern.FindStringSubmatch(match)[1]))
	})

	line = linkPattern.ReplaceAllStringFunc(line, func(match string) string {
		parts := linkPattern.FindStringSubmatch(match)
		return protect(MarkdownLinkStyle.Render(parts[1]) + " (" + parts[2] + ")")
	})

	line = boldPattern.ReplaceAllStringFunc(line, func(match string) string {
		return protect(MarkdownBoldStyle.Render(boldPattern.FindStringSubmatch(match)[1]))
	})

	// Later spans may wrap earlier placeholders.
	for i := len(spans) - 1; i >= 0; i-- {
		line = strings.Replace(line, spanPlaceholder(i), spans[i], 1)
	}
	return line
}

// spanPlaceholder marks a rendered span with private-use runes that no
// markdown pattern matches.
func spanPlaceholder(i int) string {
	return fmt.Sprintf("\ue000%d\ue001", i)
}

// wrapText wraps text to width cells, keeping ANSI sequences intact
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(text, width, "")
}

// renderMarkdownLine renders one line outside a code block.
func renderMarkdownLine(line string, width int) string {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		bullet := MarkdownListBulletStyle.Render("•")
		wrapped := wrapText(renderInlineMarkdown(trimmed[2:]), width-4)
		return "  " + bullet + " " + strings.ReplaceAll(wrapped, "\n", "\n    ")
	}

	return wrapText(renderInlineMarkdown(line), width)
}

// renderMarkdown renders entry text with syntax-highlighted fenced code
// blocks. An unterminated fence highlights everything after it.
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var result []string
	inCodeBlock := false
	codeBlockLang := ""
	var code []string

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if !inCodeBlock {
				inCodeBlock = true
				codeBlockLang = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "```"))
				code = code[:0]
			} else {
				inCodeBlock = false
				result = append(result, highlightCode(strings.Join(code, "\n"), codeBlockLang))
			}
			continue
		}

		if inCodeBlock {
			code = append(code, line)
		} else {
			result = append(result, renderMarkdownLine(line, width))
		}
	}

	if inCodeBlock {
		result = append(result, highlightCode(strings.Join(code, "\n"), codeBlockLang))
	}

	return strings.Join(result, "\n")
}
