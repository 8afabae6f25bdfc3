package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"

	"github.com/framegrace/cellframe/cell"
)

const highlightStyle = "catppuccin-mocha"

type styledSpan struct {
	text  string
	fg    cell.RGBA
	attrs cell.Attr
}

type styledLine []styledSpan

// highlightFile tokenizes the file and returns per-line colored spans.
// Failures degrade to plain text; the demo keeps running either way.
func highlightFile(path string) []styledLine {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Demo: read %s: %v", path, err)
		return []styledLine{{{text: "(" + path + " unavailable)", fg: cell.White}}}
	}
	text := string(data)

	lexer := lexerFor(path, data)
	lexer = chroma.Coalesce(lexer)
	style := styles.Get(highlightStyle)

	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		log.Printf("Demo: tokenize %s: %v", path, err)
		return plainLines(text)
	}

	var lines []styledLine
	var current styledLine
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		fg, attrs := tokenStyle(style, tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, current)
				current = nil
			}
			if part != "" {
				current = append(current, styledSpan{text: part, fg: fg, attrs: attrs})
			}
		}
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

// lexerFor resolves a lexer via enry's classifier first, falling back to
// chroma's own content analysis.
func lexerFor(path string, data []byte) chroma.Lexer {
	if lang := enry.GetLanguage(filepath.Base(path), data); lang != "" {
		if l := lexers.Get(strings.ToLower(lang)); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(string(data)); l != nil {
		return l
	}
	return lexers.Fallback
}

func tokenStyle(style *chroma.Style, t chroma.TokenType) (cell.RGBA, cell.Attr) {
	entry := style.Get(t)
	var attrs cell.Attr
	if entry.Bold == chroma.Yes {
		attrs |= cell.AttrBold
	}
	if entry.Italic == chroma.Yes {
		attrs |= cell.AttrItalic
	}
	if entry.Underline == chroma.Yes {
		attrs |= cell.AttrUnderline
	}
	fg := cell.White
	if entry.Colour.IsSet() {
		fg = cell.FromRGBA8(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue(), 255)
	}
	return fg, attrs
}

func plainLines(text string) []styledLine {
	var lines []styledLine
	for _, l := range strings.Split(text, "\n") {
		lines = append(lines, styledLine{{text: l, fg: cell.White}})
	}
	return lines
}
