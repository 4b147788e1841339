/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/suparena/docregistry/storagemodels"
)

const forSeparator = " for "

// ParseRecord converts a pre-rendered implementor fragment into a structured
// record. The implementing type is the first link after the last " for "
// text; a where clause ends the label. Fragments without such a link keep
// only a label and Raw.
func ParseRecord(crate storagemodels.CrateName, fragment string) storagemodels.ImplementorRecord {
	rec := storagemodels.ImplementorRecord{Crate: crate, Raw: fragment}

	tokens := tokenize(fragment)

	start, tail := 0, ""
	for i, tok := range tokens {
		if tok.Type != html.TextToken {
			continue
		}
		if j := strings.LastIndex(tok.Data, forSeparator); j >= 0 {
			start, tail = i+1, tok.Data[j+len(forSeparator):]
		}
	}
	target := tokens[start:]

	var label strings.Builder
	label.WriteString(tail)
	linked := false
	for i, tok := range target {
		switch tok.Type {
		case html.TextToken:
			label.WriteString(tok.Data)
		case html.StartTagToken:
			if tok.DataAtom != atom.A || linked {
				continue
			}
			// Without a " for ", only a leading link names the type.
			if start == 0 && strings.TrimSpace(textOf(target[:i])) != "" {
				continue
			}
			linked = true
			fillFromLink(&rec, tok)
		}
	}

	rec.Label = cleanText(label.String())
	return rec
}

// tokenize splits fragment into tokens, stopping at a where clause.
func tokenize(fragment string) []html.Token {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var tokens []html.Token
	for {
		if z.Next() == html.ErrorToken {
			return tokens
		}
		tok := z.Token()
		if tok.Type == html.StartTagToken && tok.DataAtom == atom.Span && isWhereClause(tok) {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func isWhereClause(tok html.Token) bool {
	for _, class := range strings.Fields(attr(tok, "class")) {
		if class == "where" {
			return true
		}
	}
	return false
}

// fillFromLink reads kind, path and anchor from a link whose title has the
// form "kind path".
func fillFromLink(rec *storagemodels.ImplementorRecord, tok html.Token) {
	rec.Kind = attr(tok, "class")
	rec.Anchor = attr(tok, "href")
	title := attr(tok, "title")
	if kind, path, ok := strings.Cut(title, " "); ok {
		rec.Path = path
		if rec.Kind == "" {
			rec.Kind = kind
		}
		return
	}
	rec.Path = title
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(tokens []html.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.Type == html.TextToken {
			b.WriteString(tok.Data)
		}
	}
	return b.String()
}

// Enrich fills the structured fields of records that only carry a fragment.
func Enrich(c *storagemodels.Contribution) *storagemodels.Contribution {
	if c == nil {
		return nil
	}
	out := storagemodels.NewContribution()
	for _, crate := range c.Crates() {
		recs := c.Records(crate)
		for i, rec := range recs {
			if rec.Raw != "" && rec.Path == "" && rec.Label == "" {
				recs[i] = ParseRecord(crate, rec.Raw)
			}
		}
		out.Add(crate, recs...)
	}
	return out
}

// cleanText normalizes label text; the tokenizer has already unescaped entities.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(s)
}
