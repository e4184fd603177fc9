// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

// Package slug turns notice titles into ASCII URL segments.
//
// # Example
//
//	slug.From("Corte de agua: sábado 9:00") // "corte-de-agua-sabado-9-00"
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength matches the width of condo.blogpost.slug.
const MaxLength = 220

// stripMarks decomposes accented letters (ñ → n + U+0303) and drops the marks.
var stripMarks = transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}), norm.NFC)

// From lowercases s, removes diacritics and joins the remaining ASCII
// letter/digit runs with single hyphens. The result never exceeds
// [MaxLength] and never ends with a hyphen.
func From(s string) string {
	plain, _, err := transform.String(stripMarks, s)
	if err != nil {
		plain = s
	}

	var builder strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(plain) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			pendingHyphen = false
			builder.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	result := builder.String()
	if len(result) > MaxLength {
		result = strings.TrimRight(result[:MaxLength], "-")
	}

	return result
}
