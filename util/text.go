// util/text.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"crypto/sha256"
	"io"
	"strconv"
	"strings"
)

type TextWrapConfig struct {
	ColumnLimit int
	Indent      int
	WrapAll     bool
	WrapNoSpace bool
}

func (cfg TextWrapConfig) Wrap(s string) (string, int) {
	if cfg.ColumnLimit <= 0 {
		return s, strings.Count(s, "\n") + 1
	}

	var result strings.Builder
	lines := 1

	// Buffer for the current (not-yet-emitted) line segment
	var currentLine []rune
	lastSpaceIndex := -1 // index of last space in currentLine; -1 means none

	isContinuation := false // true if current physical line is a wrapped continuation
	preformatted := false   // true if current input line should bypass wrapping

	// Helper to compute capacity for the current physical line
	capacityForLine := func() int {
		if isContinuation {
			cap := cfg.ColumnLimit - cfg.Indent
			if cap <= 0 {
				return 1 // ensure forward progress
			}
			return cap
		}
		return cfg.ColumnLimit
	}

	// Helper to write indent for continuation lines
	writeIndent := func() {
		for i := 0; i < cfg.Indent; i++ {
			result.WriteRune(' ')
		}
	}

	// Helper to recompute lastSpaceIndex after slicing currentLine
	recomputeLastSpace := func() {
		lastSpaceIndex = -1
		for i := len(currentLine) - 1; i >= 0; i-- {
			if currentLine[i] == ' ' {
				lastSpaceIndex = i
				break
			}
		}
	}

	for _, ch := range s {
		// Detect preformatted input lines (those that begin with a space) unless WrapAll
		if len(currentLine) == 0 && !isContinuation {
			preformatted = !cfg.WrapAll && ch == ' '
		}

		if preformatted {
			// Pass through until input newline
			result.WriteRune(ch)
			if ch == '\n' {
				lines++
				isContinuation = false
				preformatted = false
			}
			continue
		}

		currentLine = append(currentLine, ch)
		if ch == ' ' {
			lastSpaceIndex = len(currentLine) - 1
		}

		// If an input newline is present in the buffer, flush the whole buffer
		if ch == '\n' {
			result.WriteString(string(currentLine))
			currentLine = currentLine[:0]
			lastSpaceIndex = -1
			lines++
			isContinuation = false
			continue
		}

		// Wrap while currentLine exceeds capacity
		for cap := capacityForLine(); len(currentLine) > cap; cap = capacityForLine() {
			// If we are not allowed to break mid-word and there is no space, allow overflow until space/newline
			if !cfg.WrapNoSpace && lastSpaceIndex == -1 {
				break
			}

			breakPos := cap
			if !cfg.WrapNoSpace && lastSpaceIndex >= 0 {
				// Prefer wrapping at last space when allowed
				breakPos = lastSpaceIndex + 1
			}

			// Emit up to breakPos, then newline + indent
			result.WriteString(string(currentLine[:breakPos]))
			result.WriteRune('\n')
			lines++
			writeIndent()

			// Remainder stays in currentLine; recompute space index
			currentLine = currentLine[breakPos:]
			isContinuation = true
			recomputeLastSpace()
		}
	}

	if len(currentLine) > 0 {
		result.WriteString(string(currentLine))
	}

	return result.String(), lines
}

func WrapText(s string, columnLimit int, indent int, wrapAll bool, noSpace bool) (string, int) {
	cfg := TextWrapConfig{
		ColumnLimit: columnLimit,
		Indent:      indent,
		WrapAll:     wrapAll,
		WrapNoSpace: noSpace,
	}
	return cfg.Wrap(s)
}

// Atof parses a floating point value after trimming surrounding space and
// returns any parse error to the caller; used for CLI flags like -buffer
// that accept a bare number rather than a typed flag.Value.
func Atof(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// Hash returns the sha256 digest of r's contents, used as a cache key for
// a planning request's adjusted response (util/cache.go).
func Hash(r io.Reader) ([]byte, error) {
	hash := sha256.New()
	_, err := io.Copy(hash, r)
	if err != nil {
		return nil, err
	}
	return hash.Sum(nil), nil
}
