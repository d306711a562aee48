// Package sanitize turns raw generative-AI completions into text a strict
// JSON decoder accepts. Models wrap their answer in markdown fences or prose
// more often than the prompt allows, so every completion passes through here
// before it is decoded.
package sanitize

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkordes/packvision/internal/domain"
)

// fence matches a fenced code block with an optional "json" tag.
var fence = regexp.MustCompile("```(?:json)?\\s*\\n([\\s\\S]*?)\\n\\s*```")

// ParseError reports a completion that could not be decoded. It matches
// domain.ErrUnparseableResponse under errors.Is and keeps the raw text and
// the extracted candidate for diagnostics.
type ParseError struct {
	Raw       string
	Candidate string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", domain.ErrUnparseableResponse, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, domain.ErrUnparseableResponse) hold.
func (e *ParseError) Is(target error) bool {
	return target == domain.ErrUnparseableResponse
}

// closing returns the bracket that closes open.
func closing(open byte) byte {
	switch open {
	case '[':
		return ']'
	case '{':
		return '}'
	}
	return open
}

// ExtractJSON returns the JSON array or object inside raw. open is '[' for
// arrays and '{' for objects.
//
// A fenced code block, when present, replaces raw as the candidate. A
// candidate that already starts with open is returned as is. Otherwise the
// first open bracket is located and the substring up to its balancing close
// bracket is returned. When no balanced region exists the trimmed candidate
// comes back unchanged and decoding is expected to fail.
func ExtractJSON(raw string, open byte) string {
	str := strings.TrimSpace(raw)
	if m := fence.FindStringSubmatch(str); m != nil {
		str = strings.TrimSpace(m[1])
	}

	if strings.HasPrefix(str, string(open)) {
		return str
	}

	start := strings.IndexByte(str, open)
	if start < 0 {
		return str
	}

	closeCh := closing(open)
	depth := 0
	for i := start; i < len(str); i++ {
		switch str[i] {
		case open:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return str[start : i+1]
			}
		}
	}
	return str
}

// DecodeArray extracts a JSON array from raw and decodes it into v.
func DecodeArray(raw string, v any) error {
	candidate := ExtractJSON(raw, '[')
	if err := json.Unmarshal([]byte(candidate), v); err != nil {
		return &ParseError{Raw: raw, Candidate: candidate, Err: err}
	}
	return nil
}

// DecodeObjectStrict extracts a JSON object from raw and decodes it into v
// without the trailing-garbage repair of DecodeObject.
func DecodeObjectStrict(raw string, v any) error {
	candidate := ExtractJSON(raw, '{')
	if err := json.Unmarshal([]byte(candidate), v); err != nil {
		return &ParseError{Raw: raw, Candidate: candidate, Err: err}
	}
	return nil
}

// DecodeObject extracts a JSON object from raw and decodes it into v.
// Only the luggage scan uses it. When the first decode fails the candidate is cut after its last '}' and
// decoded once more, which rescues completions with trailing garbage.
func DecodeObject(raw string, v any) error {
	candidate := ExtractJSON(raw, '{')
	err := json.Unmarshal([]byte(candidate), v)
	if err == nil {
		return nil
	}

	if last := strings.LastIndexByte(candidate, '}'); last > 0 && last < len(candidate)-1 {
		trimmed := candidate[:last+1]
		if retryErr := json.Unmarshal([]byte(trimmed), v); retryErr == nil {
			return nil
		}
	}
	return &ParseError{Raw: raw, Candidate: candidate, Err: err}
}
