package domain

import "errors"

// ErrNotFound is returned by repo, store and service functions when the
// requested resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing destination, return date before departure).
// The text after "validation error: " is the user-facing message.
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a request clashes with stored state, such as
// a duplicate personal item or resubmitting a trip over a partly packed list.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnparseableResponse is returned when the AI completion could not be
// turned into the expected JSON document, even after repair.
var ErrUnparseableResponse = errors.New("unparseable AI response")

// ErrEmptyResponse is returned when the vision model answers with blank text.
var ErrEmptyResponse = errors.New("AI gaf een leeg antwoord")

// ErrAINotConfigured is returned by the AI client when no usable
// GEMINI_API_KEY was configured. The message carries the API_KEY marker so
// the HTTP boundary classifies it as a credential problem.
var ErrAINotConfigured = errors.New("GEMINI_API_KEY is not configured")

// ErrDestinationNotFound is returned when geocoding yields zero results.
var ErrDestinationNotFound = errors.New("destination not found")

// ErrWeatherUnavailable is returned when every weather provider failed.
var ErrWeatherUnavailable = errors.New("weather unavailable")
