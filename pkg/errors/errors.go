package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents transport failures on a direct HTTP fetch
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeRateLimit represents a store answering 429/430 or a store still blocked
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeBrowser represents browser session failures
	ErrorTypeBrowser ErrorType = "browser"
	// ErrorTypeDocument represents unreadable stored documents
	ErrorTypeDocument ErrorType = "document"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypePrice represents price text that could not be normalized
	ErrorTypePrice ErrorType = "price"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents an error raised while comparing a store
type ScrapeError struct {
	Type    ErrorType
	Store   string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	prefix := fmt.Sprintf("[%s]", e.Type)
	if e.Store != "" {
		prefix = fmt.Sprintf("[%s] %s:", e.Type, e.Store)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s - %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s", prefix, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// Is reports whether the target is a ScrapeError of the same type
func (e *ScrapeError) Is(target error) bool {
	t, ok := target.(*ScrapeError)
	if !ok {
		return false
	}
	return t.Type == e.Type && (t.Store == "" || t.Store == e.Store)
}

// IsType reports whether any error in err's chain is a ScrapeError of the given type
func IsType(err error, errType ErrorType) bool {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Type == errType
	}
	return false
}

// New creates a new ScrapeError
func New(errType ErrorType, store, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Store:   store,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(store, message string, err error) *ScrapeError {
	return New(ErrorTypeNetwork, store, message, err)
}

// NewRateLimit creates a new rate limit error for a store blocked for duration
func NewRateLimit(store string, duration time.Duration, err error) *ScrapeError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, store, message, err)
}

// NewBrowser creates a new browser session error
func NewBrowser(store, message string, err error) *ScrapeError {
	return New(ErrorTypeBrowser, store, message, err)
}

// NewDocument creates a new stored document error
func NewDocument(store, message string, err error) *ScrapeError {
	return New(ErrorTypeDocument, store, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(store, message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, store, message, err)
}

// NewPrice creates a new price normalization error
func NewPrice(text string) *ScrapeError {
	return New(ErrorTypePrice, "", fmt.Sprintf("no amount in %q", text), nil)
}

// NewCache creates a new cache error
func NewCache(store, message string, err error) *ScrapeError {
	return New(ErrorTypeCache, store, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(message string, err error) *ScrapeError {
	return New(ErrorTypePublisher, "", message, err)
}

// NewValidation creates a new validation error
func NewValidation(store, message string) *ScrapeError {
	return New(ErrorTypeValidation, store, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}
