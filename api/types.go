package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when the requested content does not exist.
var ErrNotFound = errors.New("content not found")

// Author is the author block of a content item.
type Author struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	URL       string `json:"url"`
	Avatar    string `json:"avatar"`
	Rank      int    `json:"rank"`
	Specialty string `json:"specialty"`
}

// Name is the display name of the author.
func (a Author) Name() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// Page is the page a content item lives on.
type Page struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Content is a content item as returned by GET /content/{id}.
type Content struct {
	ID      string `json:"id"`
	Author  Author `json:"author"`
	Content Page   `json:"content"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
}

func (e *ErrorResponse) Error() string {
	msg := e.Message
	if len(e.Errors) > 0 {
		msg = e.Errors[0]
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("content service (status %d): %s", e.StatusCode, msg)
}

// Is makes a 404 response match ErrNotFound.
func (e *ErrorResponse) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
