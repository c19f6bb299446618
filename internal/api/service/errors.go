package service

import "errors"

// Domain errors. Handlers map these to HTTP statuses in one place; anything
// not listed there is treated as an internal failure.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrTitleNotFound    = errors.New("title not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")

	ErrForbidden = errors.New("you do not have permission to modify this resource")

	ErrReviewExists = errors.New("user can have only one review for a single title")
	ErrScoreTooLow  = errors.New("score must be at least 1")
	ErrScoreTooHigh = errors.New("score must be at most 10")
	ErrYearInFuture = errors.New("year must not be later than the current year")

	ErrReservedUsername = errors.New(`username "me" is reserved`)
	ErrInvalidUsername  = errors.New("username may contain only letters, digits and @/./+/-/_")
	ErrSignupConflict   = errors.New("username or email is already taken")
	ErrUsernameTaken    = errors.New("username is already taken")
	ErrEmailTaken       = errors.New("email is already taken")
	ErrInvalidCode      = errors.New("invalid confirmation code")
	ErrInvalidRole      = errors.New("invalid role")
	ErrMailDelivery     = errors.New("failed to deliver confirmation email")

	ErrInvalidSlug     = errors.New("slug may contain only letters, digits, hyphens and underscores")
	ErrSlugTaken       = errors.New("slug is already in use")
	ErrUnknownCategory = errors.New("unknown category slug")
	ErrUnknownGenre    = errors.New("unknown genre slug")
)
