package services

import "errors"

// Shared sentinel errors across services, mapped to HTTP statuses in
// the handlers package.
var (
	// Not found
	ErrUserNotFound    = errors.New("user not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrRequestNotFound = errors.New("community request not found")
	ErrTeamNotFound    = errors.New("team not found")

	// Validation and business rules
	ErrCredentialsRequired  = errors.New("email and password are required")
	ErrEventFieldsRequired  = errors.New("title, date, location and category are required")
	ErrRequestTitleRequired = errors.New("title and urgency are required")
	ErrInvalidUrgency       = errors.New("urgency must be one of: low, medium, urgent")
	ErrCommentTextRequired  = errors.New("comment text is required")
	ErrTeamNameRequired     = errors.New("team name is required")

	// Conflicts
	ErrEmailTaken         = errors.New("email address is already in use")
	ErrEventAlreadyJoined = errors.New("user already joined this event")
	ErrAlreadyTeamMember  = errors.New("user is already a team member")

	// Authentication and authorization
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotTeamMember      = errors.New("access denied: not a member of this team")
	ErrNotInvited         = errors.New("you are not invited to join this private team")

	// Uploads
	ErrUploadsNotConfigured = errors.New("file uploads are not configured")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
)
