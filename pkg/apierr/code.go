package apierr

// Code is a machine-readable error code returned in API responses.
type Code string

// Common errors.
const (
	CodeInvalidRequestBody Code = "INVALID_REQUEST_BODY"
	CodeInvalidID          Code = "INVALID_ID"
	CodeInvalidCursor      Code = "INVALID_CURSOR"
	CodeInternalError      Code = "INTERNAL_ERROR"
)

// Identity & account errors.
const (
	CodeNotLoggedIn        Code = "NOT_LOGGED_IN"
	CodeForbidden          Code = "FORBIDDEN"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeAccountLocked      Code = "ACCOUNT_LOCKED"
	CodeEmailTaken         Code = "EMAIL_TAKEN"
	CodeUserNotFound       Code = "USER_NOT_FOUND"
	CodeSignUpFailed       Code = "SIGNUP_FAILED"
)

// Post errors.
const (
	CodePostNotFound     Code = "POST_NOT_FOUND"
	CodePostCreateFailed Code = "POST_CREATE_FAILED"
	CodePostUpdateFailed Code = "POST_UPDATE_FAILED"
	CodePostListFailed   Code = "POST_LIST_FAILED"
)

// Taxonomy & comment errors.
const (
	CodeTagCreateFailed      Code = "TAG_CREATE_FAILED"
	CodeCategoryCreateFailed Code = "CATEGORY_CREATE_FAILED"
	CodeCommentCreateFailed  Code = "COMMENT_CREATE_FAILED"
)

// Validation errors.
const (
	CodeTitleRequired     Code = "TITLE_REQUIRED"
	CodeContentRequired   Code = "CONTENT_REQUIRED"
	CodeNameRequired      Code = "NAME_REQUIRED"
	CodeNameTooLong       Code = "NAME_TOO_LONG"
	CodeEmailRequired     Code = "EMAIL_REQUIRED"
	CodePasswordRequired  Code = "PASSWORD_REQUIRED"
	CodeInvalidOrderField Code = "INVALID_ORDER_FIELD"
)

// Upload errors.
const (
	CodeFileRequired Code = "FILE_REQUIRED"
	CodeUploadFailed Code = "UPLOAD_FAILED"
)

// Webhook errors.
const (
	CodeMissingAuthToken Code = "MISSING_AUTH_TOKEN"
	CodeInvalidAuthToken Code = "INVALID_AUTH_TOKEN"
)

// Health errors.
const (
	CodeDatabaseNotReady Code = "DATABASE_NOT_READY"
)
