package apierr

import "net/http"

// --- Common ---

func InvalidRequestBody() *Error {
	return New(CodeInvalidRequestBody, http.StatusBadRequest, "Invalid request body")
}

func InvalidID(entity string) *Error {
	return New(CodeInvalidID, http.StatusBadRequest, "Invalid "+entity+" ID")
}

func InvalidCursor() *Error {
	return New(CodeInvalidCursor, http.StatusBadRequest, "Invalid pagination cursor")
}

func InternalError(cause error) *Error {
	return Wrap(CodeInternalError, http.StatusInternalServerError, "Internal server error", cause)
}

// --- Identity & account ---

func NotLoggedIn() *Error {
	return New(CodeNotLoggedIn, http.StatusUnauthorized, "You have to be logged in to perform this action")
}

func Forbidden() *Error {
	return New(CodeForbidden, http.StatusForbidden, "You are not allowed to modify this resource")
}

// InvalidCredentials deliberately covers unknown user, unknown account and
// wrong password with one message so the response leaks nothing about which
// field was wrong.
func InvalidCredentials() *Error {
	return New(CodeInvalidCredentials, http.StatusUnauthorized, "Invalid credentials")
}

func AccountLocked() *Error {
	return New(CodeAccountLocked, http.StatusForbidden, "Blocked")
}

func EmailTaken() *Error {
	return New(CodeEmailTaken, http.StatusConflict, "Email is already registered")
}

func UserNotFound() *Error {
	return New(CodeUserNotFound, http.StatusNotFound, "User not found")
}

func SignUpFailed(cause error) *Error {
	return Wrap(CodeSignUpFailed, http.StatusInternalServerError, "Failed to sign up", cause)
}

// --- Post ---

func PostNotFound() *Error {
	return New(CodePostNotFound, http.StatusNotFound, "Post not found")
}

func PostCreateFailed(cause error) *Error {
	return Wrap(CodePostCreateFailed, http.StatusInternalServerError, "Failed to create post", cause)
}

func PostUpdateFailed(cause error) *Error {
	return Wrap(CodePostUpdateFailed, http.StatusInternalServerError, "Failed to update post", cause)
}

func PostListFailed(cause error) *Error {
	return Wrap(CodePostListFailed, http.StatusInternalServerError, "Failed to list posts", cause)
}

// --- Taxonomy & comments ---

func TagCreateFailed(cause error) *Error {
	return Wrap(CodeTagCreateFailed, http.StatusInternalServerError, "Failed to create tag", cause)
}

func CategoryCreateFailed(cause error) *Error {
	return Wrap(CodeCategoryCreateFailed, http.StatusInternalServerError, "Failed to create category", cause)
}

func CommentCreateFailed(cause error) *Error {
	return Wrap(CodeCommentCreateFailed, http.StatusInternalServerError, "Failed to create comment", cause)
}

// --- Validation ---

func TitleRequired() *Error {
	return New(CodeTitleRequired, http.StatusBadRequest, "Title is required")
}

func ContentRequired() *Error {
	return New(CodeContentRequired, http.StatusBadRequest, "Content is required")
}

func NameRequired() *Error {
	return New(CodeNameRequired, http.StatusBadRequest, "Name is required")
}

func NameTooLong() *Error {
	return New(CodeNameTooLong, http.StatusBadRequest, "Name must be 255 characters or fewer")
}

func EmailRequired() *Error {
	return New(CodeEmailRequired, http.StatusBadRequest, "Email is required")
}

func PasswordRequired() *Error {
	return New(CodePasswordRequired, http.StatusBadRequest, "Password is required")
}

func InvalidOrderField(field string) *Error {
	return New(CodeInvalidOrderField, http.StatusBadRequest, "Cannot order by field "+field)
}

// --- Upload ---

func FileRequired() *Error {
	return New(CodeFileRequired, http.StatusBadRequest, "Multipart field 'file' is required")
}

func UploadFailed(cause error) *Error {
	return Wrap(CodeUploadFailed, http.StatusInternalServerError, "Failed to store uploaded file", cause)
}

// --- Webhook ---

func MissingAuthToken() *Error {
	return New(CodeMissingAuthToken, http.StatusForbidden, "You must provide the secret")
}

func InvalidAuthToken() *Error {
	return New(CodeInvalidAuthToken, http.StatusForbidden, "Invalid secret")
}

// --- Health ---

func DatabaseNotReady() *Error {
	return New(CodeDatabaseNotReady, http.StatusServiceUnavailable, "Database is not ready")
}
