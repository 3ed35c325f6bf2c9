package domain

import "errors"

// ErrUnsupportedFormat is an error thrown when a file's type is not on the audio allow-list
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// ErrFileTooSmall is an error thrown when a file is below the minimum upload size
var ErrFileTooSmall = errors.New("file too small")

// ErrFileTooLarge is an error thrown when a file is above the maximum upload size
var ErrFileTooLarge = errors.New("file too large")

// ErrDurationTooShort is an error thrown when a recording is shorter than the policy floor
var ErrDurationTooShort = errors.New("recording too short")

// ErrDurationTooLong is an error thrown when a recording is longer than the policy ceiling
var ErrDurationTooLong = errors.New("recording too long")

// ErrTransferCancelled is a distinguished outcome for a user-cancelled transfer, not a failure
var ErrTransferCancelled = errors.New("transfer cancelled")

// ErrTransferFailed is an error thrown when the underlying transfer fails
var ErrTransferFailed = errors.New("transfer failed")

// ErrUploadNotFound is an error thrown when an upload session is not found
var ErrUploadNotFound = errors.New("upload not found")

// ErrUploadInFlight is an error thrown when an upload session cannot be
// removed because its transfer has not been cancelled
var ErrUploadInFlight = errors.New("upload transfer in flight")

// ErrAttemptNotFound is an error thrown when an upload attempt record is not found
var ErrAttemptNotFound = errors.New("upload attempt not found")

// ErrStagedObjectNotFound is an error thrown when a staged recording object is missing
var ErrStagedObjectNotFound = errors.New("staged object not found")
