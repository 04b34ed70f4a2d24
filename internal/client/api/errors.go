package api

import "errors"

// ErrRequestFailed wraps every failed call; the attached text is the
// human-readable message extracted from the server's error payload.
var ErrRequestFailed = errors.New("request failed")

// genericErrorMessage is used when the server gave no usable message
// (network failure, malformed payload).
const genericErrorMessage = "Something went wrong"
