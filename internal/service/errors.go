package service

import "errors"

// Failure taxonomy for the generation pipeline. Handlers decide which of
// these surface to the caller and which degrade into fallback content.
var (
	// ErrUploadFailed indicates the image host rejected or never received
	// an upload. No retries are attempted.
	ErrUploadFailed = errors.New("image upload failed")

	// ErrAnalysisFailed indicates the vision model call failed or returned
	// a malformed payload. Analysis has no degraded mode.
	ErrAnalysisFailed = errors.New("image analysis failed")

	// ErrGenerationTransport indicates the text model was unreachable or
	// returned a non-success status.
	ErrGenerationTransport = errors.New("recipe generation transport failed")

	// ErrGenerationParse indicates the model answered but its text did not
	// contain a usable JSON recipe.
	ErrGenerationParse = errors.New("recipe generation returned unparseable content")
)
