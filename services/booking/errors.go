package booking

import "mentora/utils"

// Thin constructors over the shared taxonomy so call sites read cleanly.

func conflictErr(msg string) error {
	return utils.NewServiceError(utils.CodeConflict, msg)
}

func notFoundErr(msg string) error {
	return utils.NewServiceError(utils.CodeNotFound, msg)
}

func forbiddenErr(msg string) error {
	return utils.NewServiceError(utils.CodeForbidden, msg)
}

func invalidTransitionErr(msg string) error {
	return utils.NewServiceError(utils.CodeInvalidTransition, msg)
}

func signatureErr(msg string) error {
	return utils.NewServiceError(utils.CodeSignatureMismatch, msg)
}
