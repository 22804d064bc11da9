package domain

// SubmissionOutcome classifies the result of the last submit attempt.
type SubmissionOutcome string

const (
	OutcomeIdle    SubmissionOutcome = "idle"
	OutcomeSuccess SubmissionOutcome = "success"
	OutcomeFailure SubmissionOutcome = "failure"
)

const (
	FailureBanner = "Something went wrong"
	successBanner = "Thank you for your order, "
)

// SuccessBanner returns the message shown after a successful order.
func SuccessBanner(fullName string) string {
	return successBanner + fullName + "!"
}
