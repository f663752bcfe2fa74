package model

// DisplayKind is the merge-readiness category shown for a pull request.
type DisplayKind string

const (
	DisplaySuccessAndApproved      DisplayKind = "success_and_approved"
	DisplaySuccessAwaitingApproval DisplayKind = "success_awaiting_approval"
	DisplayDraft                   DisplayKind = "draft"
	DisplaySuccess                 DisplayKind = "success"
	DisplayPending                 DisplayKind = "pending"
	DisplayFailure                 DisplayKind = "failure"
	DisplayUnknown                 DisplayKind = "unknown"
	DisplayNeedsAttention          DisplayKind = "needs_attention"
	DisplayError                   DisplayKind = "error"
	DisplayQueued                  DisplayKind = "queued"
)

// DisplayKinds lists every kind in cascade order.
var DisplayKinds = []DisplayKind{
	DisplaySuccessAndApproved,
	DisplaySuccessAwaitingApproval,
	DisplayDraft,
	DisplaySuccess,
	DisplayPending,
	DisplayFailure,
	DisplayUnknown,
	DisplayNeedsAttention,
	DisplayError,
	DisplayQueued,
}

// DisplayStatus is a DisplayKind plus its payload. Reviewer is only set for
// DisplaySuccessAwaitingApproval.
type DisplayStatus struct {
	Kind     DisplayKind
	Reviewer string
}

// DisplayKindFor is the fixed mapping from a check outcome to a display kind.
// It is used for the overall rollup when CI is not green and for every
// individual check's glyph. EXPECTED (a required status that has not been
// reported yet) is shown as pending.
func DisplayKindFor(status CheckStatus) DisplayKind {
	switch status {
	case CheckStatusError:
		return DisplayError
	case CheckStatusExpected:
		return DisplayPending
	case CheckStatusFailure:
		return DisplayFailure
	case CheckStatusPending:
		return DisplayPending
	case CheckStatusSuccess:
		return DisplaySuccess
	case CheckStatusActionRequired:
		return DisplayNeedsAttention
	case CheckStatusTimedOut:
		return DisplayError
	case CheckStatusCancelled:
		return DisplayError
	case CheckStatusNeutral:
		return DisplaySuccess
	case CheckStatusSkipped:
		return DisplaySuccess
	case CheckStatusStartupFailure:
		return DisplayError
	case CheckStatusStale:
		return DisplayError
	default:
		return DisplayUnknown
	}
}
