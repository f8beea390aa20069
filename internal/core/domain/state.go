package domain

// State is a pipeline stage of one analysis request. Every request walks
// Received → Downloading → Extracting → AwaitingAnalysis → Delivering → Done;
// Failed absorbs any non-terminal state.
type State string

const (
	StateReceived         State = "received"
	StateDownloading      State = "downloading"
	StateExtracting       State = "extracting"
	StateAwaitingAnalysis State = "awaiting_analysis"
	StateDelivering       State = "delivering"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
