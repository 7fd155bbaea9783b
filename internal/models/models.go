package models

type Status string

const (
    StatusIdle       Status = "IDLE"
    StatusRequesting Status = "REQUESTING"
    StatusStreaming  Status = "STREAMING"
    StatusRetrying   Status = "RETRYING"
    StatusCompleted  Status = "COMPLETED"
    StatusFailed     Status = "FAILED"
)

type SegmentKind string

const (
    PlainText   SegmentKind = "plain"
    InlineMath  SegmentKind = "inline_math"
    DisplayMath SegmentKind = "display_math"
)

// Segment is one unit of normalized model output, ready for the frontend
// to render according to its kind.
type Segment struct {
    Kind    SegmentKind `json:"kind"`
    Content string      `json:"content"`
}

type SolveRequest struct {
    Question string `json:"question"`
}

type SolveResponse struct {
    Answer   string    `json:"answer"`
    Segments []Segment `json:"segments"`
    Status   Status    `json:"status"`
}
