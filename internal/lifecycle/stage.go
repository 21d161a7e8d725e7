package lifecycle

// Stage is the coarse phase of a case's lifecycle.
type Stage string

const (
	StageAssessment  Stage = "ASSESSMENT"
	StageReview      Stage = "REVIEW"
	StageStrategy    Stage = "STRATEGY"
	StageNegotiation Stage = "NEGOTIATION"
	StageSettlement  Stage = "SETTLEMENT"
	StageClosed      Stage = "CLOSED"
	StageRejected    Stage = "REJECTED"
)

// Stages lists every stage in lifecycle order. CLOSED and REJECTED are
// terminal; the five preceding stages are the active lifecycle.
var Stages = []Stage{
	StageAssessment,
	StageReview,
	StageStrategy,
	StageNegotiation,
	StageSettlement,
	StageClosed,
	StageRejected,
}

// StageInfo carries the client-facing name and description for a stage.
type StageInfo struct {
	Name        string
	Description string
}

var stageInfos = map[Stage]StageInfo{
	StageAssessment: {
		Name:        "Assessment",
		Description: "We are reviewing your financial situation and outstanding debt obligations.",
	},
	StageReview: {
		Name:        "Document Review",
		Description: "Our team is verifying the documents you provided with your lenders.",
	},
	StageStrategy: {
		Name:        "Strategy Planning",
		Description: "We are preparing a settlement strategy tailored to your case.",
	},
	StageNegotiation: {
		Name:        "Negotiation",
		Description: "We are negotiating with your lenders on your behalf.",
	},
	StageSettlement: {
		Name:        "Settlement",
		Description: "A settlement has been reached and is being finalised.",
	},
	StageClosed: {
		Name:        "Closed",
		Description: "Your case has been resolved and closed.",
	},
	StageRejected: {
		Name:        "Rejected",
		Description: "Your case could not be taken forward.",
	},
}

// Info returns the display name and description for s. Unknown stages
// return a zero StageInfo; callers are expected to validate first.
func Info(s Stage) StageInfo {
	return stageInfos[s]
}

// Valid reports whether s is one of the seven known stages.
func Valid(s Stage) bool {
	_, ok := stageInfos[s]
	return ok
}

// IsTerminal reports whether s is an absorbing stage.
func (s Stage) IsTerminal() bool {
	return s == StageClosed || s == StageRejected
}

func indexOf(s Stage) int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// NextStage returns the stage immediately after s in lifecycle order,
// or ok=false when s is the last stage or unknown.
func NextStage(s Stage) (Stage, bool) {
	i := indexOf(s)
	if i < 0 || i == len(Stages)-1 {
		return "", false
	}
	return Stages[i+1], true
}

// PreviousStage returns the stage immediately before s in lifecycle order,
// or ok=false when s is the first stage or unknown.
func PreviousStage(s Stage) (Stage, bool) {
	i := indexOf(s)
	if i <= 0 {
		return "", false
	}
	return Stages[i-1], true
}
