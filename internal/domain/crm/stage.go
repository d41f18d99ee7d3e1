package crm

import "github.com/aircooling/backoffice/internal/models"

type Stage string

const (
	StageNew       Stage = "new"
	StageContacted Stage = "contacted"
	StageQuoted    Stage = "quoted"
	StageScheduled Stage = "scheduled"
	StageWon       Stage = "won"
	StageLost      Stage = "lost"
)

// Stages in board order.
var Stages = []Stage{
	StageNew,
	StageContacted,
	StageQuoted,
	StageScheduled,
	StageWon,
	StageLost,
}

func ParseStage(s string) (Stage, bool) {
	for _, st := range Stages {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// ===============================
// Board
// ===============================

type Column struct {
	Stage   Stage                   `json:"stage"`
	Records []models.PipelineRecord `json:"records"`
}

// BuildBoard groups records into one column per stage, in board order.
// Records with an unknown stage land in the first column.
func BuildBoard(records []models.PipelineRecord) []Column {
	idx := make(map[Stage]int, len(Stages))
	cols := make([]Column, len(Stages))
	for i, st := range Stages {
		idx[st] = i
		cols[i] = Column{Stage: st, Records: []models.PipelineRecord{}}
	}

	for _, rec := range records {
		i, ok := idx[Stage(rec.Stage)]
		if !ok {
			i = 0
		}
		cols[i].Records = append(cols[i].Records, rec)
	}
	return cols
}
