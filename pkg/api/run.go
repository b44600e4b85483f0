package api

import (
	"github.com/trellisml/trellis/pkg/runs"
)

type Run struct {
	Id       string `json:"id" csv:"id"`
	Pipeline string `json:"pipeline" csv:"pipeline"`
	Status   string `json:"status" csv:"status"`
	Start    int64  `json:"start" csv:"start"`
	End      int64  `json:"end,omitempty" csv:"end"`
	Error    string `json:"error,omitempty" csv:"error"`
}

func NewRun(r *runs.Run) *Run {
	apiRun := &Run{
		Id:       r.Id(),
		Pipeline: r.Pipeline(),
		Status:   string(r.Status()),
		Start:    r.Start().Unix(),
	}

	if !r.End().IsZero() {
		apiRun.End = r.End().Unix()
	}

	if err := r.Err(); err != nil {
		apiRun.Error = err.Error()
	}

	return apiRun
}
