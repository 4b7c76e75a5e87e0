package course

type Progress struct {
	CompletedCount int     `json:"completed_count"`
	TotalModules   int     `json:"total_modules"`
	Percentage     float64 `json:"percentage"`
}

// ComputeProgress derives userID's completion of a course from its modules.
// A course without modules is 0%.
func ComputeProgress(userID string, modules []Module) Progress {
	p := Progress{TotalModules: len(modules)}
	for _, m := range modules {
		if m.IsCompletedBy(userID) {
			p.CompletedCount++
		}
	}
	if p.TotalModules > 0 {
		p.Percentage = 100 * float64(p.CompletedCount) / float64(p.TotalModules)
	}
	return p
}

type Bucket string

const (
	BucketNotStarted Bucket = "not_started"
	BucketInProgress Bucket = "in_progress"
	BucketCompleted  Bucket = "completed"
)

func BucketOf(p Progress) Bucket {
	switch {
	case p.Percentage <= 0:
		return BucketNotStarted
	case p.Percentage >= 100:
		return BucketCompleted
	default:
		return BucketInProgress
	}
}

type ProgressSummary struct {
	NotStarted int `json:"not_started"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// Summarize counts progresses per bucket.
func Summarize(progresses []Progress) ProgressSummary {
	var s ProgressSummary
	for _, p := range progresses {
		switch BucketOf(p) {
		case BucketNotStarted:
			s.NotStarted++
		case BucketInProgress:
			s.InProgress++
		case BucketCompleted:
			s.Completed++
		}
	}
	return s
}
