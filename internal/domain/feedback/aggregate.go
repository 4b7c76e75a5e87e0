package feedback

import "sort"

type CourseRating struct {
	CourseName    string  `json:"course_name"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
	FeedbackCount int     `json:"feedback_count"`
}

type Summary struct {
	Courses []CourseRating `json:"courses"`
	// Histogram always has keys 1..5.
	Histogram map[int]int `json:"histogram"`
}

// Aggregate groups rows by course name and averages the non-null ratings per
// group. Groups without ratings average 0. Courses are sorted by name.
func Aggregate(rows []Feedback) Summary {
	type acc struct {
		sum, rated, total int
	}
	groups := make(map[string]*acc)
	histogram := make(map[int]int, MaxRating)
	for r := MinRating; r <= MaxRating; r++ {
		histogram[r] = 0
	}

	for _, row := range rows {
		g, ok := groups[row.CourseName]
		if !ok {
			g = &acc{}
			groups[row.CourseName] = g
		}
		g.total++
		if row.Rating == nil {
			continue
		}
		g.sum += *row.Rating
		g.rated++
		if *row.Rating >= MinRating && *row.Rating <= MaxRating {
			histogram[*row.Rating]++
		}
	}

	courses := make([]CourseRating, 0, len(groups))
	for name, g := range groups {
		cr := CourseRating{CourseName: name, RatingCount: g.rated, FeedbackCount: g.total}
		if g.rated > 0 {
			cr.AverageRating = float64(g.sum) / float64(g.rated)
		}
		courses = append(courses, cr)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].CourseName < courses[j].CourseName })

	return Summary{Courses: courses, Histogram: histogram}
}
