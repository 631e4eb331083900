package model

import "time"

// ProjectEvent is one logged customer project. Events stay on the live board
// until a rollover flips Archived; they are never hard-deleted outside the
// admin reset path.
type ProjectEvent struct {
	ID                  int64      `json:"id"`
	SalespersonID       string     `json:"salesperson_id"`
	SalespersonName     string     `json:"salesperson_name"`
	SalespersonInitials string     `json:"salesperson_initials"`
	ProjectTypeID       string     `json:"project_type_id"`
	ProjectName         string     `json:"project_name"`
	ProjectIcon         string     `json:"project_icon"`
	Location            string     `json:"location"`
	LoggedAt            time.Time  `json:"logged_at"`
	Archived            bool       `json:"archived"`
	ArchivedAt          *time.Time `json:"archived_at,omitempty"`
}

// WeeklyRecord is the frozen summary of one completed week. Completed and
// Target are captured at rollover time and are only changed through the
// admin override, never recomputed from events.
type WeeklyRecord struct {
	ID                     int64     `json:"id"`
	WeekDisplay            string    `json:"week_display"`
	Completed              int       `json:"completed"`
	Target                 int       `json:"target"`
	WeekEndDate            time.Time `json:"week_end_date"`
	TopSalespersonName     string    `json:"top_salesperson_name"`
	TopSalespersonProjects int       `json:"top_salesperson_projects"`
	LoggedAt               time.Time `json:"logged_at"`
}

// WeeklyRecordPatch is the admin override payload. Nil fields are left
// untouched.
type WeeklyRecordPatch struct {
	Completed              *int    `json:"completed"`
	TopSalespersonName     *string `json:"top_salesperson_name"`
	TopSalespersonProjects *int    `json:"top_salesperson_projects"`
}
