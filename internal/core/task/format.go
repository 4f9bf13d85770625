package task

import "time"

// CreatedDateLayout is the day/month/two-digit-year layout shown next to a task.
const CreatedDateLayout = "02/01/06"

// ShareText returns the plain-text form handed to external sharing: the title,
// a newline, then the description.
func ShareText(title, description string) string {
	return title + "\n" + description
}

// FormatCreatedDate renders a creation timestamp in local time.
func FormatCreatedDate(t time.Time) string {
	return t.Local().Format(CreatedDateLayout)
}
