// Package queue defines message payloads exchanged over the message broker.
package queue

// EnrollmentCreatedEvent is published when a user enrolls in a course for
// the first time. It contains enough information for downstream consumers
// to log, notify, or trigger analytics without querying the primary
// database. Repeat enrollment attempts are idempotent no-ops and do not
// publish.
type EnrollmentCreatedEvent struct {
    UserID      uint64 `json:"user_id"`
    CourseID    uint64 `json:"course_id"`
    CourseTitle string `json:"course_title"`
    CourseSlug  string `json:"course_slug"`
    AuthorID    uint64 `json:"author_id"`
    EnrolledAt  string `json:"enrolled_at"`
}
