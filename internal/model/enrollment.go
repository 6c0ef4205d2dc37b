package model

import "time"

// Enrollment records that a user has standing access to a course's
// content.  At most one row exists per (user, course) pair; the
// repository treats a duplicate insert as success so enrolling twice
// is harmless.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – enrolled user.
//  CourseID  – course the user can access.
//  CreatedAt – when the enrollment was made.
type Enrollment struct {
    ID        uint64    // enrollments.id
    UserID    uint64    // enrollments.user_id
    CourseID  uint64    // enrollments.course_id
    CreatedAt time.Time // enrollments.created_at
}

// LessonProgress tracks a user's completion of a single lesson.  The
// (user, lesson) pair is unique and writes are upserts, so re-marking
// a lesson complete produces the same logical state with a refreshed
// completion timestamp.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user whose progress this row records.
//  LessonID    – lesson being tracked.
//  Completed   – whether the lesson has been completed.
//  CompletedAt – when the lesson was last marked complete.
type LessonProgress struct {
    ID          uint64    // lesson_progress.id
    UserID      uint64    // lesson_progress.user_id
    LessonID    uint64    // lesson_progress.lesson_id
    Completed   bool      // lesson_progress.completed
    CompletedAt time.Time // lesson_progress.completed_at
}
