package model

import "time"

// Course represents a sellable course owned by a single author.  A
// course contains an ordered list of sections, each of which groups
// lessons.  Courses start out unpublished; the author flips the
// publication flag when the content is ready for the catalog.
//
// Fields:
//  ID          – primary key identifier.
//  AuthorID    – user who created and owns the course.
//  Title       – human-friendly course title.
//  Slug        – URL-safe identifier derived from the title (unique).
//  IsPublished – whether the course is visible in the public catalog.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Course struct {
    ID          uint64    // courses.id
    AuthorID    uint64    // courses.author_id
    Title       string    // courses.title
    Slug        string    // courses.slug
    IsPublished bool      // courses.is_published
    CreatedAt   time.Time // courses.created_at
    UpdatedAt   time.Time // courses.updated_at
}

// Section groups lessons inside a course and carries an explicit
// position so the curriculum keeps its authored order.
//
// Fields:
//  ID        – primary key identifier.
//  CourseID  – course this section belongs to.
//  Title     – section heading shown in the curriculum.
//  Position  – zero-based ordering index within the course.
//  CreatedAt – creation timestamp.
type Section struct {
    ID        uint64    // sections.id
    CourseID  uint64    // sections.course_id
    Title     string    // sections.title
    Position  uint32    // sections.position
    CreatedAt time.Time // sections.created_at
}
