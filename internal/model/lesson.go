package model

import "time"

// Lesson is a single unit of course content.  It belongs to exactly
// one section, which in turn belongs to exactly one course.  The
// MediaPath references an object in the media bucket; lessons without
// uploaded media keep it nil and have nothing to authorize or sign.
//
// Fields:
//  ID        – primary key identifier.
//  SectionID – section this lesson belongs to.
//  Title     – lesson title shown in the curriculum.
//  Position  – zero-based ordering index within the section.
//  MediaPath – object key of the lesson video (nullable).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Lesson struct {
    ID        uint64    // lessons.id
    SectionID uint64    // lessons.section_id
    Title     string    // lessons.title
    Position  uint32    // lessons.position
    MediaPath *string   // lessons.media_path (nullable)
    CreatedAt time.Time // lessons.created_at
    UpdatedAt time.Time // lessons.updated_at
}
