package model

import "time"

// Student is one roster entry.  Rosters are replaced wholesale on every
// upload, so a Student is never mutated after creation; seating plans
// copy the fields they need instead of referencing the row.
//
// Fields:
//  ID             – primary key identifier.
//  RegisterNumber – unique registration number.
//  Name           – display name.
//  Department     – department or group tag.
//  Subject        – subject the student sits the exam for.
//  UploadedAt     – when the roster containing this entry was ingested.
type Student struct {
    ID             uint64    `json:"id"`              // students.id
    RegisterNumber string    `json:"register_number"` // students.register_number
    Name           string    `json:"name"`            // students.name
    Department     string    `json:"department"`      // students.department
    Subject        string    `json:"subject"`         // students.subject
    UploadedAt     time.Time `json:"uploaded_at"`     // students.uploaded_at
}
