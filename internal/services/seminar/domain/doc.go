// Package domain holds the seminar vocabulary: user roles, submission and
// session types, the scoring rubric, and award categories, together with
// the validation rules every write path enforces before touching storage.
package domain
