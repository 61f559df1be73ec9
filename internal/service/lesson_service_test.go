package service

import (
	"errors"
	"testing"
	"time"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/util"
)

func TestMarkCompleteIsIdempotent(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	course, lessons := f.createCourse(t, instructor.ID, "go-basics", 2)
	f.enroll(t, student.ID, course.ID)

	svc := f.lessonService()
	first, err := svc.MarkComplete(student.ID, lessons[0].ID, time.Now())
	if err != nil {
		t.Fatalf("first mark: %v", err)
	}
	second, err := svc.MarkComplete(student.ID, lessons[0].ID, time.Now())
	if err != nil {
		t.Fatalf("second mark: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected the same progress row, got %d and %d", first.ID, second.ID)
	}

	var count int64
	f.db.Model(&model.LessonProgress{}).
		Where("student_id = ? AND lesson_id = ?", student.ID, lessons[0].ID).
		Count(&count)
	if count != 1 {
		t.Errorf("progress rows = %d, want 1", count)
	}
}

func TestMarkCompleteRequiresEnrollment(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	_, lessons := f.createCourse(t, instructor.ID, "go-basics", 1)

	_, err := f.lessonService().MarkComplete(student.ID, lessons[0].ID, time.Now())
	if !errors.Is(err, util.ErrNotEnrolled) {
		t.Fatalf("err = %v, want ErrNotEnrolled", err)
	}
}

func TestMarkCompleteUnknownLesson(t *testing.T) {
	f := newFixtures(t)
	student := f.createUser(t, "student", model.Student)

	_, err := f.lessonService().MarkComplete(student.ID, 9999, time.Now())
	if !errors.Is(err, util.ErrLessonNotFound) {
		t.Fatalf("err = %v, want ErrLessonNotFound", err)
	}
}

func TestTrackTimeAccumulates(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	course, lessons := f.createCourse(t, instructor.ID, "go-basics", 1)
	f.enroll(t, student.ID, course.ID)

	svc := f.lessonService()
	if _, err := svc.TrackTime(student.ID, lessons[0].ID, 10, time.Now()); err != nil {
		t.Fatalf("first track: %v", err)
	}
	second := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	progress, err := svc.TrackTime(student.ID, lessons[0].ID, 5, second)
	if err != nil {
		t.Fatalf("second track: %v", err)
	}
	if progress.TimeSpentMinutes != 15 {
		t.Errorf("time spent = %d, want 15", progress.TimeSpentMinutes)
	}
	if !progress.LastAccessed.Equal(second) {
		t.Errorf("last accessed = %v, want the supplied time %v", progress.LastAccessed, second)
	}
}

func TestTrackTimeWithoutEnrollment(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	_, lessons := f.createCourse(t, instructor.ID, "go-basics", 1)

	// Time tracking works for free preview lessons, so no enrollment
	// check applies.
	progress, err := f.lessonService().TrackTime(student.ID, lessons[0].ID, 7, time.Now())
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if progress.TimeSpentMinutes != 7 {
		t.Errorf("time spent = %d, want 7", progress.TimeSpentMinutes)
	}
	if progress.IsCompleted {
		t.Error("tracking time must not complete the lesson")
	}
}

func TestTrackTimeUnknownLesson(t *testing.T) {
	f := newFixtures(t)
	student := f.createUser(t, "student", model.Student)

	_, err := f.lessonService().TrackTime(student.ID, 9999, 5, time.Now())
	if !errors.Is(err, util.ErrLessonNotFound) {
		t.Fatalf("err = %v, want ErrLessonNotFound", err)
	}
}
