package service

import (
	"testing"
	"time"

	"learning_platform_backend/internal/model"
)

func TestProgressPercentagePartial(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	course, lessons := f.createCourse(t, instructor.ID, "go-basics", 4)
	enrollment := f.enroll(t, student.ID, course.ID)

	if _, err := f.lessonService().MarkComplete(student.ID, lessons[0].ID, time.Now()); err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	pct, err := f.progressService().ProgressPercentage(enrollment)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if pct != 25.0 {
		t.Errorf("progress = %v, want 25", pct)
	}
}

func TestProgressPercentageRoundsToTwoDecimals(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	course, lessons := f.createCourse(t, instructor.ID, "go-basics", 3)
	enrollment := f.enroll(t, student.ID, course.ID)

	if _, err := f.lessonService().MarkComplete(student.ID, lessons[0].ID, time.Now()); err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	pct, err := f.progressService().ProgressPercentage(enrollment)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if pct != 33.33 {
		t.Errorf("progress = %v, want 33.33", pct)
	}
}

func TestProgressPercentageEmptyCourse(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	course, _ := f.createCourse(t, instructor.ID, "empty", 0)
	enrollment := f.enroll(t, student.ID, course.ID)

	pct, err := f.progressService().ProgressPercentage(enrollment)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if pct != 0 {
		t.Errorf("progress = %v, want 0 for a course without lessons", pct)
	}
}

func TestProgressPercentageCompletedShortCircuits(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	course, _ := f.createCourse(t, instructor.ID, "go-basics", 10)
	enrollment := f.enroll(t, student.ID, course.ID)

	// The completed flag wins even with zero lessons finished.
	enrollment.IsCompleted = true
	now := time.Now()
	enrollment.CompletedAt = &now
	if err := f.enrollments.Update(enrollment); err != nil {
		t.Fatalf("update enrollment: %v", err)
	}

	pct, err := f.progressService().ProgressPercentage(enrollment)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if pct != 100 {
		t.Errorf("progress = %v, want 100 for completed enrollment", pct)
	}
}

func TestProgressPercentageAllLessonsDone(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	course, lessons := f.createCourse(t, instructor.ID, "go-basics", 2)
	enrollment := f.enroll(t, student.ID, course.ID)

	svc := f.lessonService()
	for _, lesson := range lessons {
		if _, err := svc.MarkComplete(student.ID, lesson.ID, time.Now()); err != nil {
			t.Fatalf("mark complete: %v", err)
		}
	}

	pct, err := f.progressService().ProgressPercentage(enrollment)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if pct != 100.0 {
		t.Errorf("progress = %v, want 100", pct)
	}
}

func TestProgressReflectsNewLessons(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	course, lessons := f.createCourse(t, instructor.ID, "go-basics", 1)
	enrollment := f.enroll(t, student.ID, course.ID)

	if _, err := f.lessonService().MarkComplete(student.ID, lessons[0].ID, time.Now()); err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	pct, _ := f.progressService().ProgressPercentage(enrollment)
	if pct != 100.0 {
		t.Fatalf("progress = %v, want 100 before course grows", pct)
	}

	// Adding a lesson dilutes the percentage on the next read because
	// nothing is cached.
	var m model.CourseModule
	if err := f.db.Where("course_id = ?", course.ID).First(&m).Error; err != nil {
		t.Fatalf("load module: %v", err)
	}
	extra := model.Lesson{ModuleID: m.ID, Title: "Extra", ContentType: model.TextContent, Order: 2}
	if err := f.lessons.Create(&extra); err != nil {
		t.Fatalf("create lesson: %v", err)
	}

	pct, _ = f.progressService().ProgressPercentage(enrollment)
	if pct != 50.0 {
		t.Errorf("progress = %v, want 50 after a second lesson appears", pct)
	}
}

func TestProgressIgnoresDeletedModules(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	course, _ := f.createCourse(t, instructor.ID, "go-basics", 1)
	enrollment := f.enroll(t, student.ID, course.ID)

	extraModule := &model.CourseModule{CourseID: course.ID, Title: "Module 2", Order: 2}
	if err := f.courses.CreateModule(extraModule); err != nil {
		t.Fatalf("create module: %v", err)
	}
	extraLesson := model.Lesson{ModuleID: extraModule.ID, Title: "Removed later", ContentType: model.TextContent, Order: 1}
	if err := f.lessons.Create(&extraLesson); err != nil {
		t.Fatalf("create lesson: %v", err)
	}

	if _, err := f.lessonService().MarkComplete(student.ID, extraLesson.ID, time.Now()); err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	pct, err := f.progressService().ProgressPercentage(enrollment)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if pct != 50.0 {
		t.Fatalf("progress = %v, want 50 before the module is removed", pct)
	}

	// Soft-deleting the module must drop its lessons from both sides of
	// the ratio, completed ones included.
	if err := f.courses.DeleteModule(extraModule); err != nil {
		t.Fatalf("delete module: %v", err)
	}

	pct, err = f.progressService().ProgressPercentage(enrollment)
	if err != nil {
		t.Fatalf("progress after delete: %v", err)
	}
	if pct != 0 {
		t.Errorf("progress = %v, want 0 once the only completed lesson's module is gone", pct)
	}
}
