package service

import (
	"errors"
	"testing"
	"time"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/util"
)

func TestEnrollPublishedCourse(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	course, _ := f.createCourse(t, instructor.ID, "go-basics", 2)

	enrollment, err := f.enrollmentService().Enroll(student.ID, course.Slug, time.Now())
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if enrollment.CourseID != course.ID || enrollment.StudentID != student.ID {
		t.Errorf("enrollment links wrong rows: %+v", enrollment)
	}
	if enrollment.IsCompleted {
		t.Error("new enrollment must not be completed")
	}
}

func TestEnrollRejectsDraftCourse(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	course, _ := f.createCourse(t, instructor.ID, "draft-course", 1)
	course.Status = model.CourseDraft
	if err := f.courses.Update(course); err != nil {
		t.Fatalf("update course: %v", err)
	}

	_, err := f.enrollmentService().Enroll(student.ID, course.Slug, time.Now())
	if !errors.Is(err, util.ErrCourseNotPublished) {
		t.Fatalf("err = %v, want ErrCourseNotPublished", err)
	}
}

func TestEnrollRejectsDuplicate(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	course, _ := f.createCourse(t, instructor.ID, "go-basics", 1)

	svc := f.enrollmentService()
	if _, err := svc.Enroll(student.ID, course.Slug, time.Now()); err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	_, err := svc.Enroll(student.ID, course.Slug, time.Now())
	if !errors.Is(err, util.ErrAlreadyEnrolled) {
		t.Fatalf("err = %v, want ErrAlreadyEnrolled", err)
	}
}

func TestEnrollUnknownCourse(t *testing.T) {
	f := newFixtures(t)
	student := f.createUser(t, "student", model.Student)

	_, err := f.enrollmentService().Enroll(student.ID, "missing", time.Now())
	if !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestListForStudentCarriesProgress(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	course, lessons := f.createCourse(t, instructor.ID, "go-basics", 4)
	f.enroll(t, student.ID, course.ID)

	if _, err := f.lessonService().MarkComplete(student.ID, lessons[0].ID, time.Now()); err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	views, err := f.enrollmentService().ListForStudent(student.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}
	if views[0].ProgressPercentage != 25.0 {
		t.Errorf("progress = %v, want 25", views[0].ProgressPercentage)
	}
}

func TestCompleteEnrollment(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	course, _ := f.createCourse(t, instructor.ID, "go-basics", 3)
	enrollment := f.enroll(t, student.ID, course.ID)

	claims := &util.Claims{UserID: student.ID, Role: model.Student}
	svc := f.enrollmentService()

	done, err := svc.Complete(enrollment.ID, claims, time.Now())
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !done.IsCompleted || done.CompletedAt == nil {
		t.Fatalf("enrollment not completed: %+v", done)
	}
	firstCompletedAt := *done.CompletedAt

	// A repeat call keeps the original completion time.
	again, err := svc.Complete(enrollment.ID, claims, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("repeat complete: %v", err)
	}
	if !again.CompletedAt.Equal(firstCompletedAt) {
		t.Errorf("CompletedAt changed on repeat call: %v vs %v", again.CompletedAt, firstCompletedAt)
	}

	// Completion overrides lesson progress entirely.
	pct, err := f.progressService().ProgressPercentage(again)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if pct != 100 {
		t.Errorf("progress = %v, want 100", pct)
	}
}

func TestGetDetailPermissions(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	other := f.createUser(t, "other", model.Student)
	admin := f.createUser(t, "admin", model.Admin)
	course, _ := f.createCourse(t, instructor.ID, "go-basics", 1)
	enrollment := f.enroll(t, student.ID, course.ID)

	svc := f.enrollmentService()

	if _, err := svc.GetDetail(enrollment.ID, &util.Claims{UserID: other.ID, Role: model.Student}); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("other student err = %v, want ErrPermissionDenied", err)
	}

	if _, err := svc.GetDetail(enrollment.ID, &util.Claims{UserID: student.ID, Role: model.Student}); err != nil {
		t.Errorf("owner err = %v, want nil", err)
	}

	if _, err := svc.GetDetail(enrollment.ID, &util.Claims{UserID: admin.ID, Role: model.Admin}); err != nil {
		t.Errorf("admin err = %v, want nil", err)
	}
}
