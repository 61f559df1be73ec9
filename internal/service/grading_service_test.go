package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/util"
)

func TestSubmitAttemptScoresAndPasses(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	_, lessons := f.createCourse(t, instructor.ID, "go-basics", 1)
	f.enroll(t, student.ID, mustCourseID(t, f, lessons[0].ID))
	quiz := f.createQuiz(t, lessons[0].ID, 4)

	loaded, err := f.quizzes.FindByID(quiz.ID)
	if err != nil {
		t.Fatalf("load quiz: %v", err)
	}

	answers := []AnswerSubmission{
		answerFor(loaded.Questions[0], true),
		answerFor(loaded.Questions[1], true),
		answerFor(loaded.Questions[2], true),
		answerFor(loaded.Questions[3], false),
	}

	attempt, err := f.gradingService().SubmitAttempt(student.ID, quiz.ID, answers, time.Now())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if attempt.Score != 75 {
		t.Errorf("score = %d, want 75", attempt.Score)
	}
	if !attempt.Passed {
		t.Error("expected attempt to pass at 75 with passing score 70")
	}
	if attempt.CompletedAt == nil {
		t.Error("expected CompletedAt to be set")
	}
}

func TestSubmitAttemptAllWrongFails(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	_, lessons := f.createCourse(t, instructor.ID, "go-basics", 1)
	f.enroll(t, student.ID, mustCourseID(t, f, lessons[0].ID))
	quiz := f.createQuiz(t, lessons[0].ID, 2)

	loaded, _ := f.quizzes.FindByID(quiz.ID)
	answers := []AnswerSubmission{
		answerFor(loaded.Questions[0], false),
		answerFor(loaded.Questions[1], false),
	}

	attempt, err := f.gradingService().SubmitAttempt(student.ID, quiz.ID, answers, time.Now())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if attempt.Score != 0 || attempt.Passed {
		t.Errorf("got score=%d passed=%v, want 0/false", attempt.Score, attempt.Passed)
	}
}

func TestSubmitAttemptEmptyQuizScoresZero(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	_, lessons := f.createCourse(t, instructor.ID, "go-basics", 1)
	f.enroll(t, student.ID, mustCourseID(t, f, lessons[0].ID))
	quiz := f.createQuiz(t, lessons[0].ID, 0)

	attempt, err := f.gradingService().SubmitAttempt(student.ID, quiz.ID, nil, time.Now())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if attempt.Score != 0 {
		t.Errorf("score = %d, want 0 for quiz without questions", attempt.Score)
	}
	if attempt.Passed {
		t.Error("a zero score must not pass a 70% threshold")
	}

	// With the threshold lowered to zero the same empty submission
	// passes, since passing compares score >= passing_score.
	if err := f.db.Model(&model.Quiz{}).Where("id = ?", quiz.ID).Update("passing_score", 0).Error; err != nil {
		t.Fatalf("lower passing score: %v", err)
	}
	attempt, err = f.gradingService().SubmitAttempt(student.ID, quiz.ID, nil, time.Now())
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if attempt.Score != 0 {
		t.Errorf("score = %d, want 0", attempt.Score)
	}
	if !attempt.Passed {
		t.Error("a zero score must pass a zero threshold")
	}
}

func TestSubmitAttemptNotEnrolled(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	_, lessons := f.createCourse(t, instructor.ID, "go-basics", 1)
	quiz := f.createQuiz(t, lessons[0].ID, 1)

	_, err := f.gradingService().SubmitAttempt(student.ID, quiz.ID, nil, time.Now())
	if !errors.Is(err, util.ErrNotEnrolled) {
		t.Fatalf("err = %v, want ErrNotEnrolled", err)
	}

	attempts, _ := f.attempts.ListByStudentAndQuiz(student.ID, quiz.ID)
	if len(attempts) != 0 {
		t.Errorf("expected no attempt rows, got %d", len(attempts))
	}
}

func TestSubmitAttemptQuizNotFound(t *testing.T) {
	f := newFixtures(t)
	student := f.createUser(t, "student", model.Student)

	_, err := f.gradingService().SubmitAttempt(student.ID, 9999, nil, time.Now())
	if !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestSubmitAttemptEnforcesLimit(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	_, lessons := f.createCourse(t, instructor.ID, "go-basics", 1)
	f.enroll(t, student.ID, mustCourseID(t, f, lessons[0].ID))
	quiz := f.createQuiz(t, lessons[0].ID, 1)

	svc := f.gradingService()
	for i := 0; i < quiz.MaxAttempts; i++ {
		if _, err := svc.SubmitAttempt(student.ID, quiz.ID, nil, time.Now()); err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
	}

	_, err := svc.SubmitAttempt(student.ID, quiz.ID, nil, time.Now())
	if !errors.Is(err, util.ErrAttemptLimitExceeded) {
		t.Fatalf("err = %v, want ErrAttemptLimitExceeded", err)
	}

	attempts, _ := f.attempts.ListByStudentAndQuiz(student.ID, quiz.ID)
	if len(attempts) != quiz.MaxAttempts {
		t.Errorf("attempt rows = %d, want %d", len(attempts), quiz.MaxAttempts)
	}
}

func TestSubmitAttemptIgnoresUnknownQuestions(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	_, lessons := f.createCourse(t, instructor.ID, "go-basics", 1)
	f.enroll(t, student.ID, mustCourseID(t, f, lessons[0].ID))
	quiz := f.createQuiz(t, lessons[0].ID, 2)

	loaded, _ := f.quizzes.FindByID(quiz.ID)
	answers := []AnswerSubmission{
		answerFor(loaded.Questions[0], true),
		{QuestionID: "424242", OptionID: "1"},
	}

	attempt, err := f.gradingService().SubmitAttempt(student.ID, quiz.ID, answers, time.Now())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if attempt.Score != 50 {
		t.Errorf("score = %d, want 50 (stray answer must not count)", attempt.Score)
	}
}

func TestSubmitAttemptTrueFalseNotScored(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	student := f.createUser(t, "student", model.Student)
	_, lessons := f.createCourse(t, instructor.ID, "go-basics", 1)
	f.enroll(t, student.ID, mustCourseID(t, f, lessons[0].ID))

	quiz := &model.Quiz{
		LessonID:         lessons[0].ID,
		Title:            "Mixed",
		TimeLimitMinutes: 30,
		PassingScore:     70,
		MaxAttempts:      3,
		Questions: []model.QuizQuestion{
			{
				QuestionText: "MC",
				QuestionType: model.MultipleChoice,
				Points:       1,
				Order:        1,
				Options: []model.QuizOption{
					{OptionText: "right", IsCorrect: true, Order: 1},
					{OptionText: "wrong", IsCorrect: false, Order: 2},
				},
			},
			{
				QuestionText: "TF",
				QuestionType: model.TrueFalse,
				Points:       1,
				Order:        2,
				Options: []model.QuizOption{
					{OptionText: "true", IsCorrect: true, Order: 1},
					{OptionText: "false", IsCorrect: false, Order: 2},
				},
			},
		},
	}
	if err := f.quizzes.Create(quiz); err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	loaded, _ := f.quizzes.FindByID(quiz.ID)
	answers := []AnswerSubmission{
		answerFor(loaded.Questions[0], true),
		answerFor(loaded.Questions[1], true),
	}

	attempt, err := f.gradingService().SubmitAttempt(student.ID, quiz.ID, answers, time.Now())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	// Only the multiple choice question can earn credit, but the
	// true/false question still counts toward the total.
	if attempt.Score != 50 {
		t.Errorf("score = %d, want 50", attempt.Score)
	}
}

func TestFlexIDUnmarshal(t *testing.T) {
	var payload struct {
		ID FlexID `json:"id"`
	}

	if err := json.Unmarshal([]byte(`{"id": 17}`), &payload); err != nil {
		t.Fatalf("number: %v", err)
	}
	if !payload.ID.Matches(17) {
		t.Errorf("numeric id %q does not match 17", payload.ID)
	}

	if err := json.Unmarshal([]byte(`{"id": "17"}`), &payload); err != nil {
		t.Fatalf("string: %v", err)
	}
	if !payload.ID.Matches(17) {
		t.Errorf("string id %q does not match 17", payload.ID)
	}

	if err := json.Unmarshal([]byte(`{"id": true}`), &payload); err == nil {
		t.Error("expected error for boolean id")
	}
}

// mustCourseID resolves the owning course of a lesson for fixtures.
func mustCourseID(t *testing.T, f *fixtures, lessonID uint) uint {
	t.Helper()
	courseID, err := f.lessons.CourseID(lessonID)
	if err != nil {
		t.Fatalf("resolve course for lesson %d: %v", lessonID, err)
	}
	return courseID
}
