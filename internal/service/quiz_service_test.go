package service

import (
	"errors"
	"testing"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/util"
)

func (f *fixtures) quizService() *QuizService {
	return NewQuizService(f.quizzes, f.lessons, f.courses, f.attempts)
}

func TestCreateQuizOnePerLesson(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	_, lessons := f.createCourse(t, instructor.ID, "go-basics", 1)

	claims := &util.Claims{UserID: instructor.ID, Role: model.Instructor}
	svc := f.quizService()

	quiz, err := svc.CreateQuiz(lessons[0].ID, claims, QuizRequest{Title: "Checkpoint"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if quiz.PassingScore != 70 || quiz.MaxAttempts != 3 || quiz.TimeLimitMinutes != 30 {
		t.Errorf("defaults not applied: %+v", quiz)
	}

	_, err = svc.CreateQuiz(lessons[0].ID, claims, QuizRequest{Title: "Second"})
	if !errors.Is(err, util.ErrQuizExists) {
		t.Fatalf("err = %v, want ErrQuizExists", err)
	}
}

func TestCreateQuizOwnership(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	outsider := f.createUser(t, "outsider", model.Instructor)
	admin := f.createUser(t, "admin", model.Admin)
	_, lessons := f.createCourse(t, instructor.ID, "go-basics", 2)

	svc := f.quizService()

	_, err := svc.CreateQuiz(lessons[0].ID, &util.Claims{UserID: outsider.ID, Role: model.Instructor}, QuizRequest{Title: "Nope"})
	if !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("outsider err = %v, want ErrPermissionDenied", err)
	}

	if _, err := svc.CreateQuiz(lessons[1].ID, &util.Claims{UserID: admin.ID, Role: model.Admin}, QuizRequest{Title: "Admin quiz"}); err != nil {
		t.Errorf("admin err = %v, want nil", err)
	}
}

func TestAddAndUpdateQuestion(t *testing.T) {
	f := newFixtures(t)
	instructor := f.createUser(t, "teach", model.Instructor)
	_, lessons := f.createCourse(t, instructor.ID, "go-basics", 1)
	quiz := f.createQuiz(t, lessons[0].ID, 0)

	claims := &util.Claims{UserID: instructor.ID, Role: model.Instructor}
	svc := f.quizService()

	question, err := svc.AddQuestion(quiz.ID, claims, QuestionRequest{
		QuestionText: "What closes a channel?",
		Order:        1,
		Options: []OptionRequest{
			{OptionText: "close(ch)", IsCorrect: true, Order: 1},
			{OptionText: "ch.Close()", IsCorrect: false, Order: 2},
		},
	})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	if question.QuestionType != model.MultipleChoice || question.Points != 1 {
		t.Errorf("defaults not applied: %+v", question)
	}
	if len(question.Options) != 2 {
		t.Fatalf("options = %d, want 2", len(question.Options))
	}

	updated, err := svc.UpdateQuestion(question.ID, claims, QuestionRequest{
		QuestionText: "How is a channel closed?",
		Order:        1,
		Options: []OptionRequest{
			{OptionText: "close(ch)", IsCorrect: true, Order: 1},
			{OptionText: "delete(ch)", IsCorrect: false, Order: 2},
			{OptionText: "ch = nil", IsCorrect: false, Order: 3},
		},
	})
	if err != nil {
		t.Fatalf("update question: %v", err)
	}
	if updated.QuestionText != "How is a channel closed?" {
		t.Errorf("text not updated: %q", updated.QuestionText)
	}
	if len(updated.Options) != 3 {
		t.Errorf("options = %d, want 3 after replacement", len(updated.Options))
	}
}

func TestListAttemptsUnknownQuiz(t *testing.T) {
	f := newFixtures(t)
	student := f.createUser(t, "student", model.Student)

	_, err := f.quizService().ListAttempts(student.ID, 9999)
	if !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound", err)
	}
}
