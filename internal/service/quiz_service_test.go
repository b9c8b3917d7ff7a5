package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"cleanleb_backend/internal/model"
	"cleanleb_backend/internal/repository"
	"cleanleb_backend/internal/util"

	"gorm.io/gorm"
)

func newQuizService(t *testing.T) (*QuizService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewQuizService(repository.NewQuizRepository(db), repository.NewUserRepository(db), db), db
}

func seedQuiz(t *testing.T, db *gorm.DB, questions []model.QuizQuestion) *model.Quiz {
	t.Helper()

	total := 0
	for _, q := range questions {
		total += q.Points
	}
	quiz := &model.Quiz{
		Title:       "Sorting Basics",
		Category:    model.RecyclingQuiz,
		Difficulty:  model.Easy,
		TotalPoints: total,
		IsActive:    true,
		Questions:   questions,
	}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	return quiz
}

func twoQuestions() []model.QuizQuestion {
	return []model.QuizQuestion{
		{Text: "Which bin takes glass?", Options: json.RawMessage(`["Green","Blue","Black"]`), CorrectAnswer: 1, Points: 10, Order: 1},
		{Text: "Compost goes where?", Options: json.RawMessage(`["Landfill","Blue","Black","Brown"]`), CorrectAnswer: 3, Points: 15, Order: 2},
	}
}

// manyQuestions builds n two-option questions whose correct answer is
// always option 0, worth 10 points each.
func manyQuestions(n int) []model.QuizQuestion {
	qs := make([]model.QuizQuestion, n)
	for i := range qs {
		qs[i] = model.QuizQuestion{
			Text:          fmt.Sprintf("question %d", i+1),
			Options:       json.RawMessage(`["yes","no"]`),
			CorrectAnswer: 0,
			Points:        10,
			Order:         i + 1,
		}
	}
	return qs
}

// answersWithCorrect answers the first correct questions with option 0
// and the rest with option 1.
func answersWithCorrect(total, correct int) []SubmittedAnswer {
	answers := make([]SubmittedAnswer, total)
	for i := correct; i < total; i++ {
		answers[i].SelectedOption = 1
	}
	return answers
}

func TestGradeAnswers(t *testing.T) {
	questions := twoQuestions()

	tests := []struct {
		name        string
		answers     []SubmittedAnswer
		wantScore   int
		wantCorrect int
	}{
		{"all correct", []SubmittedAnswer{{1}, {3}}, 25, 2},
		{"first correct only", []SubmittedAnswer{{1}, {0}}, 10, 1},
		{"second correct only", []SubmittedAnswer{{0}, {3}}, 15, 1},
		{"none correct", []SubmittedAnswer{{0}, {0}}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, correct, rows := gradeAnswers(questions, tt.answers)
			if score != tt.wantScore {
				t.Errorf("score = %d, want %d", score, tt.wantScore)
			}
			if correct != tt.wantCorrect {
				t.Errorf("correct = %d, want %d", correct, tt.wantCorrect)
			}
			if len(rows) != len(questions) {
				t.Fatalf("rows = %d, want %d", len(rows), len(questions))
			}
			for i, row := range rows {
				if row.SelectedOption != tt.answers[i].SelectedOption {
					t.Errorf("row %d selected = %d, want %d", i, row.SelectedOption, tt.answers[i].SelectedOption)
				}
				if row.IsCorrect && row.PointsAwarded != questions[i].Points {
					t.Errorf("row %d awarded = %d, want %d", i, row.PointsAwarded, questions[i].Points)
				}
				if !row.IsCorrect && row.PointsAwarded != 0 {
					t.Errorf("row %d awarded = %d for a wrong answer", i, row.PointsAwarded)
				}
			}
		})
	}
}

func TestScorePercentage(t *testing.T) {
	tests := []struct {
		correct int
		total   int
		want    int
	}{
		{0, 0, 0},
		{1, 2, 50},
		{2, 2, 100},
		{1, 3, 33},
		{2, 3, 67},
		{9, 10, 90},
		{8, 9, 89},
	}

	for _, tt := range tests {
		if got := scorePercentage(tt.correct, tt.total); got != tt.want {
			t.Errorf("scorePercentage(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestSubmitAwardsPointsAndBadge(t *testing.T) {
	svc, db := newQuizService(t)
	quiz := seedQuiz(t, db, twoQuestions())
	user := createTestUser(t, db, "ace@example.com", model.Citizen)

	result, err := svc.Submit(quiz.ID, user.ID, []SubmittedAnswer{{1}, {3}})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Score != 25 || result.CorrectAnswers != 2 || result.Percentage != 100 || result.TotalQuestions != 2 {
		t.Errorf("result = %+v", result)
	}

	var fresh model.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if fresh.Points != 25 {
		t.Errorf("points = %d, want 25", fresh.Points)
	}

	var badges []model.Badge
	if err := db.Where("user_id = ?", user.ID).Find(&badges).Error; err != nil {
		t.Fatalf("load badges: %v", err)
	}
	if len(badges) != 1 || badges[0].Name != util.EcoExpertBadge {
		t.Errorf("badges = %+v, want one %q", badges, util.EcoExpertBadge)
	}
}

func TestSubmitPartialScoreNoBadge(t *testing.T) {
	svc, db := newQuizService(t)
	quiz := seedQuiz(t, db, twoQuestions())
	user := createTestUser(t, db, "half@example.com", model.Citizen)

	result, err := svc.Submit(quiz.ID, user.ID, []SubmittedAnswer{{1}, {0}})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Score != 10 || result.CorrectAnswers != 1 || result.Percentage != 50 {
		t.Errorf("result = %+v", result)
	}

	var count int64
	if err := db.Model(&model.Badge{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count badges: %v", err)
	}
	if count != 0 {
		t.Errorf("badge count = %d, want 0", count)
	}
}

func TestSubmitTwiceConflicts(t *testing.T) {
	svc, db := newQuizService(t)
	quiz := seedQuiz(t, db, twoQuestions())
	user := createTestUser(t, db, "eager@example.com", model.Citizen)

	if _, err := svc.Submit(quiz.ID, user.ID, []SubmittedAnswer{{1}, {3}}); err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	_, err := svc.Submit(quiz.ID, user.ID, []SubmittedAnswer{{0}, {0}})
	if !errors.Is(err, util.ErrAlreadySubmitted) {
		t.Errorf("second Submit err = %v, want ErrAlreadySubmitted", err)
	}

	// Retaking must not change the stored points either.
	var fresh model.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if fresh.Points != 25 {
		t.Errorf("points = %d, want 25", fresh.Points)
	}
}

func TestBadgeAwardedOnceAcrossQuizzes(t *testing.T) {
	svc, db := newQuizService(t)
	first := seedQuiz(t, db, twoQuestions())
	second := seedQuiz(t, db, manyQuestions(3))
	user := createTestUser(t, db, "champ@example.com", model.Citizen)

	if _, err := svc.Submit(first.ID, user.ID, []SubmittedAnswer{{1}, {3}}); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if _, err := svc.Submit(second.ID, user.ID, answersWithCorrect(3, 3)); err != nil {
		t.Fatalf("second Submit: %v", err)
	}

	var count int64
	if err := db.Model(&model.Badge{}).
		Where("user_id = ? AND name = ?", user.ID, util.EcoExpertBadge).
		Count(&count).Error; err != nil {
		t.Fatalf("count badges: %v", err)
	}
	if count != 1 {
		t.Errorf("badge count after two aced quizzes = %d, want 1", count)
	}
}

func TestBadgeThresholdBoundary(t *testing.T) {
	svc, db := newQuizService(t)

	// 9 of 10 correct rounds to exactly 90 percent.
	atThreshold := seedQuiz(t, db, manyQuestions(10))
	earner := createTestUser(t, db, "ninety@example.com", model.Citizen)
	result, err := svc.Submit(atThreshold.ID, earner.ID, answersWithCorrect(10, 9))
	if err != nil {
		t.Fatalf("Submit at threshold: %v", err)
	}
	if result.Percentage != 90 {
		t.Fatalf("percentage = %d, want 90", result.Percentage)
	}

	var count int64
	if err := db.Model(&model.Badge{}).Where("user_id = ?", earner.ID).Count(&count).Error; err != nil {
		t.Fatalf("count badges: %v", err)
	}
	if count != 1 {
		t.Errorf("badge count at 90%% = %d, want 1", count)
	}

	// 8 of 9 correct rounds to 89 percent, just under the threshold.
	below := seedQuiz(t, db, manyQuestions(9))
	near := createTestUser(t, db, "eightynine@example.com", model.Citizen)
	result, err = svc.Submit(below.ID, near.ID, answersWithCorrect(9, 8))
	if err != nil {
		t.Fatalf("Submit below threshold: %v", err)
	}
	if result.Percentage != 89 {
		t.Fatalf("percentage = %d, want 89", result.Percentage)
	}

	if err := db.Model(&model.Badge{}).Where("user_id = ?", near.ID).Count(&count).Error; err != nil {
		t.Fatalf("count badges: %v", err)
	}
	if count != 0 {
		t.Errorf("badge count at 89%% = %d, want 0", count)
	}
}

func TestSubmitRejectsOutOfRangeOption(t *testing.T) {
	svc, db := newQuizService(t)
	quiz := seedQuiz(t, db, twoQuestions())
	user := createTestUser(t, db, "offrange@example.com", model.Citizen)

	// First question has three options; index 3 points past the last one.
	if _, err := svc.Submit(quiz.ID, user.ID, []SubmittedAnswer{{3}, {3}}); !errors.Is(err, util.ErrInvalidOption) {
		t.Errorf("err = %v, want ErrInvalidOption", err)
	}
	if _, err := svc.Submit(quiz.ID, user.ID, []SubmittedAnswer{{-1}, {3}}); !errors.Is(err, util.ErrInvalidOption) {
		t.Errorf("negative index err = %v, want ErrInvalidOption", err)
	}
}

func TestDuplicateSubmissionRowHitsUniqueIndex(t *testing.T) {
	_, db := newQuizService(t)

	row := func() *model.QuizSubmission {
		return &model.QuizSubmission{QuizID: 1, UserID: 1, CompletedAt: time.Now()}
	}
	if err := db.Create(row()).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}

	// The translated duplicate-key error backs the conflict mapping for
	// a concurrent submission that slips past the pre-check.
	err := db.Create(row()).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("err = %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestSubmitAnswerCountMismatch(t *testing.T) {
	svc, db := newQuizService(t)
	quiz := seedQuiz(t, db, twoQuestions())
	user := createTestUser(t, db, "short@example.com", model.Citizen)

	_, err := svc.Submit(quiz.ID, user.ID, []SubmittedAnswer{{1}})
	if !errors.Is(err, util.ErrAnswerCount) {
		t.Errorf("err = %v, want ErrAnswerCount", err)
	}
}

func TestSubmitUnknownQuiz(t *testing.T) {
	svc, db := newQuizService(t)
	user := createTestUser(t, db, "lost@example.com", model.Citizen)

	_, err := svc.Submit(9999, user.ID, []SubmittedAnswer{{0}})
	if !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestSubmitInactiveQuiz(t *testing.T) {
	svc, db := newQuizService(t)
	quiz := seedQuiz(t, db, twoQuestions())
	if err := db.Model(quiz).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate quiz: %v", err)
	}
	user := createTestUser(t, db, "late@example.com", model.Citizen)

	_, err := svc.Submit(quiz.ID, user.ID, []SubmittedAnswer{{1}, {3}})
	if !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestCreateQuizValidation(t *testing.T) {
	svc, db := newQuizService(t)
	admin := createTestUser(t, db, "admin@example.com", model.Admin)

	tests := []struct {
		name    string
		req     CreateQuizRequest
		wantErr bool
	}{
		{
			"no questions",
			CreateQuizRequest{Title: "Empty"},
			true,
		},
		{
			"one option",
			CreateQuizRequest{Title: "Thin", Questions: []QuizQuestionRequest{
				{Text: "q", Options: []string{"only"}, CorrectAnswer: 0},
			}},
			true,
		},
		{
			"answer out of range",
			CreateQuizRequest{Title: "Off", Questions: []QuizQuestionRequest{
				{Text: "q", Options: []string{"a", "b"}, CorrectAnswer: 2},
			}},
			true,
		},
		{
			"valid",
			CreateQuizRequest{Title: "Good", Questions: []QuizQuestionRequest{
				{Text: "q1", Options: []string{"a", "b"}, CorrectAnswer: 0, Points: 5},
				{Text: "q2", Options: []string{"a", "b", "c"}, CorrectAnswer: 2},
			}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz, err := svc.CreateQuiz(admin.ID, tt.req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateQuiz: %v", err)
			}
			// Unset question points default to 10.
			if quiz.TotalPoints != 15 {
				t.Errorf("totalPoints = %d, want 15", quiz.TotalPoints)
			}
		})
	}
}

func TestHistoryReturnsOwnSubmissions(t *testing.T) {
	svc, db := newQuizService(t)
	quiz := seedQuiz(t, db, twoQuestions())
	alice := createTestUser(t, db, "alice@example.com", model.Citizen)
	bob := createTestUser(t, db, "bob@example.com", model.Citizen)

	if _, err := svc.Submit(quiz.ID, alice.ID, []SubmittedAnswer{{1}, {3}}); err != nil {
		t.Fatalf("alice Submit: %v", err)
	}
	if _, err := svc.Submit(quiz.ID, bob.ID, []SubmittedAnswer{{0}, {0}}); err != nil {
		t.Fatalf("bob Submit: %v", err)
	}

	subs, err := svc.History(alice.ID, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("history len = %d, want 1", len(subs))
	}
	if subs[0].Score != 25 || subs[0].QuizID != quiz.ID {
		t.Errorf("submission = %+v", subs[0])
	}
}
