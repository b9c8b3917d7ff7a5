package service

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"cleanleb_backend/internal/model"
	"cleanleb_backend/internal/repository"
	"cleanleb_backend/internal/util"
	"cleanleb_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo *repository.QuizRepository
	UserRepo *repository.UserRepository
	DB       *gorm.DB
}

func NewQuizService(quizRepo *repository.QuizRepository, userRepo *repository.UserRepository, db *gorm.DB) *QuizService {
	return &QuizService{
		QuizRepo: quizRepo,
		UserRepo: userRepo,
		DB:       db,
	}
}

type SubmittedAnswer struct {
	SelectedOption int `json:"selectedOption"`
}

type SubmitQuizRequest struct {
	Answers []SubmittedAnswer `json:"answers" binding:"required"`
}

// QuizResult is what the submitter gets back.
type QuizResult struct {
	Score          int `json:"score"`
	Percentage     int `json:"percentage"`
	CorrectAnswers int `json:"correctAnswers"`
	TotalQuestions int `json:"totalQuestions"`
}

type QuizQuestionRequest struct {
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectAnswer int      `json:"correctAnswer"`
	Points        int      `json:"points"`
}

type CreateQuizRequest struct {
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Difficulty  string                `json:"difficulty"`
	Questions   []QuizQuestionRequest `json:"questions" binding:"required"`
}

func (s *QuizService) ListQuizzes(category, difficulty string, limit int) ([]model.Quiz, error) {
	return s.QuizRepo.ListActive(category, difficulty, limit)
}

func (s *QuizService) GetQuiz(id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindActiveByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	return quiz, err
}

// CreateQuiz validates the question set and recomputes totalPoints
// server-side; the client-provided total is ignored.
func (s *QuizService) CreateQuiz(userID uint, req CreateQuizRequest) (*model.Quiz, error) {
	if len(req.Questions) == 0 {
		return nil, errors.New("quiz must have at least one question")
	}

	quiz := &model.Quiz{
		Title:       req.Title,
		Description: req.Description,
		Category:    model.QuizCategory(req.Category),
		Difficulty:  model.QuizDifficulty(req.Difficulty),
		IsActive:    true,
		CreatedByID: userID,
	}
	if quiz.Category == "" {
		quiz.Category = model.Environment
	}
	if quiz.Difficulty == "" {
		quiz.Difficulty = model.Medium
	}

	total := 0
	for i, q := range req.Questions {
		if len(q.Options) < 2 {
			return nil, errors.New("each question must have at least 2 options")
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, errors.New("each question must have a valid correct answer")
		}
		points := q.Points
		if points == 0 {
			points = 10
		}
		opts, err := json.Marshal(q.Options)
		if err != nil {
			return nil, err
		}
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			Text:          q.Text,
			Options:       opts,
			CorrectAnswer: q.CorrectAnswer,
			Points:        points,
			Order:         i + 1,
		})
		total += points
	}
	quiz.TotalPoints = total

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Submit grades the attempt and applies its side effects as one unit:
// submission row, point award, and the Eco Expert badge when earned.
// Percentage is question-count based: round(100 * correct / questions).
func (s *QuizService) Submit(quizID, userID uint, answers []SubmittedAnswer) (*QuizResult, error) {
	quiz, err := s.QuizRepo.FindActiveByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if _, err := s.QuizRepo.FindSubmission(quizID, userID); err == nil {
		return nil, util.ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if len(answers) != len(quiz.Questions) {
		return nil, util.ErrAnswerCount
	}

	for i, q := range quiz.Questions {
		opts, err := q.OptionList()
		if err != nil {
			return nil, err
		}
		if answers[i].SelectedOption < 0 || answers[i].SelectedOption >= len(opts) {
			return nil, util.ErrInvalidOption
		}
	}

	score, correct, rows := gradeAnswers(quiz.Questions, answers)
	percentage := scorePercentage(correct, len(quiz.Questions))

	submission := &model.QuizSubmission{
		QuizID:         quizID,
		UserID:         userID,
		Score:          score,
		TotalQuestions: len(quiz.Questions),
		CorrectAnswers: correct,
		Percentage:     percentage,
		CompletedAt:    time.Now(),
		Answers:        rows,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(submission).Error; err != nil {
			return err
		}
		if err := s.UserRepo.AddPoints(tx, userID, score); err != nil {
			return err
		}
		if percentage >= util.BadgeThresholdPercent {
			return s.UserRepo.AwardBadge(tx, userID, util.EcoExpertBadge, util.EcoExpertDescription)
		}
		return nil
	})
	if err != nil {
		// A concurrent duplicate lands on the (quiz_id, user_id) unique
		// index rather than double-awarding points.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadySubmitted
		}
		return nil, err
	}

	logger.Log.Info("quiz submitted",
		zap.Uint("quizId", quizID),
		zap.Uint("userId", userID),
		zap.Int("score", score),
		zap.Int("percentage", percentage))

	return &QuizResult{
		Score:          score,
		Percentage:     percentage,
		CorrectAnswers: correct,
		TotalQuestions: len(quiz.Questions),
	}, nil
}

func (s *QuizService) History(userID uint, limit int) ([]model.QuizSubmission, error) {
	return s.QuizRepo.ListSubmissionsByUser(userID, limit)
}

// gradeAnswers compares each selected option against the question's answer
// key and awards the question's point value when correct.
func gradeAnswers(questions []model.QuizQuestion, answers []SubmittedAnswer) (score, correct int, rows []model.QuizAnswer) {
	rows = make([]model.QuizAnswer, 0, len(questions))
	for i, q := range questions {
		isCorrect := answers[i].SelectedOption == q.CorrectAnswer
		awarded := 0
		if isCorrect {
			correct++
			awarded = q.Points
			score += q.Points
		}
		rows = append(rows, model.QuizAnswer{
			QuestionIndex:  i,
			SelectedOption: answers[i].SelectedOption,
			IsCorrect:      isCorrect,
			PointsAwarded:  awarded,
		})
	}
	return score, correct, rows
}

func scorePercentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
