package model

import "encoding/json"

type QuizCategory string

const (
	WasteManagement QuizCategory = "waste_management"
	RecyclingQuiz   QuizCategory = "recycling"
	Environment     QuizCategory = "environment"
	Sustainability  QuizCategory = "sustainability"
)

type QuizDifficulty string

const (
	Easy   QuizDifficulty = "easy"
	Medium QuizDifficulty = "medium"
	Hard   QuizDifficulty = "hard"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Category    QuizCategory   `gorm:"size:50;default:'environment';index" json:"category"`
	Difficulty  QuizDifficulty `gorm:"size:20;default:'medium';index" json:"difficulty"`
	TotalPoints int            `gorm:"default:0" json:"totalPoints"`
	IsActive    bool           `gorm:"default:true" json:"isActive"`
	CreatedByID uint           `gorm:"index;type:bigint unsigned" json:"createdById"`
	CreatedBy   *User          `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	Questions   []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion stores its options as a JSON array of option texts and the
// answer key as the index of the correct option.
type QuizQuestion struct {
	BaseModel
	QuizID        uint            `gorm:"index;type:bigint unsigned" json:"quizId"`
	Text          string          `gorm:"type:text;not null" json:"text"`
	Options       json.RawMessage `gorm:"type:json" json:"options"`
	CorrectAnswer int             `gorm:"not null" json:"-"`
	Points        int             `gorm:"default:10" json:"points"`
	Order         int             `gorm:"default:0" json:"order"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// OptionList decodes the stored options JSON.
func (q *QuizQuestion) OptionList() ([]string, error) {
	var opts []string
	if len(q.Options) == 0 {
		return opts, nil
	}
	err := json.Unmarshal(q.Options, &opts)
	return opts, err
}
