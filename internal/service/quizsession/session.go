// Package quizsession реализует конечный автомат одной попытки прохождения
// викторины. Автомат чистый и синхронный: никакого I/O, никаких таймеров.
// Каждая попытка владеет собственным экземпляром Session; общего состояния
// между попытками нет.
package quizsession

import (
	"errors"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
)

// Unanswered помечает слот ответа, для которого выбор еще не сделан
const Unanswered = -1

// Ошибки нарушения предусловий. Все они локальные и восстановимые:
// вызывающая сторона повторяет запрос, состояние автомата не меняется.
var (
	// ErrSessionCompleted возвращается при вызове операций InProgress-состояния
	// на завершенной сессии.
	ErrSessionCompleted = errors.New("quiz session is already completed")

	// ErrSessionActive возвращается при запросе итога незавершенной сессии.
	ErrSessionActive = errors.New("quiz session is still in progress")

	// ErrInvalidOption возвращается для индекса варианта вне диапазона
	// текущего вопроса.
	ErrInvalidOption = errors.New("selected option index is out of range")

	// ErrIncompleteAnswer возвращается при попытке перейти дальше,
	// пока текущий вопрос не отвечен.
	ErrIncompleteAnswer = errors.New("current question is not answered")
)

// Session — конечный автомат попытки.
// Состояния: InProgress(current) для 0 <= current < N и Completed(correct, total).
type Session struct {
	quiz      *entity.Quiz
	current   int
	answers   []int
	completed bool
	correct   int
}

// Score — итоговый счет завершенной сессии
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// New создает сессию в состоянии InProgress(0) со всеми неотвеченными слотами.
// Вырожденная викторина без вопросов завершается немедленно со счетом 0/0.
func New(quiz *entity.Quiz) *Session {
	s := &Session{
		quiz:    quiz,
		answers: make([]int, len(quiz.Questions)),
	}
	for i := range s.answers {
		s.answers[i] = Unanswered
	}
	if len(quiz.Questions) == 0 {
		s.completed = true
	}
	return s
}

// Completed возвращает true, когда сессия завершена
func (s *Session) Completed() bool {
	return s.completed
}

// CurrentIndex возвращает индекс текущего вопроса (валиден только в InProgress)
func (s *Session) CurrentIndex() int {
	return s.current
}

// SelectAnswer записывает выбранный вариант для текущего вопроса.
// Повторный выбор перезаписывает предыдущий: до перехода дальше действует
// последний выбор. Перехода состояния нет.
func (s *Session) SelectAnswer(optionIndex int) error {
	if s.completed {
		return ErrSessionCompleted
	}
	if !s.quiz.Questions[s.current].IsValidOption(optionIndex) {
		return ErrInvalidOption
	}
	s.answers[s.current] = optionIndex
	return nil
}

// Advance переходит к следующему вопросу либо завершает сессию на последнем.
// Предусловие: текущий вопрос отвечен. При нарушении состояние не меняется
// и возвращается ErrIncompleteAnswer.
func (s *Session) Advance() error {
	if s.completed {
		return ErrSessionCompleted
	}
	if s.answers[s.current] == Unanswered {
		return ErrIncompleteAnswer
	}
	if s.current+1 < len(s.quiz.Questions) {
		s.current++
		return nil
	}
	s.correct = s.score()
	s.completed = true
	return nil
}

// Retreat возвращается к предыдущему вопросу, не трогая записанные ответы.
// На первом вопросе вызов — допустимый no-op: UI обязан блокировать кнопку,
// но автомат терпит такой вызов.
func (s *Session) Retreat() error {
	if s.completed {
		return ErrSessionCompleted
	}
	if s.current > 0 {
		s.current--
	}
	return nil
}

// CurrentQuestion возвращает текущий вопрос вместе с записанным слотом ответа
// (для повторного рендера выбора). Валидно только в InProgress.
func (s *Session) CurrentQuestion() (*entity.Question, int, error) {
	if s.completed {
		return nil, Unanswered, ErrSessionCompleted
	}
	return &s.quiz.Questions[s.current], s.answers[s.current], nil
}

// Result возвращает итоговый счет. Валидно только в Completed.
func (s *Session) Result() (Score, error) {
	if !s.completed {
		return Score{}, ErrSessionActive
	}
	return Score{Correct: s.correct, Total: len(s.quiz.Questions)}, nil
}

// score подсчитывает правильные ответы. Вопрос засчитан тогда и только тогда,
// когда слот точно равен индексу правильного варианта; неотвеченный слот
// никогда не засчитывается (в норме недостижимо, но подсчет не должен падать).
func (s *Session) score() int {
	correct := 0
	for i, q := range s.quiz.Questions {
		if s.answers[i] != Unanswered && q.IsCorrect(s.answers[i]) {
			correct++
		}
	}
	return correct
}

// Snapshot — сериализуемое состояние сессии для хранилища попыток.
// Автомат остается чистым: snapshot только переносит состояние между запросами.
type Snapshot struct {
	QuizID       uint  `json:"quiz_id"`
	CurrentIndex int   `json:"current_index"`
	Answers      []int `json:"answers"`
	Completed    bool  `json:"completed"`
	Correct      int   `json:"correct"`
}

// Snapshot возвращает копию состояния сессии
func (s *Session) Snapshot() Snapshot {
	answers := make([]int, len(s.answers))
	copy(answers, s.answers)
	return Snapshot{
		QuizID:       s.quiz.ID,
		CurrentIndex: s.current,
		Answers:      answers,
		Completed:    s.completed,
		Correct:      s.correct,
	}
}

// Restore восстанавливает сессию из снимка поверх загруженной викторины.
// Снимок с неподходящей длиной слотов отклоняется: это признак того,
// что викторина была изменена после старта попытки.
func Restore(quiz *entity.Quiz, snap Snapshot) (*Session, error) {
	if quiz.ID != snap.QuizID {
		return nil, errors.New("snapshot does not belong to this quiz")
	}
	if len(snap.Answers) != len(quiz.Questions) {
		return nil, errors.New("snapshot answer slots do not match question count")
	}
	if !snap.Completed && (snap.CurrentIndex < 0 || snap.CurrentIndex >= len(quiz.Questions)) {
		return nil, errors.New("snapshot current index is out of range")
	}
	answers := make([]int, len(snap.Answers))
	copy(answers, snap.Answers)
	return &Session{
		quiz:      quiz,
		current:   snap.CurrentIndex,
		answers:   answers,
		completed: snap.Completed,
		correct:   snap.Correct,
	}, nil
}
