package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
	"github.com/yourusername/ecg-portal/internal/domain/repository"
	apperrors "github.com/yourusername/ecg-portal/internal/pkg/errors"
	"github.com/yourusername/ecg-portal/internal/service/quizsession"
)

// quizReader — то, что сервису попыток нужно от сервиса викторин
type quizReader interface {
	GetQuizWithQuestions(id uint) (*entity.Quiz, ReadSource, error)
}

// AttemptQuestion — текущий вопрос попытки вместе с записанным выбором
type AttemptQuestion struct {
	Question *entity.Question
	Selected int
	Index    int
	Total    int
}

// AdvanceOutcome — результат перехода к следующему вопросу.
// SaveFailed выставляется, когда попытка завершилась, но запись результата
// в базу не удалась: счет при этом все равно отдается пользователю.
type AdvanceOutcome struct {
	Completed  bool
	Score      quizsession.Score
	SaveFailed bool
}

// AttemptService управляет жизненным циклом попыток прохождения викторин.
// Каждый запрос восстанавливает автомат из снимка, применяет одну операцию
// и сохраняет новый снимок обратно в хранилище.
type AttemptService struct {
	quizzes    quizReader
	store      AttemptStore
	resultRepo repository.ResultRepository
}

// NewAttemptService создает новый сервис попыток
func NewAttemptService(
	quizzes quizReader,
	store AttemptStore,
	resultRepo repository.ResultRepository,
) *AttemptService {
	return &AttemptService{
		quizzes:    quizzes,
		store:      store,
		resultRepo: resultRepo,
	}
}

// StartAttempt начинает новую попытку для пользователя.
// Викторина без вопросов завершается немедленно со счетом 0/0,
// и результат записывается сразу.
func (s *AttemptService) StartAttempt(userID, quizID uint) (*Attempt, error) {
	quiz, _, err := s.quizzes.GetQuizWithQuestions(quizID)
	if err != nil {
		return nil, err
	}

	session := quizsession.New(quiz)
	attempt := &Attempt{
		ID:        uuid.NewString(),
		UserID:    userID,
		QuizID:    quizID,
		State:     session.Snapshot(),
		StartedAt: time.Now(),
	}
	if err := s.store.Save(attempt); err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	if session.Completed() {
		score, _ := session.Result()
		s.persistResult(userID, quizID, score)
	}

	log.Printf("[AttemptService] Пользователь %d начал попытку %s по викторине %d", userID, attempt.ID, quizID)
	return attempt, nil
}

// SelectAnswer записывает выбор варианта для текущего вопроса попытки.
// Повторный выбор до перехода перезаписывает предыдущий.
func (s *AttemptService) SelectAnswer(userID uint, attemptID string, optionIndex int) error {
	attempt, session, err := s.load(userID, attemptID)
	if err != nil {
		return err
	}
	if err := session.SelectAnswer(optionIndex); err != nil {
		return err
	}
	return s.saveState(attempt, session)
}

// Advance переходит к следующему вопросу. На последнем вопросе попытка
// завершается: счет фиксируется и результат записывается в базу best-effort.
func (s *AttemptService) Advance(userID uint, attemptID string) (*AdvanceOutcome, error) {
	attempt, session, err := s.load(userID, attemptID)
	if err != nil {
		return nil, err
	}
	if err := session.Advance(); err != nil {
		return nil, err
	}
	if err := s.saveState(attempt, session); err != nil {
		return nil, err
	}

	outcome := &AdvanceOutcome{Completed: session.Completed()}
	if outcome.Completed {
		score, err := session.Result()
		if err != nil {
			return nil, err
		}
		outcome.Score = score
		outcome.SaveFailed = !s.persistResult(userID, attempt.QuizID, score)
	}
	return outcome, nil
}

// Retreat возвращается к предыдущему вопросу, сохраняя записанные ответы
func (s *AttemptService) Retreat(userID uint, attemptID string) error {
	attempt, session, err := s.load(userID, attemptID)
	if err != nil {
		return err
	}
	if err := session.Retreat(); err != nil {
		return err
	}
	return s.saveState(attempt, session)
}

// CurrentQuestion возвращает текущий вопрос попытки для рендера
func (s *AttemptService) CurrentQuestion(userID uint, attemptID string) (*AttemptQuestion, error) {
	_, session, err := s.load(userID, attemptID)
	if err != nil {
		return nil, err
	}
	question, selected, err := session.CurrentQuestion()
	if err != nil {
		return nil, err
	}
	return &AttemptQuestion{
		Question: question,
		Selected: selected,
		Index:    session.CurrentIndex(),
		Total:    len(session.Snapshot().Answers),
	}, nil
}

// Result возвращает итоговый счет завершенной попытки
func (s *AttemptService) Result(userID uint, attemptID string) (quizsession.Score, error) {
	_, session, err := s.load(userID, attemptID)
	if err != nil {
		return quizsession.Score{}, err
	}
	return session.Result()
}

// GetUserResults возвращает сохраненные результаты пользователя
func (s *AttemptService) GetUserResults(userID uint, limit, offset int) ([]entity.QuizResult, int64, error) {
	return s.resultRepo.GetByUser(userID, limit, offset)
}

// load достает попытку из хранилища, проверяет владельца и восстанавливает
// автомат поверх актуальной викторины.
func (s *AttemptService) load(userID uint, attemptID string) (*Attempt, *quizsession.Session, error) {
	attempt, err := s.store.Get(attemptID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, ErrAttemptNotFound
		}
		return nil, nil, err
	}
	if attempt.UserID != userID {
		return nil, nil, ErrAttemptOwnership
	}

	quiz, _, err := s.quizzes.GetQuizWithQuestions(attempt.QuizID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Викторина удалена после старта попытки
			return nil, nil, ErrAttemptNotFound
		}
		return nil, nil, err
	}

	session, err := quizsession.Restore(quiz, attempt.State)
	if err != nil {
		// Викторина изменилась после старта попытки: снимок больше не валиден
		log.Printf("[AttemptService] Снимок попытки %s отклонен: %v", attemptID, err)
		return nil, nil, ErrAttemptNotFound
	}
	return attempt, session, nil
}

func (s *AttemptService) saveState(attempt *Attempt, session *quizsession.Session) error {
	attempt.State = session.Snapshot()
	if err := s.store.Save(attempt); err != nil {
		return fmt.Errorf("failed to save attempt state: %w", err)
	}
	return nil
}

// persistResult записывает итог попытки. Отказ базы не роняет завершение:
// счет уже посчитан и будет отдан пользователю с предупреждением.
func (s *AttemptService) persistResult(userID, quizID uint, score quizsession.Score) bool {
	result := &entity.QuizResult{
		UserID:         userID,
		QuizID:         quizID,
		CorrectAnswers: score.Correct,
		TotalQuestions: score.Total,
		CompletedAt:    time.Now(),
	}
	if err := s.resultRepo.Save(result); err != nil {
		log.Printf("[AttemptService] Не удалось сохранить результат пользователя %d по викторине %d: %v", userID, quizID, err)
		return false
	}
	return true
}
