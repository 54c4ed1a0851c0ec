// Package note はノートのCRUDと所有権チェックを提供する。
package note

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/noteman/internal/model"
	"github.com/hitoshi/noteman/internal/repository"
)

// MetricsRecorder はノート操作メトリクスの記録インターフェース。
// nilの場合は記録しない。
type MetricsRecorder interface {
	RecordNoteCreated()
}

// Service はノート管理のビジネスロジックを提供する。
// 読み取り・更新・削除はすべて呼び出し元の所有権を検証する。
type Service struct {
	noteRepo repository.NoteRepository
	metrics  MetricsRecorder
	now      func() time.Time
}

// NewService はServiceを生成する。
// metricsはnilを許容する。
func NewService(noteRepo repository.NoteRepository, metrics MetricsRecorder) *Service {
	return &Service{
		noteRepo: noteRepo,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Create はノートを作成する。
// 所有者IDは検証済みの呼び出し元IDのみを使用し、ペイロードからは受け取らない。
func (s *Service) Create(ctx context.Context, ownerID, title, content string) (*model.Note, error) {
	now := s.now()
	note := &model.Note{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordNoteCreated()
	}
	return note, nil
}

// List は呼び出し元が所有するノート一覧をcreated_at降順で返す。
// 1件もない場合は空スライスを返す。
func (s *Service) List(ctx context.Context, ownerID string) ([]*model.Note, error) {
	notes, err := s.noteRepo.ListByUserID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

// Get は指定IDのノートを所有権チェック付きで取得する。
// 存在しなければNOTE_NOT_FOUND、存在するが所有者でなければNOTE_FORBIDDENを返す。
// 存在チェックは所有権チェックより先に行う。入れ替えると両者のエラーを区別できない。
func (s *Service) Get(ctx context.Context, noteID, callerID string) (*model.Note, error) {
	return s.fetchOwned(ctx, noteID, callerID)
}

// Update は指定IDのノートを部分更新する。
// title・contentのうちnilでないフィールドのみをマージし、updated_atを更新する。
// 所有者IDはこの操作で決して変更されない。
func (s *Service) Update(ctx context.Context, noteID, callerID string, title, content *string) (*model.Note, error) {
	note, err := s.fetchOwned(ctx, noteID, callerID)
	if err != nil {
		return nil, err
	}

	// スナップショットから新しい値を組み立てて全体を保存する
	updated := *note
	if title != nil {
		updated.Title = *title
	}
	if content != nil {
		updated.Content = *content
	}
	updated.UpdatedAt = s.now()

	if err := s.noteRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return &updated, nil
}

// Remove は指定IDのノートを所有権チェック付きで完全に削除する。
func (s *Service) Remove(ctx context.Context, noteID, callerID string) error {
	if _, err := s.fetchOwned(ctx, noteID, callerID); err != nil {
		return err
	}

	if err := s.noteRepo.DeleteByID(ctx, noteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}

// fetchOwned はノートを取得し、存在チェック→所有権チェックの順で検証する。
func (s *Service) fetchOwned(ctx context.Context, noteID, callerID string) (*model.Note, error) {
	note, err := s.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	if note == nil {
		return nil, model.NewNoteNotFoundError(noteID)
	}
	if note.UserID != callerID {
		return nil, model.NewNoteForbiddenError()
	}

	return note, nil
}
