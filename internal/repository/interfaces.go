// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/noteman/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	// ログイン時のアカウント解決はgoogle_idではなくemailをキーとする。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error

	// Update はユーザーの全フィールドをIDで指定して上書き更新する。
	Update(ctx context.Context, user *model.User) error
}

// NoteRepository はノートデータの永続化インターフェース。
type NoteRepository interface {
	// FindByID は指定IDのノートを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Note, error)

	// ListByUserID は指定ユーザーのノート一覧をcreated_at降順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.Note, error)

	// Create はノートを作成する。
	Create(ctx context.Context, note *model.Note) error

	// Update はノートの全フィールドをIDで指定して上書き更新する。
	// user_idは更新対象に含めない。
	Update(ctx context.Context, note *model.Note) error

	// DeleteByID は指定IDのノートを削除する。
	DeleteByID(ctx context.Context, id string) error
}
