// Package model はドメインモデルを定義する。
package model

import "time"

// Note はユーザーが所有するノートを表す。
// UserIDは作成時に一度だけ設定され、以降変更されない。
type Note struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
