// Package auth はOAuth認証フローとアカウント解決を提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/noteman/internal/model"
	"github.com/hitoshi/noteman/internal/repository"
)

// OAuthUserInfo はOAuthプロバイダーから取得したユーザー情報を表す。
type OAuthUserInfo struct {
	ProviderUserID string
	Email          string
	Name           string
	AvatarURL      string
	Provider       string // "google", "github" 等
}

// OAuthProvider はOAuth認証プロバイダーのインターフェース。
// 将来的に複数IdP（Google, GitHub等）に対応するための抽象化。
type OAuthProvider interface {
	// GetLoginURL はOAuth認証URLを生成する。
	GetLoginURL(state string) string
	// ExchangeCode は認可コードをトークンに交換し、ユーザー情報を取得する。
	ExchangeCode(ctx context.Context, code string) (*OAuthUserInfo, error)
}

// TokenIssuer はセッショントークンの発行インターフェース。
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// MetricsRecorder はログインメトリクスの記録インターフェース。
// nilの場合は記録しない。
type MetricsRecorder interface {
	RecordLogin(newUser bool)
}

// Profile はログインユーザーの公開プロフィール。
// 内部フィールド名を短縮した公開名で投影する。
type Profile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// LoginResult はログイン完了時に返すトークンとプロフィールの組。
type LoginResult struct {
	Token   string  `json:"access_token"`
	Profile Profile `json:"user"`
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	oauth    OAuthProvider
	userRepo repository.UserRepository
	issuer   TokenIssuer
	metrics  MetricsRecorder
	now      func() time.Time
}

// NewService はServiceを生成する。
// metricsはnilを許容する。
func NewService(
	oauth OAuthProvider,
	userRepo repository.UserRepository,
	issuer TokenIssuer,
	metrics MetricsRecorder,
) *Service {
	return &Service{
		oauth:    oauth,
		userRepo: userRepo,
		issuer:   issuer,
		metrics:  metrics,
		now:      time.Now,
	}
}

// GetLoginURL はOAuth認証URLを生成する。
func (s *Service) GetLoginURL(state string) string {
	return s.oauth.GetLoginURL(state)
}

// Reconcile はIdPから取得したユーザー情報をローカルのユーザーレコードに解決する。
// 解決はemailをキーとする。google_idをキーにしないのは意図的で、
// 同一メールアドレスのまま外部IDが変わった場合に既存アカウントへ再リンクするため。
//
//  1. emailで検索してヒットしなければ新規作成。
//  2. ヒットして外部IDが異なれば、外部ID・表示名・アバターURLを上書き保存する。
//     emailは決して上書きしない。
//  3. ヒットして外部IDが一致すれば書き込みなしでそのまま返す。
//
// 1回の呼び出しで書き込みは最大1回。同一内容の再実行は冪等。
func (s *Service) Reconcile(ctx context.Context, info *OAuthUserInfo) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, info.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if user == nil {
		now := s.now()
		newUser := &model.User{
			ID:        uuid.New().String(),
			GoogleID:  info.ProviderUserID,
			Email:     info.Email,
			Name:      info.Name,
			AvatarURL: info.AvatarURL,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := s.userRepo.Create(ctx, newUser); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		slog.Info("new user created",
			slog.String("user_id", newUser.ID),
			slog.String("provider", info.Provider),
		)
		if s.metrics != nil {
			s.metrics.RecordLogin(true)
		}
		return newUser, nil
	}

	if user.GoogleID != info.ProviderUserID {
		// 外部IDの付け替え: google_id・name・avatar_urlを上書きする
		updated := *user
		updated.GoogleID = info.ProviderUserID
		updated.Name = info.Name
		updated.AvatarURL = info.AvatarURL
		updated.UpdatedAt = s.now()

		if err := s.userRepo.Update(ctx, &updated); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}

		slog.Info("user relinked to new provider ID",
			slog.String("user_id", updated.ID),
			slog.String("provider", info.Provider),
		)
		if s.metrics != nil {
			s.metrics.RecordLogin(false)
		}
		return &updated, nil
	}

	slog.Info("existing user logged in",
		slog.String("user_id", user.ID),
		slog.String("provider", info.Provider),
	)
	if s.metrics != nil {
		s.metrics.RecordLogin(false)
	}
	return user, nil
}

// Login はOAuthコールバックの認可コードを処理し、
// アカウント解決の上でセッショントークンとプロフィールを返す。
func (s *Service) Login(ctx context.Context, code string) (*LoginResult, error) {
	userInfo, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	user, err := s.Reconcile(ctx, userInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile user: %w", err)
	}

	tokenStr, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &LoginResult{
		Token: tokenStr,
		Profile: Profile{
			ID:      user.ID,
			Email:   user.Email,
			Name:    user.Name,
			Picture: user.AvatarURL,
		},
	}, nil
}

// CurrentUser は検証済みのユーザーIDから現在のユーザーを取得する。
func (s *Service) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	return user, nil
}
