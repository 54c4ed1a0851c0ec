package token

import (
	"strings"
	"testing"
	"time"
)

// TestIssuer_IssueAndVerify は発行したトークンが検証を通過し、
// クレームにユーザーIDとメールアドレスが含まれることをテストする。
func TestIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret-32bytes-long-enough!", 24*time.Hour)

	tokenStr, err := issuer.Issue("user-123", "a@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if tokenStr == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := issuer.Verify(tokenStr)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "user-123")
	}
	if claims.Email != "a@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "a@example.com")
	}
}

// TestIssuer_Verify_ExpiredToken は有効期限切れのトークンが
// 検証で拒否されることをテストする。
func TestIssuer_Verify_ExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret-32bytes-long-enough!", time.Hour)

	// 2時間前の時刻で発行する
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tokenStr, err := issuer.Issue("user-123", "a@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// 現在時刻で検証すると期限切れ
	issuer.now = time.Now
	if _, err := issuer.Verify(tokenStr); err == nil {
		t.Error("expected error for expired token, got nil")
	}
}

// TestIssuer_Verify_WrongSecret は異なる鍵で署名されたトークンが
// 検証で拒否されることをテストする。
func TestIssuer_Verify_WrongSecret(t *testing.T) {
	issuerA := NewIssuer("secret-a-32bytes-long-enough!!!!", time.Hour)
	issuerB := NewIssuer("secret-b-32bytes-long-enough!!!!", time.Hour)

	tokenStr, err := issuerA.Issue("user-123", "a@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := issuerB.Verify(tokenStr); err == nil {
		t.Error("expected error for token signed with different secret, got nil")
	}
}

// TestIssuer_Verify_TamperedToken は改竄されたトークンが
// 検証で拒否されることをテストする。
func TestIssuer_Verify_TamperedToken(t *testing.T) {
	issuer := NewIssuer("test-secret-32bytes-long-enough!", time.Hour)

	tokenStr, err := issuer.Issue("user-123", "a@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// ペイロード部分を書き換える
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token format: %q", tokenStr)
	}
	tampered := parts[0] + ".eyJzdWIiOiJ1c2VyLTk5OSJ9." + parts[2]

	if _, err := issuer.Verify(tampered); err == nil {
		t.Error("expected error for tampered token, got nil")
	}
}

// TestIssuer_Verify_GarbageInput はJWT形式ですらない文字列が
// 検証で拒否されることをテストする。
func TestIssuer_Verify_GarbageInput(t *testing.T) {
	issuer := NewIssuer("test-secret-32bytes-long-enough!", time.Hour)

	for _, input := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := issuer.Verify(input); err == nil {
			t.Errorf("Verify(%q) expected error, got nil", input)
		}
	}
}
